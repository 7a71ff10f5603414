package main

import (
	"log"

	"github.com/Omar-0O/rtc-volunteers/internal/bootstrap"
	"github.com/Omar-0O/rtc-volunteers/internal/config"
	"github.com/Omar-0O/rtc-volunteers/internal/server"
	"github.com/Omar-0O/rtc-volunteers/pkg/database"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	if err := bootstrap.SeedCommittees(db); err != nil {
		log.Fatalf("failed to seed committees: %v", err)
	}
	if err := bootstrap.SeedActivityTypes(db); err != nil {
		log.Fatalf("failed to seed activity types: %v", err)
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, running without redis (no rate limiting or caching)")
	}

	srv := server.NewServer(cfg, db, redisClient)
	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
