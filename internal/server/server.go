package server

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/config"
	"github.com/Omar-0O/rtc-volunteers/internal/handler"
	"github.com/Omar-0O/rtc-volunteers/internal/middleware"
	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/internal/repository"
	"github.com/Omar-0O/rtc-volunteers/internal/service"
	"github.com/Omar-0O/rtc-volunteers/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	cfg         *config.Config
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	loc := cfg.ReportingLocation()

	userRepo := repository.NewUserRepository(db)
	committeeRepo := repository.NewCommitteeRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	activityTypeRepo := repository.NewActivityTypeRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	fineRepo := repository.NewFineRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Printf("cloudinary storage disabled: %v", err)
		imageStorage = nil
	}

	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := service.NewSearchService(meiliClient)

	ledgerSvc := service.NewLedgerService(submissionRepo, userRepo, loc)
	leaderboardSvc := service.NewLeaderboardService(submissionRepo, userRepo, redisClient, cfg.LeaderboardCacheTTL, loc)
	badgeSvc := service.NewBadgeService(badgeRepo, userRepo, ledgerSvc)
	fineSvc := service.NewFineService(fineRepo, submissionRepo)
	submissionSvc := service.NewSubmissionService(submissionRepo, activityTypeRepo, userRepo, ledgerSvc, imageStorage, redisClient, cfg.RateLimitSubmission)
	profileSvc := service.NewProfileService(userRepo, ledgerSvc, leaderboardSvc, badgeSvc, submissionSvc, searchSvc, imageStorage, loc)
	authSvc := service.NewAuthService(userRepo, searchSvc, cfg.JWTSecret)
	adminSvc := service.NewAdminService(userRepo, searchSvc)
	committeeSvc := service.NewCommitteeService(committeeRepo, submissionRepo, loc)
	statSvc := service.NewStatService(userRepo, committeeRepo, submissionRepo, loc)

	authHandler := handler.NewAuthHandler(authSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc)
	badgeHandler := handler.NewBadgeHandler(badgeSvc)
	fineHandler := handler.NewFineHandler(fineSvc)
	committeeHandler := handler.NewCommitteeHandler(committeeSvc)
	adminHandler := handler.NewAdminHandler(adminSvc, ledgerSvc)
	statHandler := handler.NewStatHandler(statSvc)
	searchHandler := handler.NewSearchHandler(searchSvc)

	// Totals reconcile job. The redis lock keeps multiple instances from
	// sweeping at the same time.
	go runReconcileJob(ledgerSvc, redisClient, cfg.TotalsReconcileEvery)

	router := gin.New()
	setupCORS(router, cfg)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Volunteer self-service
		protected.GET("/me", profileHandler.Me)
		protected.PUT("/me", profileHandler.UpdateProfile)
		protected.PUT("/me/avatar", profileHandler.UpdateAvatar)
		protected.GET("/me/dashboard", profileHandler.Dashboard)
		protected.GET("/me/activities", submissionHandler.ListMine)
		protected.GET("/me/activities/recent", submissionHandler.ListRecent)
		protected.GET("/me/badges", badgeHandler.ListMine)
		protected.GET("/me/fines", fineHandler.ListMine)
		protected.POST("/activities", submissionHandler.LogActivity)

		// Shared reads
		protected.GET("/leaderboard", leaderboardHandler.Get)
		protected.GET("/leaderboard/podium", leaderboardHandler.Podium)
		protected.GET("/activity-types", submissionHandler.ListActivityTypes)
		protected.GET("/badges", badgeHandler.List)
		protected.GET("/committees", committeeHandler.List)
		protected.GET("/committees/:id", committeeHandler.Get)
		protected.GET("/committees/:id/stats", committeeHandler.Stats)
		protected.GET("/volunteers/search", searchHandler.Search)

		// Staff surface
		staff := protected.Group("")
		staff.Use(authMiddleware.RequireRole(model.RoleAdmin, model.RoleSupervisor, model.RoleHR, model.RoleCommitteeLeader))
		{
			staff.GET("/admin/volunteers", adminHandler.ListMembers)
			staff.POST("/admin/volunteers/:id/activities", submissionHandler.RecordForVolunteer)
			staff.GET("/admin/volunteers/:id/fines", fineHandler.ListForVolunteer)
			staff.GET("/badges/:id/holders", badgeHandler.ListHolders)
			staff.GET("/badges/:id/eligibility/:volunteer_id", badgeHandler.Preview)
			staff.POST("/badges/:id/award", badgeHandler.Award)
			staff.POST("/fines", fineHandler.Create)
			staff.POST("/fines/waive", fineHandler.Waive)
			staff.PUT("/fines/:id/paid", fineHandler.MarkPaid)
			staff.GET("/fine-types", fineHandler.ListFineTypes)
		}

		// Elevated-only management
		admin := protected.Group("/admin")
		admin.Use(authMiddleware.RequireElevated())
		{
			admin.POST("/volunteers", adminHandler.CreateMember)
			admin.PUT("/volunteers/:id", adminHandler.UpdateMember)
			admin.DELETE("/volunteers/:id", adminHandler.DeleteMember)
			admin.PUT("/volunteers/:id/level", adminHandler.SetLevel)
			admin.PUT("/volunteers/:id/committee", adminHandler.AssignCommittee)
			admin.POST("/volunteers/:id/recompute", adminHandler.RecomputeTotals)
			admin.POST("/reindex", adminHandler.ReindexProfiles)
			admin.GET("/stats", statHandler.Overview)

			admin.POST("/committees", committeeHandler.Create)
			admin.PUT("/committees/:id", committeeHandler.Update)
			admin.DELETE("/committees/:id", committeeHandler.Delete)

			admin.POST("/activity-types", submissionHandler.CreateActivityType)
			admin.PUT("/activity-types/:id", submissionHandler.UpdateActivityType)
			admin.DELETE("/activity-types/:id", submissionHandler.DeleteActivityType)

			admin.POST("/badges", badgeHandler.Create)
			admin.PUT("/badges/:id", badgeHandler.Update)
			admin.DELETE("/badges/:id", badgeHandler.Delete)

			admin.POST("/fine-types", fineHandler.CreateFineType)
			admin.PUT("/fine-types/:id", fineHandler.UpdateFineType)
			admin.DELETE("/fine-types/:id", fineHandler.DeleteFineType)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		cfg:         cfg,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	origins := strings.Split(cfg.AllowedOrigins, ",")

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

const reconcileLockKey = "jobs:reconcile_totals:lock"

func runReconcileJob(ledger service.LedgerService, redisClient *redis.Client, every time.Duration) {
	if every <= 0 {
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)

		if redisClient != nil {
			got, err := redisClient.SetNX(ctx, reconcileLockKey, "locked", every/2).Result()
			if err != nil {
				log.Printf("reconcile lock check failed: %v", err)
				cancel()
				continue
			}
			if !got {
				cancel()
				continue
			}
		}

		log.Println("Running profile totals reconcile...")
		if err := ledger.RecomputeAllProfileTotals(ctx); err != nil {
			log.Printf("totals reconcile failed: %v", err)
		} else {
			log.Println("Profile totals reconcile completed.")
		}
		cancel()
	}
}
