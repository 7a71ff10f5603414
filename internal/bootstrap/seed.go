package bootstrap

import (
	"log"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Committee{},
		&model.Profile{},
		&model.ActivityType{},
		&model.ActivitySubmission{},
		&model.Badge{},
		&model.UserBadge{},
		&model.FineType{},
		&model.Fine{},
		&model.Caravan{},
		&model.CaravanParticipant{},
	)
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []model.Role{
		{Name: model.RoleAdmin, Description: "Super administrator"},
		{Name: model.RoleSupervisor, Description: "Branch supervisor"},
		{Name: model.RoleHR, Description: "Human resources"},
		{Name: model.RoleCommitteeLeader, Description: "Committee leader"},
		{Name: model.RoleVolunteer, Description: "Volunteer"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&model.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func strPtr(s string) *string { return &s }

func defaultCommittees() []model.Committee {
	return []model.Committee{
		{Name: "Medical", NameAr: strPtr("طبي"), CommitteeType: model.CommitteeTypeProduction, Color: strPtr("#EF4444")},
		{Name: "Media", NameAr: strPtr("إعلامي"), CommitteeType: model.CommitteeTypeProduction, Color: strPtr("#3B82F6")},
		{Name: "Development", NameAr: strPtr("تنموي"), CommitteeType: model.CommitteeTypeProduction, Color: strPtr("#22C55E")},
		{Name: "Fourth Year", NameAr: strPtr("سنة رابعة"), CommitteeType: model.CommitteeTypeFourthYear, Color: strPtr("#A855F7")},
	}
}

func SeedCommittees(db *gorm.DB) error {
	for _, committee := range defaultCommittees() {
		var count int64
		if err := db.Model(&model.Committee{}).
			Where("name = ?", committee.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&committee).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func defaultActivityTypes() []model.ActivityType {
	return []model.ActivityType{
		{Name: "Branch Shift", NameAr: strPtr("وردية فرع"), Points: 10, Mode: model.ActivityModeGroup},
		{Name: "Caravan", NameAr: strPtr("قافلة"), Points: 25, Mode: model.ActivityModeGroup},
		{Name: "Awareness Session", NameAr: strPtr("جلسة توعية"), Points: 15, Mode: model.ActivityModeIndividual},
		{Name: "Training Attendance", NameAr: strPtr("حضور تدريب"), Points: 5, Mode: model.ActivityModeIndividual},
	}
}

func SeedActivityTypes(db *gorm.DB) error {
	for _, activityType := range defaultActivityTypes() {
		var count int64
		if err := db.Model(&model.ActivityType{}).
			Where("name = ?", activityType.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&activityType).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedAdminUser creates a development login. Never called outside the
// development environment.
func SeedAdminUser(db *gorm.DB) error {
	var adminRole model.Role
	if err := db.Where("name = ?", model.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@rtc.org").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Email:        "admin@rtc.org",
		PasswordHash: string(hashedPasswordBytes),
		RoleID:       &adminRole.ID,
	}
	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	adminProfile := model.Profile{
		UserID:   adminUser.ID,
		FullName: "Administrator",
		Level:    string(model.LevelResponsible),
	}
	if err := db.Create(&adminProfile).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded: admin@rtc.org / admin123")
	return nil
}
