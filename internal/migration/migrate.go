package migration

import (
	"encoding/json"

	"github.com/pressdesk/editorial-backend/internal/domain"
	"github.com/pressdesk/editorial-backend/internal/repository"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for all tables and seeds the default
// workflow configuration and a bootstrap admin when none are stored
// yet.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Member{},
		&domain.Category{},
		&domain.Tag{},
		&domain.Post{},
		&domain.ContentVersion{},
		&domain.WorkflowTransition{},
		&domain.Setting{},
		&domain.Notification{},
	); err != nil {
		return err
	}

	if err := seedDefaultWorkflowConfig(db); err != nil {
		return err
	}
	return seedAdminMember(db)
}

// seedAdminMember creates a bootstrap admin account so a fresh install
// can reach the admin endpoints. Skipped once any member exists.
func seedAdminMember(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Member{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return repository.NewMemberRepository(db).Create(&domain.Member{
		ID:    "admin",
		Name:  "Administrator",
		Email: "admin@localhost",
		Roles: domain.RoleAdmin,
	})
}

func seedDefaultWorkflowConfig(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Setting{}).
		Where("`key` = ?", domain.SettingWorkflowConfigDefault).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	raw, err := json.Marshal(domain.DefaultWorkflowConfig())
	if err != nil {
		return err
	}

	return db.Create(&domain.Setting{
		Key:       domain.SettingWorkflowConfigDefault,
		Value:     string(raw),
		UpdatedBy: "system",
	}).Error
}
