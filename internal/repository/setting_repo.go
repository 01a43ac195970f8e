package repository

import (
	"errors"

	"github.com/pressdesk/editorial-backend/internal/common"
	"github.com/pressdesk/editorial-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository key/value settings store access
type SettingRepository interface {
	GetAll() ([]domain.Setting, error)
	Get(key string) (string, error)
	Set(key, value, updatedBy string) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetAll() ([]domain.Setting, error) {
	var settings []domain.Setting
	err := r.db.Find(&settings).Error
	return settings, err
}

func (r *settingRepository) Get(key string) (string, error) {
	var setting domain.Setting
	err := r.db.Where("`key` = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", common.ErrNotFound
		}
		return "", err
	}
	return setting.Value, nil
}

// Set upserts a setting value.
func (r *settingRepository) Set(key, value, updatedBy string) error {
	setting := domain.Setting{
		Key:       key,
		Value:     value,
		UpdatedBy: updatedBy,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
	}).Create(&setting).Error
}
