package repository

import (
	"errors"

	"github.com/pressdesk/editorial-backend/internal/common"
	"github.com/pressdesk/editorial-backend/internal/domain"
	"gorm.io/gorm"
)

// VersionRepository data access for content versions
type VersionRepository interface {
	WithTx(tx *gorm.DB) VersionRepository
	Create(version *domain.ContentVersion) error
	FindByID(id uint64) (*domain.ContentVersion, error)
	FindByPost(postID uint64) ([]*domain.ContentVersion, error)
	FindByPostAndNumber(postID uint64, number uint) (*domain.ContentVersion, error)
	FindActive(postID uint64) (*domain.ContentVersion, error)
	NextVersionNumber(postID uint64) (uint, error)
	Update(version *domain.ContentVersion) error
	UpdateStatus(id uint64, status domain.Status) error
	DeactivateAllForPost(postID uint64) error
	Activate(id uint64) error
	CountActive(postID uint64) (int64, error)
}

type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new VersionRepository
func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

func (r *versionRepository) WithTx(tx *gorm.DB) VersionRepository {
	return &versionRepository{db: tx}
}

func (r *versionRepository) Create(version *domain.ContentVersion) error {
	return r.db.Create(version).Error
}

func (r *versionRepository) FindByID(id uint64) (*domain.ContentVersion, error) {
	var version domain.ContentVersion
	err := r.db.First(&version, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrVersionNotFound
		}
		return nil, err
	}
	return &version, nil
}

func (r *versionRepository) FindByPost(postID uint64) ([]*domain.ContentVersion, error) {
	var versions []*domain.ContentVersion
	err := r.db.Where("post_id = ?", postID).Order("version_number DESC").Find(&versions).Error
	return versions, err
}

func (r *versionRepository) FindByPostAndNumber(postID uint64, number uint) (*domain.ContentVersion, error) {
	var version domain.ContentVersion
	err := r.db.Where("post_id = ? AND version_number = ?", postID, number).First(&version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrVersionNotFound
		}
		return nil, err
	}
	return &version, nil
}

func (r *versionRepository) FindActive(postID uint64) (*domain.ContentVersion, error) {
	var version domain.ContentVersion
	err := r.db.Where("post_id = ? AND is_active = ?", postID, true).First(&version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrVersionNotFound
		}
		return nil, err
	}
	return &version, nil
}

func (r *versionRepository) NextVersionNumber(postID uint64) (uint, error) {
	var maxVersion *uint
	err := r.db.Model(&domain.ContentVersion{}).
		Where("post_id = ?", postID).
		Select("MAX(version_number)").
		Scan(&maxVersion).Error
	if err != nil {
		return 1, err
	}
	if maxVersion == nil {
		return 1, nil
	}
	return *maxVersion + 1, nil
}

func (r *versionRepository) Update(version *domain.ContentVersion) error {
	return r.db.Model(version).Select("*").Omit("created_at").Updates(version).Error
}

func (r *versionRepository) UpdateStatus(id uint64, status domain.Status) error {
	return r.db.Model(&domain.ContentVersion{}).
		Where("id = ?", id).
		Update("workflow_status", status).Error
}

// DeactivateAllForPost clears is_active on every version of a post.
// Must run inside the same transaction as the following Activate.
func (r *versionRepository) DeactivateAllForPost(postID uint64) error {
	return r.db.Model(&domain.ContentVersion{}).
		Where("post_id = ? AND is_active = ?", postID, true).
		Update("is_active", false).Error
}

func (r *versionRepository) Activate(id uint64) error {
	return r.db.Model(&domain.ContentVersion{}).
		Where("id = ?", id).
		Update("is_active", true).Error
}

func (r *versionRepository) CountActive(postID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.ContentVersion{}).
		Where("post_id = ? AND is_active = ?", postID, true).
		Count(&count).Error
	return count, err
}
