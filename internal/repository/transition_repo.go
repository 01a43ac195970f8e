package repository

import (
	"github.com/pressdesk/editorial-backend/internal/domain"
	"gorm.io/gorm"
)

// TransitionRepository data access for the workflow audit trail.
// Append-only: no update or delete methods on purpose.
type TransitionRepository interface {
	WithTx(tx *gorm.DB) TransitionRepository
	Create(transition *domain.WorkflowTransition) error
	ListByVersion(versionID uint64) ([]*domain.WorkflowTransition, error)
	CountByVersion(versionID uint64) (int64, error)
}

type transitionRepository struct {
	db *gorm.DB
}

// NewTransitionRepository creates a new TransitionRepository
func NewTransitionRepository(db *gorm.DB) TransitionRepository {
	return &transitionRepository{db: db}
}

func (r *transitionRepository) WithTx(tx *gorm.DB) TransitionRepository {
	return &transitionRepository{db: tx}
}

func (r *transitionRepository) Create(transition *domain.WorkflowTransition) error {
	return r.db.Create(transition).Error
}

// ListByVersion returns a version's transitions oldest first, so the
// history reads in the order it happened.
func (r *transitionRepository) ListByVersion(versionID uint64) ([]*domain.WorkflowTransition, error) {
	var transitions []*domain.WorkflowTransition
	err := r.db.Where("version_id = ?", versionID).
		Order("created_at ASC, id ASC").
		Find(&transitions).Error
	return transitions, err
}

func (r *transitionRepository) CountByVersion(versionID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.WorkflowTransition{}).
		Where("version_id = ?", versionID).
		Count(&count).Error
	return count, err
}
