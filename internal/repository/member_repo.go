package repository

import (
	"errors"

	"github.com/pressdesk/editorial-backend/internal/common"
	"github.com/pressdesk/editorial-backend/internal/domain"
	"gorm.io/gorm"
)

// MemberRepository editorial staff account access
type MemberRepository interface {
	FindByID(id string) (*domain.Member, error)
	FindByRoles(roles ...string) ([]domain.Member, error)
	Create(member *domain.Member) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) FindByID(id string) (*domain.Member, error) {
	var member domain.Member
	err := r.db.Where("id = ?", id).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// FindByRoles returns members holding any of the given roles. Roles are
// stored as a CSV column; the LIKE scan is re-checked in Go so e.g.
// "editor" does not match a hypothetical "super-editor" role.
func (r *memberRepository) FindByRoles(roles ...string) ([]domain.Member, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	q := r.db.Model(&domain.Member{})
	for i, role := range roles {
		if i == 0 {
			q = q.Where("roles LIKE ?", "%"+role+"%")
		} else {
			q = q.Or("roles LIKE ?", "%"+role+"%")
		}
	}

	var candidates []domain.Member
	if err := q.Find(&candidates).Error; err != nil {
		return nil, err
	}

	var members []domain.Member
	for _, m := range candidates {
		for _, role := range roles {
			if m.HasRole(role) {
				members = append(members, m)
				break
			}
		}
	}
	return members, nil
}

func (r *memberRepository) Create(member *domain.Member) error {
	return r.db.Create(member).Error
}
