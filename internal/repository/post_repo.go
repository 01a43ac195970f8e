package repository

import (
	"errors"

	"github.com/pressdesk/editorial-backend/internal/common"
	"github.com/pressdesk/editorial-backend/internal/domain"
	"gorm.io/gorm"
)

// PostRepository data access for content items
type PostRepository interface {
	WithTx(tx *gorm.DB) PostRepository
	Create(post *domain.Post) error
	FindByID(id uint64) (*domain.Post, error)
	Update(post *domain.Post) error
	List(postType string, workflowStatus domain.Status, page, limit int) ([]*domain.Post, int64, error)
	ReplaceCategories(post *domain.Post, categoryIDs []uint64) error
	ReplaceTags(post *domain.Post, tagIDs []uint64) error
	CountCategories(postID uint64) (int64, error)
	CountTags(postID uint64) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) WithTx(tx *gorm.DB) PostRepository {
	return &postRepository{db: tx}
}

func (r *postRepository) Create(post *domain.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) FindByID(id uint64) (*domain.Post, error) {
	var post domain.Post
	err := r.db.Preload("Categories").Preload("Tags").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Update(post *domain.Post) error {
	// Select("*") so cleared pointer columns (active_version_id,
	// published_at) are written as NULL instead of being skipped.
	return r.db.Model(post).Select("*").Omit("Categories", "Tags", "created_at").Updates(post).Error
}

func (r *postRepository) List(postType string, workflowStatus domain.Status, page, limit int) ([]*domain.Post, int64, error) {
	var posts []*domain.Post
	var total int64

	q := r.db.Model(&domain.Post{})
	if postType != "" {
		q = q.Where("post_type = ?", postType)
	}
	if workflowStatus != "" {
		q = q.Where("workflow_status = ?", workflowStatus)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Preload("Categories").Preload("Tags").
		Order("updated_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ReplaceCategories swaps the post's category set (replace, not merge).
func (r *postRepository) ReplaceCategories(post *domain.Post, categoryIDs []uint64) error {
	categories := make([]domain.Category, len(categoryIDs))
	for i, id := range categoryIDs {
		categories[i] = domain.Category{ID: id}
	}
	return r.db.Model(post).Association("Categories").Replace(&categories)
}

// ReplaceTags swaps the post's tag set (replace, not merge).
func (r *postRepository) ReplaceTags(post *domain.Post, tagIDs []uint64) error {
	tags := make([]domain.Tag, len(tagIDs))
	for i, id := range tagIDs {
		tags[i] = domain.Tag{ID: id}
	}
	return r.db.Model(post).Association("Tags").Replace(&tags)
}

func (r *postRepository) CountCategories(postID uint64) (int64, error) {
	var count int64
	err := r.db.Table("post_categories").Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *postRepository) CountTags(postID uint64) (int64, error) {
	var count int64
	err := r.db.Table("post_tags").Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
