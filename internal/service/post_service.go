package service

import (
	"context"

	"github.com/pressdesk/editorial-backend/internal/common"
	"github.com/pressdesk/editorial-backend/internal/domain"
	"github.com/pressdesk/editorial-backend/internal/repository"
	pkgcache "github.com/pressdesk/editorial-backend/pkg/cache"
)

// PostService business logic for content items
type PostService interface {
	ListPosts(postType string, workflowStatus domain.Status, page, limit int) ([]*domain.PostResponse, *common.Meta, error)
	GetPost(id uint64) (*domain.PostResponse, error)
	CreatePost(req *domain.CreatePostRequest, actor *domain.Member) (*domain.PostResponse, error)
	UpdatePost(id uint64, req *domain.UpdatePostRequest, actor *domain.Member) (*domain.PostResponse, error)
}

type postService struct {
	repo     repository.PostRepository
	versions *VersionService
	config   *WorkflowConfigService
	cache    pkgcache.Service
}

// NewPostService creates a new PostService
func NewPostService(repo repository.PostRepository, versions *VersionService, config *WorkflowConfigService, cache pkgcache.Service) PostService {
	return &postService{repo: repo, versions: versions, config: config, cache: cache}
}

// ListPosts retrieves paginated posts
func (s *postService) ListPosts(postType string, workflowStatus domain.Status, page, limit int) ([]*domain.PostResponse, *common.Meta, error) {
	// Validate pagination
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	posts, total, err := s.repo.List(postType, workflowStatus, page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*domain.PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = post.ToResponse()
	}

	meta := &common.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	}

	return responses, meta, nil
}

// GetPost retrieves a single post by ID
func (s *postService) GetPost(id uint64) (*domain.PostResponse, error) {
	ctx := context.Background()

	if s.cache != nil {
		var resp domain.PostResponse
		if err := s.cache.GetPost(ctx, id, &resp); err == nil {
			return &resp, nil
		}
	}

	post, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	resp := post.ToResponse()
	if s.cache != nil {
		_ = s.cache.SetPost(ctx, id, resp)
	}
	return resp, nil
}

// CreatePost creates a new post and seeds version 1 from its fields.
func (s *postService) CreatePost(req *domain.CreatePostRequest, actor *domain.Member) (*domain.PostResponse, error) {
	postType := req.PostType
	if postType == "" {
		postType = domain.PostTypeArticle
	}

	post := &domain.Post{
		PostType:       postType,
		Title:          req.Title,
		Summary:        req.Summary,
		Content:        req.Content,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
		Status:         domain.PostStatusDraft,
		WorkflowStatus: domain.StatusDraft,
		AuthorID:       actor.ID,
	}

	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	if len(req.CategoryIDs) > 0 {
		if err := s.repo.ReplaceCategories(post, req.CategoryIDs); err != nil {
			return nil, err
		}
	}
	if len(req.TagIDs) > 0 {
		if err := s.repo.ReplaceTags(post, req.TagIDs); err != nil {
			return nil, err
		}
	}

	// Reload so the snapshot sees the taxonomy associations.
	post, err := s.repo.FindByID(post.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.versions.CreateVersion(post, actor, ""); err != nil {
		return nil, err
	}

	return post.ToResponse(), nil
}

// UpdatePost applies a partial update to the post's working fields.
// Versioned history is only affected when a new version is cut.
func (s *postService) UpdatePost(id uint64, req *domain.UpdatePostRequest, actor *domain.Member) (*domain.PostResponse, error) {
	post, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if post.Status == domain.PostStatusPublished && s.config != nil {
		if !s.config.Resolve(post.PostType).MayEditPublished(actor.RoleList()) {
			return nil, common.ErrForbidden
		}
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Summary != nil {
		post.Summary = *req.Summary
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.SEOTitle != nil {
		post.SEOTitle = *req.SEOTitle
	}
	if req.SEODescription != nil {
		post.SEODescription = *req.SEODescription
	}

	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	if req.CategoryIDs != nil {
		if err := s.repo.ReplaceCategories(post, *req.CategoryIDs); err != nil {
			return nil, err
		}
	}
	if req.TagIDs != nil {
		if err := s.repo.ReplaceTags(post, *req.TagIDs); err != nil {
			return nil, err
		}
	}

	if s.cache != nil {
		_ = s.cache.InvalidatePost(context.Background(), id)
	}

	post, err = s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return post.ToResponse(), nil
}
