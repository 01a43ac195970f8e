package service

import (
	"github.com/pressdesk/editorial-backend/internal/domain"
	"github.com/pressdesk/editorial-backend/internal/repository"
	"gorm.io/gorm"
)

// VersionService creates and reads content versions.
type VersionService struct {
	db          *gorm.DB
	posts       repository.PostRepository
	versions    repository.VersionRepository
	transitions repository.TransitionRepository
}

// NewVersionService creates a new VersionService
func NewVersionService(
	db *gorm.DB,
	posts repository.PostRepository,
	versions repository.VersionRepository,
	transitions repository.TransitionRepository,
) *VersionService {
	return &VersionService{
		db:          db,
		posts:       posts,
		versions:    versions,
		transitions: transitions,
	}
}

// CreateVersion snapshots the post's current field values into a new
// draft version and points the post's draft_version_id at it. The
// initial audit record has a null from_status.
func (s *VersionService) CreateVersion(post *domain.Post, actor *domain.Member, note string) (*domain.ContentVersion, error) {
	raw, err := post.BuildSnapshot().Encode()
	if err != nil {
		return nil, err
	}

	var version *domain.ContentVersion
	err = s.db.Transaction(func(tx *gorm.DB) error {
		versions := s.versions.WithTx(tx)

		number, err := versions.NextVersionNumber(post.ID)
		if err != nil {
			return err
		}

		version = &domain.ContentVersion{
			PostID:         post.ID,
			VersionNumber:  number,
			Snapshot:       raw,
			WorkflowStatus: domain.StatusDraft,
			CreatedBy:      actor.ID,
			VersionNote:    note,
		}
		if err := versions.Create(version); err != nil {
			return err
		}

		created := &domain.WorkflowTransition{
			VersionID:   version.ID,
			FromStatus:  nil, // initial creation
			ToStatus:    domain.StatusDraft,
			PerformedBy: actor.ID,
		}
		if err := s.transitions.WithTx(tx).Create(created); err != nil {
			return err
		}

		post.DraftVersionID = &version.ID
		post.WorkflowStatus = domain.StatusDraft
		return s.posts.WithTx(tx).Update(post)
	})
	if err != nil {
		return nil, err
	}
	return version, nil
}

// ListVersions returns a post's versions, newest first.
func (s *VersionService) ListVersions(postID uint64) ([]*domain.ContentVersion, error) {
	if _, err := s.posts.FindByID(postID); err != nil {
		return nil, err
	}
	return s.versions.FindByPost(postID)
}

// GetVersion returns a single version.
func (s *VersionService) GetVersion(versionID uint64) (*domain.ContentVersion, error) {
	return s.versions.FindByID(versionID)
}

// GetVersionByNumber returns a post's version by its per-post number.
func (s *VersionService) GetVersionByNumber(postID uint64, number uint) (*domain.ContentVersion, error) {
	if _, err := s.posts.FindByID(postID); err != nil {
		return nil, err
	}
	return s.versions.FindByPostAndNumber(postID, number)
}

// GetActiveVersion returns the version currently live for a post.
func (s *VersionService) GetActiveVersion(postID uint64) (*domain.ContentVersion, error) {
	if _, err := s.posts.FindByID(postID); err != nil {
		return nil, err
	}
	return s.versions.FindActive(postID)
}
