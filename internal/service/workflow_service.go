package service

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/pressdesk/editorial-backend/internal/common"
	"github.com/pressdesk/editorial-backend/internal/domain"
	"github.com/pressdesk/editorial-backend/internal/repository"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var workflowTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "workflow_transitions_total",
		Help: "Total number of committed workflow transitions",
	},
	[]string{"post_type", "to_status"},
)

// WorkflowNotifier is the side-effect sink called once per committed
// transition. Implementations must tolerate being called after the
// storage transaction ended; errors are logged, never propagated.
type WorkflowNotifier interface {
	NotifyWorkflowTransition(post *domain.Post, version *domain.ContentVersion, from, to domain.Status, actor *domain.Member, comment string) error
}

// WorkflowService orchestrates the editorial workflow: transition
// legality, approval gating, version activation and the publish
// procedure. All multi-step mutations run in one gorm transaction.
type WorkflowService struct {
	db          *gorm.DB
	posts       repository.PostRepository
	versions    repository.VersionRepository
	transitions repository.TransitionRepository
	config      *WorkflowConfigService
	notifier    WorkflowNotifier
	log         zerolog.Logger
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(
	db *gorm.DB,
	posts repository.PostRepository,
	versions repository.VersionRepository,
	transitions repository.TransitionRepository,
	config *WorkflowConfigService,
	log zerolog.Logger,
) *WorkflowService {
	return &WorkflowService{
		db:          db,
		posts:       posts,
		versions:    versions,
		transitions: transitions,
		config:      config,
		log:         log,
	}
}

// SetNotifier sets the notification sink (optional dependency)
func (s *WorkflowService) SetNotifier(notifier WorkflowNotifier) {
	s.notifier = notifier
}

// AvailableTransitions returns the transitions the actor may take from
// the version's current status, in config declaration order.
func (s *WorkflowService) AvailableTransitions(roles []string, post *domain.Post, version *domain.ContentVersion) []domain.TransitionDef {
	cfg := s.config.Resolve(post.PostType)
	var out []domain.TransitionDef
	for _, t := range cfg.TransitionsFrom(version.WorkflowStatus) {
		if t.Allows(roles) {
			out = append(out, t)
		}
	}
	return out
}

// CanTransition reports whether the actor may move the version to the
// given status.
func (s *WorkflowService) CanTransition(roles []string, post *domain.Post, version *domain.ContentVersion, to domain.Status) bool {
	to = domain.NormalizeStatus(to)
	for _, t := range s.AvailableTransitions(roles, post, version) {
		if domain.NormalizeStatus(t.To) == to {
			return true
		}
	}
	return false
}

// CanPublish reports whether the actor's roles may use the direct
// publish and make-live operations for this post type.
func (s *WorkflowService) CanPublish(roles []string, post *domain.Post) bool {
	return s.config.Resolve(post.PostType).MayPublish(roles)
}

// Transition moves a version to a new workflow status. The audit
// record, version status, post mirror, publish procedure and the
// copydesk-return bookkeeping commit atomically; notification dispatch
// happens after commit and is best effort.
func (s *WorkflowService) Transition(versionID uint64, to domain.Status, actor *domain.Member, comment string) (*domain.WorkflowTransition, error) {
	version, err := s.versions.FindByID(versionID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.FindByID(version.PostID)
	if err != nil {
		return nil, err
	}

	to = domain.NormalizeStatus(to)
	from := domain.NormalizeStatus(version.WorkflowStatus)

	if !s.CanTransition(actor.RoleList(), post, version, to) {
		return nil, fmt.Errorf("%w: %s -> %s", common.ErrUnauthorizedTransition, from, to)
	}

	if to == domain.StatusParked {
		if err := s.checkApprovalGate(post, version); err != nil {
			return nil, err
		}
	}
	if to == domain.StatusPublished {
		if err := s.checkPublishGate(post); err != nil {
			return nil, err
		}
	}

	transition := &domain.WorkflowTransition{
		VersionID:   version.ID,
		FromStatus:  &from,
		ToStatus:    to,
		PerformedBy: actor.ID,
		Comment:     comment,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		versions := s.versions.WithTx(tx)
		posts := s.posts.WithTx(tx)

		if err := s.transitions.WithTx(tx).Create(transition); err != nil {
			return err
		}

		version.WorkflowStatus = to
		post.WorkflowStatus = to

		if from == domain.StatusCopydesk && to == domain.StatusDraft {
			// Rejected or withdrawn: editing resumes on this version.
			version.IsActive = false
			post.ActiveVersionID = nil
			post.DraftVersionID = &version.ID
		}

		if err := versions.Update(version); err != nil {
			return err
		}

		if to == domain.StatusPublished {
			return s.publishTx(tx, post, version)
		}
		return posts.Update(post)
	})
	if err != nil {
		return nil, err
	}

	workflowTransitionsTotal.WithLabelValues(post.PostType, string(to)).Inc()
	s.notify(post, version, from, to, actor, comment)

	return transition, nil
}

// Publish activates a version and applies its snapshot to the post.
// Allowed from parked or scheduled; re-publishing an already published
// version is a no-op-ish idempotent re-activation.
func (s *WorkflowService) Publish(versionID uint64) error {
	version, err := s.versions.FindByID(versionID)
	if err != nil {
		return err
	}
	post, err := s.posts.FindByID(version.PostID)
	if err != nil {
		return err
	}

	switch domain.NormalizeStatus(version.WorkflowStatus) {
	case domain.StatusParked, domain.StatusScheduled, domain.StatusPublished:
	default:
		return fmt.Errorf("%w: cannot publish from %s", common.ErrInvalidState, version.WorkflowStatus)
	}

	if err := s.checkPublishGate(post); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		version.WorkflowStatus = domain.StatusPublished
		return s.publishTx(tx, post, version)
	})
}

// publishTx runs the publish procedure inside an open transaction:
// single-active-version swap, snapshot apply, taxonomy replace, post
// promotion. The version's WorkflowStatus must already be set to
// published by the caller.
func (s *WorkflowService) publishTx(tx *gorm.DB, post *domain.Post, version *domain.ContentVersion) error {
	versions := s.versions.WithTx(tx)
	posts := s.posts.WithTx(tx)

	if err := versions.DeactivateAllForPost(post.ID); err != nil {
		return err
	}
	if err := versions.UpdateStatus(version.ID, domain.StatusPublished); err != nil {
		return err
	}
	if err := versions.Activate(version.ID); err != nil {
		return err
	}
	version.IsActive = true

	snap, err := version.DecodeSnapshot()
	if err != nil {
		return fmt.Errorf("decode snapshot for version %d: %w", version.ID, err)
	}
	post.ApplySnapshot(snap)

	if ids, ok := snap.GetIDList("category_ids"); ok {
		if err := posts.ReplaceCategories(post, ids); err != nil {
			return err
		}
	}
	if ids, ok := snap.GetIDList("tag_ids"); ok {
		if err := posts.ReplaceTags(post, ids); err != nil {
			return err
		}
	}

	now := time.Now()
	post.Status = domain.PostStatusPublished
	post.WorkflowStatus = domain.StatusPublished
	post.PublishedAt = &now
	post.ActiveVersionID = &version.ID

	return posts.Update(post)
}

// Unpublish takes a post off the live site. Versions are kept; the
// active one is merely deactivated.
func (s *WorkflowService) Unpublish(postID uint64) error {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.versions.WithTx(tx).DeactivateAllForPost(post.ID); err != nil {
			return err
		}
		post.Status = domain.PostStatusDraft
		post.WorkflowStatus = domain.StatusDraft
		post.PublishedAt = nil
		post.ActiveVersionID = nil
		return s.posts.WithTx(tx).Update(post)
	})
}

// RevertToVersion forks a new draft version from an old snapshot. The
// old version is never touched, so the audit trail stays intact.
func (s *WorkflowService) RevertToVersion(versionID uint64, actor *domain.Member) (*domain.ContentVersion, error) {
	oldVersion, err := s.versions.FindByID(versionID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.FindByID(oldVersion.PostID)
	if err != nil {
		return nil, err
	}

	var newVersion *domain.ContentVersion
	err = s.db.Transaction(func(tx *gorm.DB) error {
		versions := s.versions.WithTx(tx)

		number, err := versions.NextVersionNumber(post.ID)
		if err != nil {
			return err
		}

		newVersion = &domain.ContentVersion{
			PostID:         post.ID,
			VersionNumber:  number,
			Snapshot:       oldVersion.Snapshot,
			WorkflowStatus: domain.StatusDraft,
			CreatedBy:      actor.ID,
			VersionNote:    fmt.Sprintf("Reverted from version %d", oldVersion.VersionNumber),
		}
		if err := versions.Create(newVersion); err != nil {
			return err
		}

		created := &domain.WorkflowTransition{
			VersionID:   newVersion.ID,
			FromStatus:  nil, // initial creation
			ToStatus:    domain.StatusDraft,
			PerformedBy: actor.ID,
		}
		if err := s.transitions.WithTx(tx).Create(created); err != nil {
			return err
		}

		post.DraftVersionID = &newVersion.ID
		post.WorkflowStatus = domain.StatusDraft
		return s.posts.WithTx(tx).Update(post)
	})
	if err != nil {
		return nil, err
	}
	return newVersion, nil
}

// MakeVersionLive switches which historical snapshot is live without
// forking a new version. Only legal on an already published post.
func (s *WorkflowService) MakeVersionLive(versionID uint64) error {
	version, err := s.versions.FindByID(versionID)
	if err != nil {
		return err
	}
	post, err := s.posts.FindByID(version.PostID)
	if err != nil {
		return err
	}
	if post.Status != domain.PostStatusPublished {
		return fmt.Errorf("%w: post is not published", common.ErrInvalidState)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		version.WorkflowStatus = domain.StatusPublished
		if err := s.publishTx(tx, post, version); err != nil {
			return err
		}
		post.DraftVersionID = &version.ID
		return s.posts.WithTx(tx).Update(post)
	})
}

// History returns a version's transition audit trail, oldest first.
func (s *WorkflowService) History(versionID uint64) ([]*domain.WorkflowTransition, error) {
	if _, err := s.versions.FindByID(versionID); err != nil {
		return nil, err
	}
	return s.transitions.ListByVersion(versionID)
}

// checkApprovalGate requires at least one category and one tag before a
// version may be parked. The snapshot is consulted first; when it lacks
// a taxonomy key or lists nothing, the post's live associations count
// instead, so fixing the post's taxonomy lets the same version pass a
// retry.
func (s *WorkflowService) checkApprovalGate(post *domain.Post, version *domain.ContentVersion) error {
	snap, err := version.DecodeSnapshot()
	if err != nil {
		return fmt.Errorf("decode snapshot for version %d: %w", version.ID, err)
	}

	var missing []string
	if !s.hasTaxonomy(post, snap, "category_ids", s.posts.CountCategories) {
		missing = append(missing, "at least one category is required")
	}
	if !s.hasTaxonomy(post, snap, "tag_ids", s.posts.CountTags) {
		missing = append(missing, "at least one tag is required")
	}
	if len(missing) > 0 {
		return &common.ValidationError{Missing: missing}
	}
	return nil
}

func (s *WorkflowService) hasTaxonomy(post *domain.Post, snap domain.Snapshot, key string, liveCount func(uint64) (int64, error)) bool {
	if ids, ok := snap.GetIDList(key); ok && len(ids) > 0 {
		return true
	}
	count, err := liveCount(post.ID)
	if err != nil {
		s.log.Warn().Err(err).Uint64("post_id", post.ID).Str("key", key).Msg("taxonomy count failed, treating as missing")
		return false
	}
	return count > 0
}

// checkPublishGate re-checks taxonomy on the live post; publish can be
// invoked independently of Transition.
func (s *WorkflowService) checkPublishGate(post *domain.Post) error {
	var missing []string

	catCount, err := s.posts.CountCategories(post.ID)
	if err != nil {
		return err
	}
	if catCount == 0 {
		missing = append(missing, "at least one category is required")
	}

	tagCount, err := s.posts.CountTags(post.ID)
	if err != nil {
		return err
	}
	if tagCount == 0 {
		missing = append(missing, "at least one tag is required")
	}

	if len(missing) > 0 {
		return &common.ValidationError{Missing: missing}
	}
	return nil
}

// notify dispatches the workflow notification; failures are logged and
// never surfaced since the transition already committed.
func (s *WorkflowService) notify(post *domain.Post, version *domain.ContentVersion, from, to domain.Status, actor *domain.Member, comment string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyWorkflowTransition(post, version, from, to, actor, comment); err != nil {
		s.log.Error().Err(err).
			Uint64("version_id", version.ID).
			Str("from", string(from)).
			Str("to", string(to)).
			Msg("workflow notification dispatch failed")
	}
}
