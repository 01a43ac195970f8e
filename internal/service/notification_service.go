package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/pressdesk/editorial-backend/internal/domain"
	"github.com/pressdesk/editorial-backend/internal/repository"
)

// NotificationService handles notification business logic, including
// the workflow fan-out: who gets told about a status change.
type NotificationService struct {
	repo    *repository.NotificationRepository
	members repository.MemberRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo *repository.NotificationRepository, members repository.MemberRepository) *NotificationService {
	return &NotificationService{repo: repo, members: members}
}

// NotifyWorkflowTransition dispatches inbox notifications for a
// committed workflow transition. Recipients depend on the target
// status: submissions go to the desk (editors/admins), decisions go to
// the author — unless the author made the change themselves.
func (s *NotificationService) NotifyWorkflowTransition(post *domain.Post, version *domain.ContentVersion, from, to domain.Status, actor *domain.Member, comment string) error {
	recipients, err := s.recipients(post, from, to, actor)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%q moved to %s", post.Title, to)
	content := fmt.Sprintf("Version %d: %s → %s", version.VersionNumber, from, to)
	if comment != "" {
		content += " — " + comment
	}

	// Tokens are not required to carry a display name.
	senderName := actor.Name
	if senderName == "" {
		if m, err := s.members.FindByID(actor.ID); err == nil {
			senderName = m.Name
		}
	}

	var errs []error
	for _, memberID := range recipients {
		n := &domain.Notification{
			MemberID:   memberID,
			Type:       domain.NotificationTypeWorkflow,
			Title:      title,
			Content:    content,
			URL:        fmt.Sprintf("/posts/%d/versions/%d", post.ID, version.ID),
			SenderID:   actor.ID,
			SenderName: senderName,
		}
		if err := s.repo.Create(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// recipients resolves who should hear about the transition. The actor
// never notifies themselves.
func (s *NotificationService) recipients(post *domain.Post, from, to domain.Status, actor *domain.Member) ([]string, error) {
	switch {
	case to == domain.StatusCopydesk:
		// Submitted for review: tell the desk.
		desk, err := s.members.FindByRoles(domain.RoleEditor, domain.RoleAdmin)
		if err != nil {
			return nil, err
		}
		var ids []string
		for _, m := range desk {
			if m.ID != actor.ID {
				ids = append(ids, m.ID)
			}
		}
		return ids, nil

	case to == domain.StatusParked,
		to == domain.StatusPublished,
		to == domain.StatusRejected,
		from == domain.StatusCopydesk && to == domain.StatusDraft:
		// Decision on the author's work. A copydesk→draft move by the
		// author themself is a withdrawal, not a rejection: stay quiet.
		if post.AuthorID == "" || post.AuthorID == actor.ID {
			return nil, nil
		}
		return []string{post.AuthorID}, nil
	}
	return nil, nil
}

// GetUnreadCount returns the unread notification count for a member
func (s *NotificationService) GetUnreadCount(memberID string) (*domain.NotificationSummaryResponse, error) {
	count, err := s.repo.GetUnreadCount(memberID)
	if err != nil {
		return nil, err
	}
	return &domain.NotificationSummaryResponse{TotalUnread: int(count)}, nil
}

// GetList returns paginated notifications for a member
func (s *NotificationService) GetList(memberID string, page, limit int) (*domain.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit
	notifications, total, err := s.repo.GetList(memberID, offset, limit)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.GetUnreadCount(memberID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.NotificationItem, len(notifications))
	for i, n := range notifications {
		items[i] = domain.NotificationItem{
			ID:         n.ID,
			Type:       n.Type,
			Title:      n.Title,
			Content:    n.Content,
			URL:        n.URL,
			SenderID:   n.SenderID,
			SenderName: n.SenderName,
			IsRead:     n.IsRead,
			CreatedAt:  n.CreatedAt.Format(time.RFC3339),
		}
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &domain.NotificationListResponse{
		Items:       items,
		Total:       total,
		UnreadCount: unreadCount,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
	}, nil
}

// MarkAsRead marks a notification as read after ownership check
func (s *NotificationService) MarkAsRead(memberID string, notificationID int) error {
	n, err := s.repo.FindByID(notificationID)
	if err != nil {
		return err
	}
	if n == nil {
		return errors.New("notification not found")
	}
	if n.MemberID != memberID {
		return errors.New("forbidden")
	}
	return s.repo.MarkAsRead(notificationID)
}

// MarkAllAsRead marks all notifications as read for a member
func (s *NotificationService) MarkAllAsRead(memberID string) error {
	return s.repo.MarkAllAsRead(memberID)
}

// Delete deletes a notification after ownership check
func (s *NotificationService) Delete(memberID string, notificationID int) error {
	n, err := s.repo.FindByID(notificationID)
	if err != nil {
		return err
	}
	if n == nil {
		return errors.New("notification not found")
	}
	if n.MemberID != memberID {
		return errors.New("forbidden")
	}
	return s.repo.Delete(notificationID)
}
