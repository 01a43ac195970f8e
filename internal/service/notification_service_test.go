package service

import (
	"testing"

	"github.com/pressdesk/editorial-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_SubmitNotifiesDesk(t *testing.T) {
	f := newWorkflowFixture(t)
	post, version := f.createPost(t, true)

	err := f.notifySvc.NotifyWorkflowTransition(post, version, domain.StatusDraft, domain.StatusCopydesk, f.writer, "please review")
	require.NoError(t, err)

	var notifications []domain.Notification
	require.NoError(t, f.db.Order("member_id").Find(&notifications).Error)
	require.Len(t, notifications, 2)
	assert.Equal(t, f.admin.ID, notifications[0].MemberID)
	assert.Equal(t, f.editor.ID, notifications[1].MemberID)

	n := notifications[0]
	assert.Equal(t, domain.NotificationTypeWorkflow, n.Type)
	assert.Contains(t, n.Title, post.Title)
	assert.Contains(t, n.Content, "please review")
	assert.Equal(t, f.writer.ID, n.SenderID)
	assert.Equal(t, f.writer.Name, n.SenderName)
}

func TestNotificationService_DecisionNotifiesAuthor(t *testing.T) {
	f := newWorkflowFixture(t)
	post, version := f.createPost(t, true)

	err := f.notifySvc.NotifyWorkflowTransition(post, version, domain.StatusCopydesk, domain.StatusParked, f.editor, "approved")
	require.NoError(t, err)

	var notifications []domain.Notification
	require.NoError(t, f.db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, post.AuthorID, notifications[0].MemberID)
}

func TestNotificationService_SelfWithdrawalIsSilent(t *testing.T) {
	f := newWorkflowFixture(t)
	post, version := f.createPost(t, true)

	err := f.notifySvc.NotifyWorkflowTransition(post, version, domain.StatusCopydesk, domain.StatusDraft, f.writer, "")
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&domain.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestNotificationService_MarkAsReadOwnership(t *testing.T) {
	f := newWorkflowFixture(t)

	n := &domain.Notification{MemberID: f.writer.ID, Type: domain.NotificationTypeWorkflow, Title: "t"}
	require.NoError(t, f.notificationRepo.Create(n))

	err := f.notifySvc.MarkAsRead(f.editor.ID, n.ID)
	require.Error(t, err)
	assert.Equal(t, "forbidden", err.Error())

	require.NoError(t, f.notifySvc.MarkAsRead(f.writer.ID, n.ID))

	summary, err := f.notifySvc.GetUnreadCount(f.writer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalUnread)

	err = f.notifySvc.MarkAsRead(f.writer.ID, 99999)
	require.Error(t, err)
	assert.Equal(t, "notification not found", err.Error())
}

func TestNotificationService_GetListPagination(t *testing.T) {
	f := newWorkflowFixture(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, f.notificationRepo.Create(&domain.Notification{
			MemberID: f.writer.ID,
			Type:     domain.NotificationTypeWorkflow,
			Title:    "t",
		}))
	}

	list, err := f.notifySvc.GetList(f.writer.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, int64(5), list.Total)
	assert.Equal(t, int64(5), list.UnreadCount)
	assert.Equal(t, 3, list.TotalPages)
}
