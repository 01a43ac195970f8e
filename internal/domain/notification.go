package domain

import "time"

// Notification types.
const (
	NotificationTypeWorkflow = "workflow"
)

// Notification represents an inbox notification for a member
type Notification struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MemberID   string    `gorm:"column:member_id;type:varchar(50);index" json:"member_id"`
	Type       string    `gorm:"column:type;type:varchar(30)" json:"type"`
	Title      string    `gorm:"column:title;type:varchar(255)" json:"title"`
	Content    string    `gorm:"column:content;type:text" json:"content"`
	URL        string    `gorm:"column:url;type:varchar(255)" json:"url,omitempty"`
	SenderID   string    `gorm:"column:sender_id;type:varchar(50)" json:"sender_id,omitempty"`
	SenderName string    `gorm:"column:sender_name;type:varchar(100)" json:"sender_name,omitempty"`
	IsRead     bool      `gorm:"column:is_read" json:"is_read"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the table name
func (Notification) TableName() string { return "notifications" }

// NotificationSummaryResponse represents unread count response
type NotificationSummaryResponse struct {
	TotalUnread int `json:"total_unread"`
}

// NotificationListResponse represents notification list response
type NotificationListResponse struct {
	Items       []NotificationItem `json:"items"`
	Total       int64              `json:"total"`
	UnreadCount int64              `json:"unread_count"`
	Page        int                `json:"page"`
	Limit       int                `json:"limit"`
	TotalPages  int                `json:"total_pages"`
}

// NotificationItem represents a single notification in list
type NotificationItem struct {
	ID         int    `json:"id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	URL        string `json:"url,omitempty"`
	SenderID   string `json:"sender_id,omitempty"`
	SenderName string `json:"sender_name,omitempty"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at"`
}
