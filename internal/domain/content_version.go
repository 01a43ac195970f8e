package domain

import "time"

// ContentVersion is a snapshot of a post's versionable fields at a
// workflow status. Version numbers start at 1 and are gapless per post.
// At most one version per post has is_active = true; activation always
// bulk-deactivates siblings in the same transaction.
type ContentVersion struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID         uint64    `gorm:"column:post_id;index" json:"post_id"`
	VersionNumber  uint      `gorm:"column:version_number" json:"version_number"`
	Snapshot       string    `gorm:"column:snapshot;type:json" json:"snapshot"`
	WorkflowStatus Status    `gorm:"column:workflow_status;type:varchar(20);index;default:draft" json:"workflow_status"`
	IsActive       bool      `gorm:"column:is_active;index" json:"is_active"`
	CreatedBy      string    `gorm:"column:created_by;type:varchar(50)" json:"created_by"`
	VersionNote    string    `gorm:"column:version_note;type:varchar(255)" json:"version_note"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ContentVersion) TableName() string { return "content_versions" }

// DecodeSnapshot parses the version's stored snapshot.
func (v *ContentVersion) DecodeSnapshot() (Snapshot, error) {
	return DecodeSnapshot(v.Snapshot)
}

// VersionResponse is the API shape of a content version (snapshot
// omitted from list views).
type VersionResponse struct {
	ID             uint64    `json:"id"`
	PostID         uint64    `json:"post_id"`
	VersionNumber  uint      `json:"version_number"`
	WorkflowStatus Status    `json:"workflow_status"`
	IsActive       bool      `json:"is_active"`
	CreatedBy      string    `json:"created_by"`
	VersionNote    string    `json:"version_note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	Snapshot       Snapshot  `json:"snapshot,omitempty"`
}

// ToResponse converts a version to its API shape.
func (v *ContentVersion) ToResponse(withSnapshot bool) *VersionResponse {
	resp := &VersionResponse{
		ID:             v.ID,
		PostID:         v.PostID,
		VersionNumber:  v.VersionNumber,
		WorkflowStatus: v.WorkflowStatus,
		IsActive:       v.IsActive,
		CreatedBy:      v.CreatedBy,
		VersionNote:    v.VersionNote,
		CreatedAt:      v.CreatedAt,
	}
	if withSnapshot {
		if snap, err := v.DecodeSnapshot(); err == nil {
			resp.Snapshot = snap
		}
	}
	return resp
}
