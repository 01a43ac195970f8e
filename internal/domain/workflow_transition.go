package domain

import "time"

// WorkflowTransition is an append-only audit record of a status change
// on a content version. FromStatus is null only for the record written
// when the version is first created. Rows are never updated or deleted.
type WorkflowTransition struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	VersionID   uint64    `gorm:"column:version_id;index" json:"version_id"`
	FromStatus  *Status   `gorm:"column:from_status;type:varchar(20)" json:"from_status"`
	ToStatus    Status    `gorm:"column:to_status;type:varchar(20)" json:"to_status"`
	PerformedBy string    `gorm:"column:performed_by;type:varchar(50)" json:"performed_by"`
	Comment     string    `gorm:"column:comment;type:text" json:"comment,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (WorkflowTransition) TableName() string { return "workflow_transitions" }
