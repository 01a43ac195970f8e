package domain

import "time"

// Setting is a key/value row in the settings store. Workflow configs
// live here under workflow.config.<post_type> keys as JSON.
type Setting struct {
	Key       string    `gorm:"column:key;primaryKey;type:varchar(190)" json:"key"`
	Value     string    `gorm:"column:value;type:text" json:"value"`
	UpdatedBy string    `gorm:"column:updated_by;type:varchar(50)" json:"updated_by"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string { return "settings" }

// Settings keys for workflow configuration.
const (
	SettingWorkflowConfigPrefix  = "workflow.config."
	SettingWorkflowConfigDefault = "workflow.config.default"
)

// WorkflowConfigKey returns the settings key for a post type's workflow
// config.
func WorkflowConfigKey(postType string) string {
	if postType == "" {
		return SettingWorkflowConfigDefault
	}
	return SettingWorkflowConfigPrefix + postType
}
