package domain

// Status is a workflow status of a content version.
type Status string

// Workflow statuses. StatusReview is a legacy alias kept only so old
// persisted rows still match transitions; it is never a valid target.
const (
	StatusDraft     Status = "draft"
	StatusCopydesk  Status = "copydesk"
	StatusParked    Status = "parked"
	StatusRejected  Status = "rejected"
	StatusScheduled Status = "scheduled"
	StatusPublished Status = "published"

	StatusReview Status = "review" // deprecated alias for copydesk
)

// Role names used in workflow transition gating.
const (
	RoleWriter   = "writer"
	RoleCopydesk = "copydesk"
	RoleEditor   = "editor"
	RoleAdmin    = "admin"
)

// NormalizeStatus maps the legacy review status to copydesk.
// Applied when matching transitions so old rows keep working.
func NormalizeStatus(s Status) Status {
	if s == StatusReview {
		return StatusCopydesk
	}
	return s
}

// WorkflowState describes one state in a workflow config (for admin UI).
type WorkflowState struct {
	Key   Status `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// TransitionDef declares a directed, role-gated edge between two statuses.
type TransitionDef struct {
	From  Status   `json:"from"`
	To    Status   `json:"to"`
	Roles []string `json:"roles"`
	Label string   `json:"label"`
}

// Allows reports whether any of the actor roles may take this edge.
func (t TransitionDef) Allows(roles []string) bool {
	for _, have := range roles {
		for _, want := range t.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// WorkflowConfig is the resolved workflow definition for a post type.
// Stored as JSON in the settings table; transition order is declaration
// order and must be preserved.
type WorkflowConfig struct {
	States             []WorkflowState `json:"states"`
	Transitions        []TransitionDef `json:"transitions"`
	PublishRoles       []string        `json:"publish_roles"`
	EditPublishedRoles []string        `json:"edit_published_roles"`
}

// TransitionsFrom returns the transitions leaving the given status, in
// declaration order. The legacy review alias matches copydesk edges.
func (c *WorkflowConfig) TransitionsFrom(from Status) []TransitionDef {
	from = NormalizeStatus(from)
	var out []TransitionDef
	for _, t := range c.Transitions {
		if NormalizeStatus(t.From) == from {
			out = append(out, t)
		}
	}
	return out
}

// MayPublish reports whether the roles may use the direct publish and
// make-live operations.
func (c *WorkflowConfig) MayPublish(roles []string) bool {
	return roleAllowed(c.PublishRoles, roles)
}

// MayEditPublished reports whether the roles may edit a post that is
// currently published.
func (c *WorkflowConfig) MayEditPublished(roles []string) bool {
	return roleAllowed(c.EditPublishedRoles, roles)
}

// roleAllowed treats an empty allowed set as unrestricted.
func roleAllowed(allowed, roles []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, have := range roles {
		for _, want := range allowed {
			if have == want {
				return true
			}
		}
	}
	return false
}

// DefaultWorkflowConfig returns the built-in workflow used when no
// config has been saved for a post type.
func DefaultWorkflowConfig() *WorkflowConfig {
	editorial := []string{RoleEditor, RoleAdmin}
	deskRoles := []string{RoleCopydesk, RoleEditor, RoleAdmin}

	return &WorkflowConfig{
		States: []WorkflowState{
			{Key: StatusDraft, Label: "Draft", Color: "gray", Icon: "pencil"},
			{Key: StatusCopydesk, Label: "Copy desk", Color: "blue", Icon: "eye"},
			{Key: StatusParked, Label: "Parked", Color: "yellow", Icon: "pause"},
			{Key: StatusScheduled, Label: "Scheduled", Color: "purple", Icon: "clock"},
			{Key: StatusPublished, Label: "Published", Color: "green", Icon: "check"},
		},
		Transitions: []TransitionDef{
			{From: StatusDraft, To: StatusCopydesk, Roles: []string{RoleWriter, RoleEditor, RoleAdmin}, Label: "Submit to copy desk"},
			{From: StatusCopydesk, To: StatusDraft, Roles: []string{RoleWriter, RoleCopydesk, RoleEditor, RoleAdmin}, Label: "Return to draft"},
			{From: StatusCopydesk, To: StatusParked, Roles: deskRoles, Label: "Approve"},
			{From: StatusParked, To: StatusDraft, Roles: editorial, Label: "Reopen"},
			{From: StatusParked, To: StatusScheduled, Roles: editorial, Label: "Schedule"},
			{From: StatusParked, To: StatusPublished, Roles: editorial, Label: "Publish"},
			{From: StatusScheduled, To: StatusParked, Roles: editorial, Label: "Unschedule"},
			{From: StatusScheduled, To: StatusPublished, Roles: editorial, Label: "Publish now"},
		},
		PublishRoles:       editorial,
		EditPublishedRoles: editorial,
	}
}
