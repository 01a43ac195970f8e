package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, StatusCopydesk, NormalizeStatus(StatusReview))
	assert.Equal(t, StatusDraft, NormalizeStatus(StatusDraft))
	assert.Equal(t, StatusPublished, NormalizeStatus(StatusPublished))
}

func TestTransitionDefAllows(t *testing.T) {
	def := TransitionDef{From: StatusDraft, To: StatusCopydesk, Roles: []string{RoleWriter, RoleEditor}}

	assert.True(t, def.Allows([]string{RoleWriter}))
	assert.True(t, def.Allows([]string{RoleCopydesk, RoleEditor}))
	assert.False(t, def.Allows([]string{RoleCopydesk}))
	assert.False(t, def.Allows(nil))
}

func TestTransitionsFromKeepsDeclarationOrder(t *testing.T) {
	cfg := DefaultWorkflowConfig()

	fromParked := cfg.TransitionsFrom(StatusParked)
	assert.Equal(t, []Status{StatusDraft, StatusScheduled, StatusPublished},
		[]Status{fromParked[0].To, fromParked[1].To, fromParked[2].To})
}

func TestTransitionsFromMatchesReviewAlias(t *testing.T) {
	cfg := &WorkflowConfig{
		Transitions: []TransitionDef{
			{From: StatusReview, To: StatusParked, Roles: []string{RoleEditor}},
			{From: StatusDraft, To: StatusCopydesk, Roles: []string{RoleWriter}},
		},
	}

	// Edges declared with the legacy alias match copydesk lookups and
	// vice versa.
	assert.Len(t, cfg.TransitionsFrom(StatusCopydesk), 1)
	assert.Len(t, cfg.TransitionsFrom(StatusReview), 1)
	assert.Equal(t, StatusParked, cfg.TransitionsFrom(StatusReview)[0].To)
}

func TestWorkflowConfigPublishGates(t *testing.T) {
	cfg := DefaultWorkflowConfig()

	assert.False(t, cfg.MayPublish([]string{RoleWriter}))
	assert.True(t, cfg.MayPublish([]string{RoleAdmin}))
	assert.False(t, cfg.MayEditPublished([]string{RoleCopydesk}))
	assert.True(t, cfg.MayEditPublished([]string{RoleEditor}))

	// An empty role set in a stored config means unrestricted.
	open := &WorkflowConfig{}
	assert.True(t, open.MayPublish([]string{RoleWriter}))
	assert.True(t, open.MayEditPublished(nil))
}

func TestMemberRoleList(t *testing.T) {
	m := &Member{Roles: "writer, editor,,admin "}
	assert.Equal(t, []string{"writer", "editor", "admin"}, m.RoleList())
	assert.True(t, m.HasRole("editor"))
	assert.False(t, m.HasRole("copydesk"))

	empty := &Member{}
	assert.Nil(t, empty.RoleList())
}

func TestSnapshotRoundTrip(t *testing.T) {
	post := &Post{
		Title:      "Headline",
		Summary:    "Sum",
		Content:    "Body",
		Categories: []Category{{ID: 3}},
		Tags:       []Tag{{ID: 7}, {ID: 9}},
	}

	raw, err := post.BuildSnapshot().Encode()
	assert.NoError(t, err)

	snap, err := DecodeSnapshot(raw)
	assert.NoError(t, err)

	title, ok := snap.GetString("title")
	assert.True(t, ok)
	assert.Equal(t, "Headline", title)

	tagIDs, ok := snap.GetIDList("tag_ids")
	assert.True(t, ok)
	assert.Equal(t, []uint64{7, 9}, tagIDs)

	// Absent keys report !ok so callers can fall back to live data.
	_, ok = snap.GetIDList("missing")
	assert.False(t, ok)
}

func TestApplySnapshotIgnoresUnknownKeys(t *testing.T) {
	post := &Post{Title: "Old"}
	post.ApplySnapshot(Snapshot{
		"title":        "New",
		"rogue_key":    "ignored",
		"author_id":    "never-applied",
		"category_ids": []uint64{1},
	})

	assert.Equal(t, "New", post.Title)
	assert.Equal(t, "", post.AuthorID, "non-versionable fields stay untouched")
}

func TestWorkflowConfigKey(t *testing.T) {
	assert.Equal(t, "workflow.config.recipe", WorkflowConfigKey("recipe"))
	assert.Equal(t, SettingWorkflowConfigDefault, WorkflowConfigKey(""))
}
