package service

import (
	"errors"
	"testing"

	"github.com/pressdesk/editorial-backend/internal/common"
	"github.com/pressdesk/editorial-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionService_CreateVersionNumbersAreGapless(t *testing.T) {
	f := newWorkflowFixture(t)
	post, v1 := f.createPost(t, true)

	assert.Equal(t, uint(1), v1.VersionNumber)

	v2, err := f.versionSvc.CreateVersion(post, f.writer, "second pass")
	require.NoError(t, err)
	assert.Equal(t, uint(2), v2.VersionNumber)
	assert.Equal(t, "second pass", v2.VersionNote)

	v3, err := f.versionSvc.CreateVersion(post, f.writer, "")
	require.NoError(t, err)
	assert.Equal(t, uint(3), v3.VersionNumber)

	post = f.reloadPost(t, post.ID)
	require.NotNil(t, post.DraftVersionID)
	assert.Equal(t, v3.ID, *post.DraftVersionID)
}

func TestVersionService_SnapshotCapturesFieldsAndTaxonomy(t *testing.T) {
	f := newWorkflowFixture(t)
	_, v1 := f.createPost(t, true)

	snap, err := v1.DecodeSnapshot()
	require.NoError(t, err)

	title, ok := snap.GetString("title")
	require.True(t, ok)
	assert.Equal(t, "City council approves budget", title)

	catIDs, ok := snap.GetIDList("category_ids")
	require.True(t, ok)
	assert.Equal(t, []uint64{f.categoryID}, catIDs)

	tagIDs, ok := snap.GetIDList("tag_ids")
	require.True(t, ok)
	assert.Equal(t, []uint64{f.tagID}, tagIDs)
}

func TestVersionService_CreationWritesNullOriginAudit(t *testing.T) {
	f := newWorkflowFixture(t)
	_, v1 := f.createPost(t, true)

	history, err := f.transitions.ListByVersion(v1.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Nil(t, history[0].FromStatus)
	assert.Equal(t, domain.StatusDraft, history[0].ToStatus)
	assert.Equal(t, f.writer.ID, history[0].PerformedBy)
}

func TestVersionService_ListVersionsNewestFirst(t *testing.T) {
	f := newWorkflowFixture(t)
	post, _ := f.createPost(t, true)

	_, err := f.versionSvc.CreateVersion(post, f.writer, "")
	require.NoError(t, err)

	versions, err := f.versionSvc.ListVersions(post.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, uint(2), versions[0].VersionNumber)
	assert.Equal(t, uint(1), versions[1].VersionNumber)
}

func TestVersionService_GetVersionByNumber(t *testing.T) {
	f := newWorkflowFixture(t)
	post, v1 := f.createPost(t, true)

	_, err := f.versionSvc.CreateVersion(post, f.writer, "second pass")
	require.NoError(t, err)

	got, err := f.versionSvc.GetVersionByNumber(post.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, v1.ID, got.ID)

	_, err = f.versionSvc.GetVersionByNumber(post.ID, 99)
	assert.True(t, errors.Is(err, common.ErrVersionNotFound))
}

func TestVersionService_GetActiveVersion(t *testing.T) {
	f := newWorkflowFixture(t)
	post, version := f.createPost(t, true)

	_, err := f.versionSvc.GetActiveVersion(post.ID)
	assert.True(t, errors.Is(err, common.ErrVersionNotFound), "nothing is live before publish")

	_, err = f.workflow.Transition(version.ID, domain.StatusCopydesk, f.writer, "")
	require.NoError(t, err)
	_, err = f.workflow.Transition(version.ID, domain.StatusParked, f.copydesk, "")
	require.NoError(t, err)
	_, err = f.workflow.Transition(version.ID, domain.StatusPublished, f.editor, "")
	require.NoError(t, err)

	active, err := f.versionSvc.GetActiveVersion(post.ID)
	require.NoError(t, err)
	assert.Equal(t, version.ID, active.ID)
	assert.True(t, active.IsActive)
}
