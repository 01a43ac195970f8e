package service

import (
	"errors"
	"testing"

	"github.com/pressdesk/editorial-backend/internal/common"
	"github.com/pressdesk/editorial-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreateDefaultsToArticle(t *testing.T) {
	f := newWorkflowFixture(t)

	resp, err := f.postSvc.CreatePost(&domain.CreatePostRequest{Title: "Untyped"}, f.writer)
	require.NoError(t, err)
	assert.Equal(t, domain.PostTypeArticle, resp.PostType)
	assert.Equal(t, domain.PostStatusDraft, resp.Status)
	assert.Equal(t, domain.StatusDraft, resp.WorkflowStatus)
	assert.Equal(t, f.writer.ID, resp.AuthorID)
}

func TestPostService_UpdateIsPartial(t *testing.T) {
	f := newWorkflowFixture(t)
	post, _ := f.createPost(t, true)

	summary := "Shorter summary"
	resp, err := f.postSvc.UpdatePost(post.ID, &domain.UpdatePostRequest{Summary: &summary}, f.writer)
	require.NoError(t, err)

	assert.Equal(t, "Shorter summary", resp.Summary)
	assert.Equal(t, post.Title, resp.Title, "untouched fields survive a partial update")
	assert.Len(t, resp.Categories, 1, "taxonomy untouched when omitted")
}

func TestPostService_UpdateReplacesTaxonomy(t *testing.T) {
	f := newWorkflowFixture(t)
	post, _ := f.createPost(t, true)

	empty := []uint64{}
	resp, err := f.postSvc.UpdatePost(post.ID, &domain.UpdatePostRequest{CategoryIDs: &empty}, f.writer)
	require.NoError(t, err)
	assert.Empty(t, resp.Categories, "explicit empty list clears associations")
	assert.Len(t, resp.Tags, 1)
}

func TestPostService_EditPublishedRequiresEditorialRole(t *testing.T) {
	f := newWorkflowFixture(t)
	post, version := f.createPost(t, true)

	_, err := f.workflow.Transition(version.ID, domain.StatusCopydesk, f.writer, "")
	require.NoError(t, err)
	_, err = f.workflow.Transition(version.ID, domain.StatusParked, f.copydesk, "")
	require.NoError(t, err)
	_, err = f.workflow.Transition(version.ID, domain.StatusPublished, f.editor, "")
	require.NoError(t, err)

	title := "Post-publish tweak"
	_, err = f.postSvc.UpdatePost(post.ID, &domain.UpdatePostRequest{Title: &title}, f.writer)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrForbidden))

	resp, err := f.postSvc.UpdatePost(post.ID, &domain.UpdatePostRequest{Title: &title}, f.editor)
	require.NoError(t, err)
	assert.Equal(t, "Post-publish tweak", resp.Title)
}

func TestPostService_GetMissingPost(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.postSvc.GetPost(12345)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrPostNotFound))
}

func TestPostService_ListFiltersByWorkflowStatus(t *testing.T) {
	f := newWorkflowFixture(t)
	_, version := f.createPost(t, true)
	f.createPost(t, true)

	_, err := f.workflow.Transition(version.ID, domain.StatusCopydesk, f.writer, "")
	require.NoError(t, err)

	inReview, meta, err := f.postSvc.ListPosts("", domain.StatusCopydesk, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), meta.Total)
	require.Len(t, inReview, 1)
	assert.Equal(t, domain.StatusCopydesk, inReview[0].WorkflowStatus)

	drafts, meta, err := f.postSvc.ListPosts("", domain.StatusDraft, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), meta.Total)
	require.Len(t, drafts, 1)
}
