package service

import (
	"encoding/json"
	"testing"

	"github.com/pressdesk/editorial-backend/internal/domain"
	"github.com/pressdesk/editorial-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipeOnlyConfig() *domain.WorkflowConfig {
	return &domain.WorkflowConfig{
		States: []domain.WorkflowState{
			{Key: domain.StatusDraft, Label: "Draft"},
			{Key: domain.StatusPublished, Label: "Published"},
		},
		Transitions: []domain.TransitionDef{
			{From: domain.StatusDraft, To: domain.StatusPublished, Roles: []string{domain.RoleAdmin}, Label: "Publish"},
		},
		PublishRoles: []string{domain.RoleAdmin},
	}
}

func TestWorkflowConfigService_ResolveFallsBackToBuiltin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWorkflowConfigService(repository.NewSettingRepository(db))

	cfg := svc.Resolve("article")
	require.NotNil(t, cfg)
	assert.Equal(t, domain.DefaultWorkflowConfig().Transitions, cfg.Transitions)
}

func TestWorkflowConfigService_ResolveTypeOverride(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWorkflowConfigService(repository.NewSettingRepository(db))

	require.NoError(t, svc.Save("recipe", recipeOnlyConfig(), "admin-1"))

	recipe := svc.Resolve("recipe")
	require.Len(t, recipe.Transitions, 1)
	assert.Equal(t, domain.StatusPublished, recipe.Transitions[0].To)

	// Other types are untouched by a per-type override.
	article := svc.Resolve("article")
	assert.Equal(t, domain.DefaultWorkflowConfig().Transitions, article.Transitions)
}

func TestWorkflowConfigService_SavingDefaultFlushesAllTypes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWorkflowConfigService(repository.NewSettingRepository(db))

	// Warm the cache for an unconfigured type.
	_ = svc.Resolve("article")

	require.NoError(t, svc.Save("", recipeOnlyConfig(), "admin-1"))

	article := svc.Resolve("article")
	require.Len(t, article.Transitions, 1, "new global default must be visible immediately")
}

func TestWorkflowConfigService_IgnoresCorruptConfig(t *testing.T) {
	db := setupTestDB(t)
	settings := repository.NewSettingRepository(db)
	svc := NewWorkflowConfigService(settings)

	require.NoError(t, settings.Set(domain.WorkflowConfigKey("article"), "{not json", "admin-1"))

	cfg := svc.Resolve("article")
	assert.Equal(t, domain.DefaultWorkflowConfig().Transitions, cfg.Transitions)
}

func TestWorkflowConfigService_IgnoresEmptyTransitionList(t *testing.T) {
	db := setupTestDB(t)
	settings := repository.NewSettingRepository(db)
	svc := NewWorkflowConfigService(settings)

	raw, err := json.Marshal(&domain.WorkflowConfig{States: []domain.WorkflowState{{Key: domain.StatusDraft}}})
	require.NoError(t, err)
	require.NoError(t, settings.Set(domain.WorkflowConfigKey("article"), string(raw), "admin-1"))

	cfg := svc.Resolve("article")
	assert.Equal(t, domain.DefaultWorkflowConfig().Transitions, cfg.Transitions)
}
