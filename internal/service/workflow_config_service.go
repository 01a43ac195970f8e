package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/pressdesk/editorial-backend/internal/domain"
	"github.com/pressdesk/editorial-backend/internal/repository"
	pkgcache "github.com/pressdesk/editorial-backend/pkg/cache"
)

const configCacheTTL = 5 * time.Minute

type cachedConfig struct {
	cfg      *domain.WorkflowConfig
	cachedAt time.Time
}

// WorkflowConfigService resolves workflow configurations from the
// settings store. Resolution order: workflow.config.<post_type> >
// workflow.config.default > built-in default. Resolve never fails; an
// unconfigured post type silently gets the fallback.
type WorkflowConfigService struct {
	settings repository.SettingRepository
	redis    pkgcache.Service

	mu    sync.RWMutex
	cache map[string]cachedConfig
}

// NewWorkflowConfigService creates a new WorkflowConfigService
func NewWorkflowConfigService(settings repository.SettingRepository) *WorkflowConfigService {
	return &WorkflowConfigService{
		settings: settings,
		cache:    make(map[string]cachedConfig),
	}
}

// SetCache sets the shared Redis cache (optional dependency). It sits
// behind the in-process cache so every instance resolves the same
// config between setting changes.
func (s *WorkflowConfigService) SetCache(cache pkgcache.Service) {
	s.redis = cache
}

// Resolve returns the workflow config for a post type.
func (s *WorkflowConfigService) Resolve(postType string) *domain.WorkflowConfig {
	s.mu.RLock()
	if entry, ok := s.cache[postType]; ok && time.Since(entry.cachedAt) < configCacheTTL {
		s.mu.RUnlock()
		return entry.cfg
	}
	s.mu.RUnlock()

	cfg := s.fromRedis(postType)
	if cfg == nil {
		cfg = s.load(postType)
		s.toRedis(postType, cfg)
	}

	s.mu.Lock()
	s.cache[postType] = cachedConfig{cfg: cfg, cachedAt: time.Now()}
	s.mu.Unlock()

	return cfg
}

func (s *WorkflowConfigService) load(postType string) *domain.WorkflowConfig {
	if postType != "" {
		if cfg := s.loadKey(domain.WorkflowConfigKey(postType)); cfg != nil {
			return cfg
		}
	}
	if cfg := s.loadKey(domain.SettingWorkflowConfigDefault); cfg != nil {
		return cfg
	}
	return domain.DefaultWorkflowConfig()
}

// loadKey returns nil on any miss or parse failure so the caller falls
// through to the next level.
func (s *WorkflowConfigService) loadKey(key string) *domain.WorkflowConfig {
	raw, err := s.settings.Get(key)
	if err != nil || raw == "" {
		return nil
	}
	var cfg domain.WorkflowConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil
	}
	if len(cfg.Transitions) == 0 {
		return nil
	}
	return &cfg
}

func (s *WorkflowConfigService) fromRedis(postType string) *domain.WorkflowConfig {
	if s.redis == nil || !s.redis.IsAvailable() {
		return nil
	}
	var cfg domain.WorkflowConfig
	if err := s.redis.GetWorkflowConfig(context.Background(), postType, &cfg); err != nil {
		return nil
	}
	if len(cfg.Transitions) == 0 {
		return nil
	}
	return &cfg
}

func (s *WorkflowConfigService) toRedis(postType string, cfg *domain.WorkflowConfig) {
	if s.redis == nil || !s.redis.IsAvailable() {
		return
	}
	_ = s.redis.SetWorkflowConfig(context.Background(), postType, cfg)
}

// Save persists a workflow config for a post type (empty postType
// writes the global default) and invalidates the cache.
func (s *WorkflowConfigService) Save(postType string, cfg *domain.WorkflowConfig, updatedBy string) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode workflow config: %w", err)
	}
	if err := s.settings.Set(domain.WorkflowConfigKey(postType), string(raw), updatedBy); err != nil {
		return err
	}

	if s.redis != nil && s.redis.IsAvailable() {
		// Only the written key is dropped eagerly; per-type entries
		// resolved from a changed default age out via the cache TTL.
		_ = s.redis.InvalidateWorkflowConfig(context.Background(), postType)
	}

	s.mu.Lock()
	delete(s.cache, postType)
	if postType == "" {
		// The global default backs every unconfigured type.
		s.cache = make(map[string]cachedConfig)
	}
	s.mu.Unlock()
	return nil
}
