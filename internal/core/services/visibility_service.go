package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
	"github.com/SscSPs/business_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/business_report_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_report_engine/internal/core/ports/services"
)

// visibilityService owns the visibility mask for the lifetime of a session.
type visibilityService struct {
	BaseService
	store portsrepo.KeyValueStore

	mu   sync.RWMutex
	mask domain.VisibilityMask
}

// NewVisibilityService creates a controller with an empty mask. Call Load to
// read the persisted one.
func NewVisibilityService(store portsrepo.KeyValueStore) portssvc.VisibilitySvc {
	return &visibilityService{store: store, mask: domain.VisibilityMask{}}
}

var _ portssvc.VisibilitySvc = (*visibilityService)(nil)

// Load replaces the in-memory mask with the persisted one. An unreadable mask
// is logged and replaced by an empty one.
func (s *visibilityService) Load(ctx context.Context) error {
	raw, ok, err := s.store.Get(ctx, domain.VisibilityMaskKey)
	if err != nil {
		s.LogError(ctx, err, "Failed to read visibility mask")
		return apperrors.NewTransientError("failed to read visibility mask", err)
	}

	mask := domain.VisibilityMask{}
	if ok {
		if err := json.Unmarshal([]byte(raw), &mask); err != nil {
			s.LogWarn(ctx, "Ignoring unreadable visibility mask", slog.String("error", err.Error()))
			mask = domain.VisibilityMask{}
		}
	}

	s.mu.Lock()
	s.mask = mask
	s.mu.Unlock()
	return nil
}

// Toggle flips key and persists the whole mask before the change becomes visible.
func (s *visibilityService) Toggle(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.mask.Clone()
	suppressed := next.Toggle(key)
	payload, err := json.Marshal(next)
	if err != nil {
		return false, fmt.Errorf("encode visibility mask: %w", err)
	}
	if err := s.store.Set(ctx, domain.VisibilityMaskKey, string(payload)); err != nil {
		s.LogError(ctx, err, "Failed to persist visibility mask", slog.String("field", key))
		return s.mask.Suppressed(key), apperrors.NewTransientError("failed to persist visibility mask", err)
	}
	s.mask = next
	s.LogDebug(ctx, "Field visibility toggled", slog.String("field", key), slog.Bool("suppressed", suppressed))
	return suppressed, nil
}

func (s *visibilityService) Mask() domain.VisibilityMask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mask.Clone()
}

func (s *visibilityService) IsShown(key string, optimizeMode bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mask.IsShown(key, optimizeMode)
}
