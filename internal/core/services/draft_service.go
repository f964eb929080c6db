package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
	"github.com/SscSPs/business_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/business_report_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_report_engine/internal/core/ports/services"
)

// draftService keeps the unsaved working state of each document in the local store.
type draftService struct {
	BaseService
	store portsrepo.KeyValueStore
}

// NewDraftService creates a draft persister over store.
func NewDraftService(store portsrepo.KeyValueStore) portssvc.DraftSvc {
	return &draftService{store: store}
}

var _ portssvc.DraftSvc = (*draftService)(nil)

// Save overwrites the draft of section and period.
func (s *draftService) Save(ctx context.Context, section domain.SectionID, period domain.Period, fields domain.FieldSet) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	key := domain.DraftKey(section, period)
	if err := s.store.Set(ctx, key, string(payload)); err != nil {
		s.LogError(ctx, err, "Failed to save draft", docAttrs(section, period)...)
		return apperrors.NewTransientError("failed to save draft", err)
	}
	s.LogDebug(ctx, "Draft saved", docAttrs(section, period, slog.Int("field_count", len(fields)))...)
	return nil
}

// Load returns the stored draft. A draft that does not decode is reported as
// apperrors.ErrMalformedDraft.
func (s *draftService) Load(ctx context.Context, section domain.SectionID, period domain.Period) (domain.FieldSet, bool, error) {
	key := domain.DraftKey(section, period)
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.LogError(ctx, err, "Failed to read draft", docAttrs(section, period)...)
		return nil, false, apperrors.NewTransientError("failed to read draft", err)
	}
	if !ok {
		return nil, false, nil
	}

	var fields domain.FieldSet
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, false, fmt.Errorf("%w: %s: %w", apperrors.ErrMalformedDraft, key, err)
	}
	if fields == nil {
		fields = domain.FieldSet{}
	}
	return fields, true, nil
}

// Clear removes the draft of section and period.
func (s *draftService) Clear(ctx context.Context, section domain.SectionID, period domain.Period) error {
	if err := s.store.Remove(ctx, domain.DraftKey(section, period)); err != nil {
		s.LogError(ctx, err, "Failed to clear draft", docAttrs(section, period)...)
		return apperrors.NewTransientError("failed to clear draft", err)
	}
	return nil
}
