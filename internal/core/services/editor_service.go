package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
	"github.com/SscSPs/business_report_engine/internal/core/domain"
	portssvc "github.com/SscSPs/business_report_engine/internal/core/ports/services"
	"github.com/google/uuid"
)

// loadTicket identifies one baseline load. Only the latest ticket may apply.
type loadTicket struct {
	section domain.SectionID
	period  domain.Period
	id      uuid.UUID
}

// editorService is one editing session. It owns the selected document and
// its working state.
type editorService struct {
	BaseService
	baseline  portssvc.BaselineSvc
	evaluator portssvc.ReconciliationSvc
	drafts    portssvc.DraftWriterSvc
	commit    portssvc.CommitSvc

	mu      sync.Mutex
	latest  loadTicket
	loaded  bool
	partial bool
	section domain.SectionID
	period  domain.Period
	state   domain.FieldSet
}

// NewEditorService creates an editing session with nothing selected.
func NewEditorService(baseline portssvc.BaselineSvc, evaluator portssvc.ReconciliationSvc, drafts portssvc.DraftWriterSvc, commit portssvc.CommitSvc) portssvc.EditorSvc {
	return &editorService{
		baseline:  baseline,
		evaluator: evaluator,
		drafts:    drafts,
		commit:    commit,
	}
}

var _ portssvc.EditorSvc = (*editorService)(nil)

// Select switches to section and period and loads the baseline. The lock is
// not held while loading, so a newer Select may overtake this one; the older
// result is then discarded.
func (s *editorService) Select(ctx context.Context, section domain.SectionID, period domain.Period) (*domain.Baseline, error) {
	ticket := loadTicket{section: section, period: period, id: uuid.New()}

	s.mu.Lock()
	s.latest = ticket
	s.section, s.period = section, period
	s.loaded = false
	s.partial = false
	s.state = nil
	s.mu.Unlock()

	baseline, err := s.baseline.Resolve(ctx, section, period)
	if baseline == nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest != ticket {
		s.LogInfo(ctx, "Discarding stale baseline load",
			docAttrs(section, period, slog.String("ticket", ticket.id.String()))...)
		return nil, apperrors.ErrStaleLoad
	}
	s.state = baseline.Fields.Clone()
	s.loaded = true
	s.partial = err != nil
	return baseline, err
}

// Edit reconciles change into the working state and saves the draft
// synchronously. The state keeps the edit even when the draft write fails.
// A partially loaded state is reconciled in memory only; its draft would
// override the stored data on the next complete load.
func (s *editorService) Edit(ctx context.Context, change domain.FieldSet) (*domain.Reconciliation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, apperrors.NewValidationFailedError("no document loaded")
	}

	rec, err := s.evaluator.Evaluate(s.state, change, s.section)
	if err != nil {
		return nil, err
	}
	if len(rec.Rejected) > 0 {
		s.LogWarn(ctx, "Ignored edits to derived fields",
			docAttrs(s.section, s.period, slog.Any("fields", rec.Rejected))...)
	}
	s.state = rec.State

	if s.partial {
		s.LogWarn(ctx, "Draft not saved, document was loaded without its stored data", docAttrs(s.section, s.period)...)
		return rec, apperrors.NewAppError(409, "edit kept in memory only", apperrors.ErrPartialBaseline)
	}
	if err := s.drafts.Save(ctx, s.section, s.period, rec.State); err != nil {
		return rec, err
	}
	return rec, nil
}

// Save commits the working state. Edits wait until the commit has finished.
func (s *editorService) Save(ctx context.Context) (*domain.CommitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, apperrors.NewValidationFailedError("no document loaded")
	}
	if s.partial {
		return nil, apperrors.NewAppError(409, "refusing to commit", apperrors.ErrPartialBaseline)
	}
	return s.commit.Commit(ctx, s.section, s.period, s.state.Clone())
}

func (s *editorService) Current() (domain.SectionID, domain.Period, domain.FieldSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.section, s.period, s.state.Clone()
}
