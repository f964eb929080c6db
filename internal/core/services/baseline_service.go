package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
	"github.com/SscSPs/business_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/business_report_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_report_engine/internal/core/ports/services"
	"github.com/SscSPs/business_report_engine/internal/core/rules"
	"github.com/SscSPs/business_report_engine/internal/utils/mapping"
)

// DraftRestoredHook is called after a stored draft was layered onto a baseline.
type DraftRestoredHook func(ctx context.Context, section domain.SectionID, period domain.Period)

// baselineService merges the sources of a document's initial state
type baselineService struct {
	BaseService
	profileRepo     portsrepo.ProfileReader
	reportRepo      portsrepo.PeriodReportReader
	drafts          portssvc.DraftReaderSvc
	ownership       *rules.Ownership
	onDraftRestored DraftRestoredHook
}

// BaselineServiceOption is a functional option for configuring the baseline service
type BaselineServiceOption func(*baselineService)

// WithDraftRestoredHook registers the hook used to tell the user that unsaved
// data was restored.
func WithDraftRestoredHook(hook DraftRestoredHook) BaselineServiceOption {
	return func(s *baselineService) {
		s.onDraftRestored = hook
	}
}

// NewBaselineService creates a new baseline resolver with the provided options
func NewBaselineService(
	profileRepo portsrepo.ProfileReader,
	reportRepo portsrepo.PeriodReportReader,
	drafts portssvc.DraftReaderSvc,
	ownership *rules.Ownership,
	options ...BaselineServiceOption,
) portssvc.BaselineSvc {
	svc := &baselineService{
		profileRepo: profileRepo,
		reportRepo:  reportRepo,
		drafts:      drafts,
		ownership:   ownership,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.BaselineSvc = (*baselineService)(nil)

// Resolve layers, lowest first: fallback identity and collection seeds, the
// profile, the period report groups and the draft. A failed read leaves its
// layer out; the merged baseline is still returned together with a transient
// error naming the failure.
func (s *baselineService) Resolve(ctx context.Context, section domain.SectionID, period domain.Period) (*domain.Baseline, error) {
	fields := rules.FallbackIdentity()
	fields.Overlay(rules.SeedFields())
	baseline := &domain.Baseline{Section: section, Period: period}
	var failures []error

	profile, err := s.profileRepo.FindProfile(ctx)
	switch {
	case err == nil:
		fields.Overlay(profile.Fields())
		baseline.ProfileFound = true
	case errors.Is(err, apperrors.ErrNotFound):
		s.LogDebug(ctx, "No profile stored, using fallback identity")
	default:
		s.LogError(ctx, err, "Failed to load profile", docAttrs(section, period)...)
		failures = append(failures, err)
	}

	report, err := s.reportRepo.FindPeriodReport(ctx, period)
	switch {
	case err == nil:
		merged, collisions := mapping.MergeGroups(*report, s.ownership)
		for _, c := range collisions {
			s.LogWarn(ctx, "Stored field found outside its owning group",
				slog.String("field", c.Key),
				slog.String("stored_in", string(c.StoredIn)),
				slog.String("owner", string(c.Owner)))
		}
		fields.Overlay(merged)
		baseline.ReportFound = true
	case errors.Is(err, apperrors.ErrNotFound):
		s.LogDebug(ctx, "No period report stored", docAttrs(section, period)...)
	default:
		s.LogError(ctx, err, "Failed to load period report", docAttrs(section, period)...)
		failures = append(failures, err)
	}

	draft, ok, err := s.drafts.Load(ctx, section, period)
	switch {
	case err == nil && ok:
		fields.Overlay(draft)
		baseline.DraftRestored = true
	case errors.Is(err, apperrors.ErrMalformedDraft):
		s.LogWarn(ctx, "Ignoring malformed draft", docAttrs(section, period, slog.String("error", err.Error()))...)
	case err != nil:
		failures = append(failures, err)
	}

	baseline.Fields = fields
	if baseline.DraftRestored && s.onDraftRestored != nil {
		s.onDraftRestored(ctx, section, period)
	}

	if len(failures) > 0 {
		return baseline, apperrors.NewTransientError("baseline loaded without every source", errors.Join(failures...))
	}
	s.LogDebug(ctx, "Baseline resolved", docAttrs(section, period,
		slog.Bool("profile_found", baseline.ProfileFound),
		slog.Bool("report_found", baseline.ReportFound),
		slog.Bool("draft_restored", baseline.DraftRestored))...)
	return baseline, nil
}
