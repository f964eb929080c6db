package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
	"github.com/SscSPs/business_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/business_report_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_report_engine/internal/core/ports/services"
	"github.com/SscSPs/business_report_engine/internal/core/rules"
	"github.com/SscSPs/business_report_engine/internal/utils/mapping"
	"github.com/go-playground/validator/v10"
)

// commitService splits a working state into its stored records and writes them.
type commitService struct {
	BaseService
	committer portsrepo.ReportCommitter
	drafts    portssvc.DraftWriterSvc
	ownership *rules.Ownership
	validate  *validator.Validate
	now       func() time.Time
}

// CommitServiceOption is a functional option for configuring the commit service
type CommitServiceOption func(*commitService)

// WithClock overrides the time source used for UpdatedAt stamps.
func WithClock(now func() time.Time) CommitServiceOption {
	return func(s *commitService) {
		s.now = now
	}
}

// NewCommitService creates a new commit gateway with the provided options
func NewCommitService(committer portsrepo.ReportCommitter, drafts portssvc.DraftWriterSvc, ownership *rules.Ownership, options ...CommitServiceOption) portssvc.CommitSvc {
	svc := &commitService{
		committer: committer,
		drafts:    drafts,
		ownership: ownership,
		validate:  validator.New(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CommitSvc = (*commitService)(nil)

// Commit writes the profile and the period report of fields in one
// transaction and then removes the draft. Every failure is reported as
// apperrors.ErrCommitFailed and leaves the draft in place.
func (s *commitService) Commit(ctx context.Context, section domain.SectionID, period domain.Period, fields domain.FieldSet) (*domain.CommitResult, error) {
	if !period.Valid() {
		return nil, apperrors.NewCommitFailedError("invalid period",
			apperrors.NewValidationFailedError(fmt.Sprintf("period %d is out of range", period)))
	}

	now := s.now()
	profile := domain.ProfileFromFields(fields)
	profile.UpdatedAt = now
	if err := s.validate.Struct(profile); err != nil {
		s.LogError(ctx, err, "Profile failed validation", docAttrs(section, period)...)
		return nil, apperrors.NewCommitFailedError("profile failed validation",
			apperrors.NewValidationFailedError(describeValidation(err)))
	}

	report, unassigned := mapping.SplitFields(fields, period, s.ownership)
	report.UpdatedAt = now
	if len(unassigned) > 0 {
		s.LogWarn(ctx, "Fields without an owning group were not stored",
			docAttrs(section, period, slog.Any("fields", unassigned))...)
	}

	if err := s.committer.SaveProfileAndReport(ctx, profile, report); err != nil {
		s.LogError(ctx, err, "Failed to commit report", docAttrs(section, period)...)
		return nil, apperrors.NewCommitFailedError("failed to save profile and report", err)
	}

	if err := s.drafts.Clear(ctx, section, period); err != nil {
		// the leftover draft equals the committed state
		s.LogWarn(ctx, "Committed but could not remove draft", docAttrs(section, period, slog.String("error", err.Error()))...)
	}

	s.LogInfo(ctx, "Report committed", docAttrs(section, period, slog.Int("field_count", len(fields)))...)
	return &domain.CommitResult{
		Section:     section,
		Period:      period,
		Profile:     profile,
		Report:      report,
		Unassigned:  unassigned,
		CommittedAt: now,
	}, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
