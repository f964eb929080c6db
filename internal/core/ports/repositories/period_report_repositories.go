package repositories

import (
	"context"

	"github.com/SscSPs/business_report_engine/internal/core/domain"
)

// PeriodReportReader defines read operations for period reports
type PeriodReportReader interface {
	// FindPeriodReport retrieves the report of one period. Returns
	// apperrors.ErrNotFound when none was saved.
	FindPeriodReport(ctx context.Context, period domain.Period) (*domain.PeriodReport, error)

	// ListPeriods returns the periods that have a stored report, newest first.
	ListPeriods(ctx context.Context) ([]domain.Period, error)
}

// PeriodReportWriter defines write operations for period reports
type PeriodReportWriter interface {
	// SavePeriodReport upserts the report keyed by its period.
	SavePeriodReport(ctx context.Context, report domain.PeriodReport) error

	// DeletePeriodReport removes the report of one period.
	DeletePeriodReport(ctx context.Context, period domain.Period) error
}

// PeriodReportRepositoryFacade combines all period report repository interfaces
type PeriodReportRepositoryFacade interface {
	PeriodReportReader
	PeriodReportWriter
}

// ReportCommitter writes a profile and a period report atomically.
type ReportCommitter interface {
	SaveProfileAndReport(ctx context.Context, profile domain.Profile, report domain.PeriodReport) error
}
