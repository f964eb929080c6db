package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
	"github.com/SscSPs/business_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/business_report_engine/internal/core/ports/repositories"
	"github.com/SscSPs/business_report_engine/internal/models"
	"github.com/SscSPs/business_report_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPeriodReportRepository struct {
	BaseRepository
}

// newPgxPeriodReportRepository creates a new repository for period reports.
func newPgxPeriodReportRepository(pool *pgxpool.Pool) *PgxPeriodReportRepository {
	return &PgxPeriodReportRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PeriodReportRepositoryFacade = (*PgxPeriodReportRepository)(nil)

// FindPeriodReport retrieves the report of one year.
func (r *PgxPeriodReportRepository) FindPeriodReport(ctx context.Context, period domain.Period) (*domain.PeriodReport, error) {
	query := `
		SELECT report_year, business_info, revenue_summary, deduction_info, facility_info, updated_at
		FROM period_report
		WHERE report_year = $1;
	`
	var m models.PeriodReportRow
	err := r.Pool.QueryRow(ctx, query, int(period)).Scan(
		&m.ReportYear,
		&m.BusinessInfo,
		&m.RevenueSummary,
		&m.DeductionInfo,
		&m.FacilityInfo,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period report %d: %w", period, err)
	}

	report, err := mapping.ToDomainPeriodReport(m)
	if err != nil {
		return nil, fmt.Errorf("failed to map period report %d: %w", period, err)
	}
	return &report, nil
}

// ListPeriods returns the stored report years, newest first.
func (r *PgxPeriodReportRepository) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	rows, err := r.Pool.Query(ctx, `SELECT report_year FROM period_report ORDER BY report_year DESC;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query report years: %w", err)
	}
	defer rows.Close()

	periods, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Period, error) {
		var year int
		err := row.Scan(&year)
		return domain.Period(year), err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan report years: %w", err)
	}
	return periods, nil
}

// SavePeriodReport upserts the report keyed by report_year.
func (r *PgxPeriodReportRepository) SavePeriodReport(ctx context.Context, report domain.PeriodReport) error {
	return savePeriodReport(ctx, r.Pool, report)
}

// DeletePeriodReport removes the report of one year.
func (r *PgxPeriodReportRepository) DeletePeriodReport(ctx context.Context, period domain.Period) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM period_report WHERE report_year = $1;`, int(period))
	if err != nil {
		return fmt.Errorf("failed to delete period report %d: %w", period, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func savePeriodReport(ctx context.Context, q querier, report domain.PeriodReport) error {
	m, err := mapping.ToModelPeriodReport(report)
	if err != nil {
		return fmt.Errorf("failed to map period report %d: %w", report.Period, err)
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO period_report (report_year, business_info, revenue_summary, deduction_info, facility_info, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (report_year) DO UPDATE SET
			business_info = EXCLUDED.business_info,
			revenue_summary = EXCLUDED.revenue_summary,
			deduction_info = EXCLUDED.deduction_info,
			facility_info = EXCLUDED.facility_info,
			updated_at = EXCLUDED.updated_at;
	`
	_, err = q.Exec(ctx, query,
		m.ReportYear,
		[]byte(m.BusinessInfo),
		[]byte(m.RevenueSummary),
		[]byte(m.DeductionInfo),
		[]byte(m.FacilityInfo),
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save period report %d: %w", m.ReportYear, err)
	}
	return nil
}
