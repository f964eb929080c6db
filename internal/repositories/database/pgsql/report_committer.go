package pgsql

import (
	"context"
	"log/slog"

	"github.com/SscSPs/business_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/business_report_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReportCommitter writes the profile and a period report in one transaction.
type PgxReportCommitter struct {
	BaseRepository
}

func newPgxReportCommitter(pool *pgxpool.Pool) *PgxReportCommitter {
	return &PgxReportCommitter{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.ReportCommitter    = (*PgxReportCommitter)(nil)
	_ portsrepo.TransactionManager = (*PgxReportCommitter)(nil)
)

// SaveProfileAndReport upserts both records or neither.
func (r *PgxReportCommitter) SaveProfileAndReport(ctx context.Context, profile domain.Profile, report domain.PeriodReport) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			slog.ErrorContext(ctx, "Failed to rollback commit transaction", slog.String("error", rbErr.Error()))
		}
	}()

	if err := saveProfile(ctx, tx, profile); err != nil {
		return err
	}
	if err := savePeriodReport(ctx, tx, report); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
