package pgsql

import (
	portsrepo "github.com/SscSPs/business_report_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx repositories. The key-value store is
// chosen by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool, store portsrepo.KeyValueStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProfileRepo:      newPgxProfileRepository(dbPool),
		PeriodReportRepo: newPgxPeriodReportRepository(dbPool),
		Committer:        newPgxReportCommitter(dbPool),
		Store:            store,
	}
}
