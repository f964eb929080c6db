package pgsql

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
	"github.com/SscSPs/business_report_engine/internal/core/domain"
	"github.com/SscSPs/business_report_engine/migrations"
	"github.com/SscSPs/business_report_engine/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYear domain.Period = 1999

func setupPool(t *testing.T) *PgxReportCommitter {
	t.Helper()
	dsn := strings.TrimSpace(os.Getenv("BIZREPORT_TEST_DATABASE_URL"))
	if dsn == "" {
		t.Skip("BIZREPORT_TEST_DATABASE_URL is not set")
	}
	require.NoError(t, migrations.Run(dsn, migrations.Up, slog.Default()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool, err := database.NewPgxPool(ctx, dsn, true)
	require.NoError(t, err)
	t.Cleanup(func() { database.ClosePgxPool(pool) })

	_, err = pool.Exec(ctx, `DELETE FROM period_report WHERE report_year = $1`, int(testYear))
	require.NoError(t, err)
	return newPgxReportCommitter(pool)
}

func TestPeriodReportRepository_Postgres(t *testing.T) {
	committer := setupPool(t)
	ctx := context.Background()
	repo := newPgxPeriodReportRepository(committer.Pool)

	_, err := repo.FindPeriodReport(ctx, testYear)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	report := domain.NewPeriodReport(testYear)
	revenue := report.Groups[domain.GroupRevenueSummary]
	revenue.Fields["revInc"] = domain.NumberFromInt(1500)
	revenue.SetItem("non_ins", 1, "amt", domain.NumberFromInt(40))
	report.Groups[domain.GroupRevenueSummary] = revenue

	require.NoError(t, repo.SavePeriodReport(ctx, report))
	// second save exercises the upsert path
	require.NoError(t, repo.SavePeriodReport(ctx, report))

	got, err := repo.FindPeriodReport(ctx, testYear)
	require.NoError(t, err)
	assert.Equal(t, "1500", got.Group(domain.GroupRevenueSummary).Fields.Text("revInc"))
	require.Len(t, got.Group(domain.GroupRevenueSummary).Collections["non_ins"], 2)

	periods, err := repo.ListPeriods(ctx)
	require.NoError(t, err)
	assert.Contains(t, periods, testYear)

	require.NoError(t, repo.DeletePeriodReport(ctx, testYear))
	assert.ErrorIs(t, repo.DeletePeriodReport(ctx, testYear), apperrors.ErrNotFound)
}

func TestReportCommitter_Postgres(t *testing.T) {
	committer := setupPool(t)
	ctx := context.Background()

	profile := domain.Profile{BizName: "찬치과의원", BizNo: "616-93-18253", Tel: "064-755-2228"}
	report := domain.NewPeriodReport(testYear)
	business := report.Groups[domain.GroupBusinessInfo]
	business.Fields["bizName"] = domain.Text(profile.BizName)
	report.Groups[domain.GroupBusinessInfo] = business

	require.NoError(t, committer.SaveProfileAndReport(ctx, profile, report))

	gotProfile, err := newPgxProfileRepository(committer.Pool).FindProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile.BizNo, gotProfile.BizNo)

	gotReport, err := newPgxPeriodReportRepository(committer.Pool).FindPeriodReport(ctx, testYear)
	require.NoError(t, err)
	assert.Equal(t, "찬치과의원", gotReport.Group(domain.GroupBusinessInfo).Fields.Text("bizName"))
}
