package services_test

import (
	"context"

	"github.com/SscSPs/business_report_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock ProfileRepository ---
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindProfile(ctx context.Context) (*domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// --- Mock PeriodReportRepository ---
type MockPeriodReportRepository struct {
	mock.Mock
}

func (m *MockPeriodReportRepository) FindPeriodReport(ctx context.Context, period domain.Period) (*domain.PeriodReport, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodReport), args.Error(1)
}

func (m *MockPeriodReportRepository) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

func (m *MockPeriodReportRepository) SavePeriodReport(ctx context.Context, report domain.PeriodReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockPeriodReportRepository) DeletePeriodReport(ctx context.Context, period domain.Period) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

// --- Mock ReportCommitter ---
type MockReportCommitter struct {
	mock.Mock
}

func (m *MockReportCommitter) SaveProfileAndReport(ctx context.Context, profile domain.Profile, report domain.PeriodReport) error {
	args := m.Called(ctx, profile, report)
	return args.Error(0)
}

// --- Mock KeyValueStore ---
type MockKeyValueStore struct {
	mock.Mock
}

func (m *MockKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKeyValueStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKeyValueStore) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// num is shorthand for an integer field value.
func num(i int64) domain.FieldValue {
	return domain.NumberFromInt(i)
}

func mustDecimal(t interface{ Fatalf(string, ...any) }, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}
