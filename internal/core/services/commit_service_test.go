package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
	"github.com/SscSPs/business_report_engine/internal/core/domain"
	portssvc "github.com/SscSPs/business_report_engine/internal/core/ports/services"
	"github.com/SscSPs/business_report_engine/internal/core/rules"
	"github.com/SscSPs/business_report_engine/internal/core/services"
	"github.com/SscSPs/business_report_engine/internal/repositories/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type CommitServiceTestSuite struct {
	suite.Suite
	committer *MockReportCommitter
	drafts    portssvc.DraftSvc
	now       time.Time
	service   portssvc.CommitSvc
}

func (suite *CommitServiceTestSuite) SetupTest() {
	suite.committer = new(MockReportCommitter)
	suite.drafts = services.NewDraftService(kvstore.NewMemoryStore())
	suite.now = time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewCommitService(suite.committer, suite.drafts, rules.MustDefaultOwnership(),
		services.WithClock(func() time.Time { return suite.now }))
}

func workingState() domain.FieldSet {
	return domain.FieldSet{
		"bizName":          domain.Text("찬치과의원"),
		"bizNo":            domain.Text("616-93-18253"),
		"tel":              domain.Text("064-755-2228"),
		"personNo":         domain.Text(""),
		"revInc":           num(100),
		"revEx":            num(20),
		"revTotal":         num(120),
		"buyCardCash":      num(7),
		"materials_0_name": domain.Text("임플란트"),
		"materials_0_next": num(120),
		"scratch":          domain.Text("ui only"),
	}
}

func (suite *CommitServiceTestSuite) hasDraft(section domain.SectionID, period domain.Period) bool {
	_, ok, err := suite.drafts.Load(context.Background(), section, period)
	suite.Require().NoError(err)
	return ok
}

// --- Test Cases ---

func (suite *CommitServiceTestSuite) TestCommit_Success() {
	ctx := context.Background()
	fields := workingState()
	suite.Require().NoError(suite.drafts.Save(ctx, domain.SectionReport, 2024, fields))
	suite.Require().NoError(suite.drafts.Save(ctx, domain.SectionReview, 2024, fields))

	suite.committer.On("SaveProfileAndReport", ctx,
		mock.MatchedBy(func(p domain.Profile) bool {
			return p.BizName == "찬치과의원" && p.BizNo == "616-93-18253" && p.UpdatedAt.Equal(suite.now)
		}),
		mock.MatchedBy(func(r domain.PeriodReport) bool {
			return r.Period == 2024 &&
				r.Group(domain.GroupRevenueSummary).Fields.Text("revTotal") == "120" &&
				r.Group(domain.GroupDeductionInfo).Fields.Text("buyCardCash") == "7" &&
				r.Group(domain.GroupBusinessInfo).Fields.Text("bizName") == "찬치과의원" &&
				len(r.Group(domain.GroupFacilityInfo).Collections["materials"]) == 1
		}),
	).Return(nil).Once()

	result, err := suite.service.Commit(ctx, domain.SectionReport, 2024, fields)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.Period(2024), result.Period)
	suite.Equal([]string{"scratch"}, result.Unassigned)
	suite.Equal(suite.now, result.CommittedAt)
	suite.False(suite.hasDraft(domain.SectionReport, 2024), "committed draft is cleared")
	suite.True(suite.hasDraft(domain.SectionReview, 2024), "other drafts are kept")
	suite.committer.AssertExpectations(suite.T())
}

func (suite *CommitServiceTestSuite) TestCommit_FailureKeepsDraft() {
	ctx := context.Background()
	fields := workingState()
	suite.Require().NoError(suite.drafts.Save(ctx, domain.SectionReport, 2024, fields))
	suite.committer.On("SaveProfileAndReport", ctx, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	result, err := suite.service.Commit(ctx, domain.SectionReport, 2024, fields)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrCommitFailed)
	suite.ErrorIs(err, assert.AnError)
	suite.True(suite.hasDraft(domain.SectionReport, 2024))
	suite.committer.AssertExpectations(suite.T())
}

func (suite *CommitServiceTestSuite) TestCommit_InvalidProfile() {
	ctx := context.Background()
	testCases := []struct {
		name   string
		mutate func(domain.FieldSet)
	}{
		{name: "missing business name", mutate: func(fs domain.FieldSet) { fs["bizName"] = domain.Text("") }},
		{name: "missing registration number", mutate: func(fs domain.FieldSet) { delete(fs, "bizNo") }},
		{name: "bad email", mutate: func(fs domain.FieldSet) { fs["email"] = domain.Text("not-an-email") }},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			fields := workingState()
			tc.mutate(fields)

			result, err := suite.service.Commit(ctx, domain.SectionReport, 2024, fields)

			suite.Nil(result)
			suite.ErrorIs(err, apperrors.ErrCommitFailed)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.committer.AssertNotCalled(suite.T(), "SaveProfileAndReport", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CommitServiceTestSuite) TestCommit_InvalidPeriod() {
	result, err := suite.service.Commit(context.Background(), domain.SectionReport, 12, workingState())
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrCommitFailed)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestCommitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommitServiceTestSuite))
}
