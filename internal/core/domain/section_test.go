package domain_test

import (
	"testing"

	"github.com/SscSPs/business_report_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseSection(t *testing.T) {
	for _, s := range []string{"report", "review", " review_sub "} {
		_, err := domain.ParseSection(s)
		assert.NoError(t, err, s)
	}
	_, err := domain.ParseSection("summary")
	assert.Error(t, err)
}

func TestParsePeriod(t *testing.T) {
	p, err := domain.ParsePeriod("2024")
	assert.NoError(t, err)
	assert.Equal(t, domain.Period(2024), p)

	_, err = domain.ParsePeriod("24")
	assert.Error(t, err)
	_, err = domain.ParsePeriod("year")
	assert.Error(t, err)
}

func TestDraftKey(t *testing.T) {
	assert.Equal(t, "draft:review_sub:2024", domain.DraftKey(domain.SectionReviewSub, 2024))
}

func TestVisibilityMask(t *testing.T) {
	m := domain.VisibilityMask{}
	assert.True(t, m.IsShown("revEx", false))

	assert.True(t, m.Toggle("revEx"))
	assert.False(t, m.IsShown("revEx", false))
	assert.True(t, m.IsShown("revEx", true))

	snapshot := m.Clone()
	assert.False(t, m.Toggle("revEx"))
	assert.True(t, snapshot.Suppressed("revEx"))
	assert.False(t, m.Suppressed("revEx"))
}

func TestProfileFields_RoundTrip(t *testing.T) {
	p := domain.Profile{BizName: "찬치과의원", BizNo: "616-93-18253", Email: "a@b.kr"}
	got := domain.ProfileFromFields(p.Fields())
	assert.Equal(t, p, got)
}
