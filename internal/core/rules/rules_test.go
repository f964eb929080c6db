package rules_test

import (
	"testing"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
	"github.com/SscSPs/business_report_engine/internal/core/domain"
	"github.com/SscSPs/business_report_engine/internal/core/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleNames(rs []rules.Rule) []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}
	return names
}

func TestNewSection_OrdersByDependency(t *testing.T) {
	// c consumes b, b consumes a; declared in reverse
	declared := []rules.Rule{
		rules.Sum("c", "z", "y"),
		rules.Sum("b", "y", "x"),
		rules.Sum("a", "x", "w"),
	}
	s, err := rules.NewSection(domain.SectionReport, declared, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ruleNames(s.Rules()))
}

func TestNewSection_TiesKeepDeclaredOrder(t *testing.T) {
	declared := []rules.Rule{
		rules.Sum("second", "b", "in2"),
		rules.Sum("first", "a", "in1"),
		rules.Sum("third", "c", "in3"),
	}
	s, err := rules.NewSection(domain.SectionReport, declared, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first", "third"}, ruleNames(s.Rules()))
}

func TestNewSection_ConfigErrors(t *testing.T) {
	testCases := []struct {
		name     string
		declared []rules.Rule
		list     []rules.ListRule
	}{
		{
			name:     "cycle",
			declared: []rules.Rule{rules.Sum("a", "x", "y"), rules.Sum("b", "y", "x")},
		},
		{
			name:     "duplicate output",
			declared: []rules.Rule{rules.Sum("a", "x", "p"), rules.Sum("b", "x", "q")},
		},
		{
			name:     "self reference",
			declared: []rules.Rule{rules.Sum("a", "x", "x", "p")},
		},
		{
			name:     "incomplete rule",
			declared: []rules.Rule{{Name: "empty"}},
		},
		{
			name: "list rule reading its output",
			list: []rules.ListRule{{
				Name: "loop", Collection: "items", Inputs: []string{"a", "out"}, Output: "out",
				Compute: func(func(string) decimal.Decimal) decimal.Decimal { return decimal.Zero },
			}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rules.NewSection(domain.SectionReport, tc.declared, tc.list)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrRuleConfig)
		})
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg, err := rules.DefaultRegistry()
	require.NoError(t, err)

	report, err := reg.Section(domain.SectionReport)
	require.NoError(t, err)
	assert.Equal(t, []string{"buyTotal", "revTotal"}, report.DerivedKeys())
	assert.False(t, report.IsDerived("revInc"))

	review, err := reg.Section(domain.SectionReview)
	require.NoError(t, err)
	assert.Len(t, review.Rules(), 10)
	assert.True(t, review.IsDerived("24_16"))
	assert.True(t, review.IsDerived("23_19"))
	assert.False(t, review.IsDerived("24_17"))

	// the column-16 balance must come after every row total it reads
	pos := map[string]int{}
	for i, r := range review.Rules() {
		pos[r.Name] = i
	}
	for _, row := range rules.ReviewInputRows {
		assert.Less(t, pos["row_total_"+row], pos["column_balance_16"])
	}

	sub, err := reg.Section(domain.SectionReviewSub)
	require.NoError(t, err)
	assert.Equal(t, []string{"materials"}, sub.Collections())
	assert.True(t, sub.IsDerived("materials_2_next"))
	assert.False(t, sub.IsDerived("materials_2_init"))

	_, err = reg.Section(domain.SectionID("ledger"))
	assert.ErrorIs(t, err, apperrors.ErrUnknownSection)
}

func TestBalanceRule(t *testing.T) {
	r := rules.Balance("bal", "out", "recv", "prev", "owed")
	got := r.Compute(domain.FieldSet{
		"recv": domain.NumberFromInt(1000),
		"prev": domain.NumberFromInt(300),
		"owed": domain.Text("50"),
	})
	assert.Equal(t, "750", got["out"].String())
}

func TestOwnership(t *testing.T) {
	o := rules.MustDefaultOwnership()

	testCases := []struct {
		key   string
		group domain.GroupName
		ok    bool
	}{
		{key: "bizName", group: domain.GroupBusinessInfo, ok: true},
		{key: "tel_home", group: domain.GroupBusinessInfo, ok: true},
		{key: "revTotal", group: domain.GroupRevenueSummary, ok: true},
		{key: "23_16", group: domain.GroupRevenueSummary, ok: true},
		{key: "non_ins_3_amt", group: domain.GroupRevenueSummary, ok: true},
		{key: "buyCardCash", group: domain.GroupDeductionInfo, ok: true},
		{key: "supp_29", group: domain.GroupDeductionInfo, ok: true},
		{key: "staff_nurse", group: domain.GroupFacilityInfo, ok: true},
		{key: "materials_0_next", group: domain.GroupFacilityInfo, ok: true},
		{key: "devices_1_lease_date", group: domain.GroupFacilityInfo, ok: true},
		{key: "scratch", ok: false},
	}
	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			g, ok := o.GroupOf(tc.key)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.group, g)
		})
	}

	_, err := rules.NewOwnership(
		rules.GroupSpec{Group: domain.GroupRevenueSummary, Fields: []string{"x"}},
		rules.GroupSpec{Group: domain.GroupDeductionInfo, Fields: []string{"x"}},
	)
	assert.ErrorIs(t, err, apperrors.ErrRuleConfig)
}

func TestCatalogKeysAreOwned(t *testing.T) {
	o := rules.MustDefaultOwnership()
	for _, id := range domain.Sections {
		for _, key := range rules.SectionFields(id) {
			_, ok := o.GroupOf(key)
			assert.True(t, ok, "%s field %s has no group", id, key)
		}
	}
}

func TestSeedFields(t *testing.T) {
	seed := rules.SeedFields()
	assert.Equal(t, "임플란트", seed.Text("materials_0_name"))
	assert.Equal(t, "금(골드)", seed.Text("materials_2_name"))
	assert.Empty(t, seed.Text("devices_0_name"))
	assert.Len(t, rules.FallbackIdentity(), 8)
}

func TestCheckItemKey(t *testing.T) {
	valid := []string{"materials_0_used_amt", "materials_9_use_count", "non_ins_4_count", "devices_3_lease_price", "revInc", "24_16"}
	for _, key := range valid {
		assert.NoError(t, rules.CheckItemKey(key), key)
	}

	invalid := []string{"materials_01_used_amt", "materials_+1_used_amt", "materials_-0_used_amt", "materials_10_init", "devices_5000000_code", "non_ins_0_", "materials_0_mat_init"}
	for _, key := range invalid {
		assert.ErrorIs(t, rules.CheckItemKey(key), apperrors.ErrValidation, key)
	}

	for _, section := range domain.Sections {
		for _, key := range rules.SectionFields(section) {
			assert.NoError(t, rules.CheckItemKey(key), key)
		}
	}
}

func TestStoredAttributeNames(t *testing.T) {
	assert.Equal(t, "mat_used_amt", rules.StoredAttribute(rules.CollectionMaterials, rules.MaterialUsed))
	assert.Equal(t, "mat_next", rules.StoredAttribute(rules.CollectionMaterials, rules.MaterialNext))
	assert.Equal(t, "name", rules.StoredAttribute(rules.CollectionMaterials, "name"))
	assert.Equal(t, "amt", rules.StoredAttribute(rules.CollectionNonIns, "amt"))

	for _, spec := range rules.CollectionSpecs() {
		for _, attr := range spec.Attributes {
			assert.Equal(t, attr, rules.KeyAttribute(spec.Name, rules.StoredAttribute(spec.Name, attr)))
		}
	}
}
