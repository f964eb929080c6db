package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/business_report_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeGroup_JSONRoundTrip(t *testing.T) {
	g := domain.NewAttributeGroup()
	g.Fields["room_clinic"] = domain.NumberFromInt(30)
	g.SetItem("materials", 1, "init", domain.NumberFromInt(100))
	g.SetItem("materials", 0, "name", domain.Text("임플란트"))

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{"room_clinic":30,"materials":[{"name":"임플란트"},{"init":100}]}`, string(data))

	var decoded domain.AttributeGroup
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, g.Flatten().Equal(decoded.Flatten()))
	require.Len(t, decoded.Collections["materials"], 2)
}

func TestAttributeGroup_UnmarshalNull(t *testing.T) {
	var g domain.AttributeGroup
	require.NoError(t, json.Unmarshal([]byte(`null`), &g))
	assert.True(t, g.IsEmpty())
	assert.NotNil(t, g.Fields)
}

func TestAttributeGroup_UnmarshalNullItems(t *testing.T) {
	var g domain.AttributeGroup
	require.NoError(t, json.Unmarshal([]byte(`{"devices":[null,{"code":"A1"}]}`), &g))
	require.Len(t, g.Collections["devices"], 2)
	assert.NotNil(t, g.Collections["devices"][0])
	assert.Equal(t, "A1", g.Flatten().Text("devices_1_code"))
}

func TestAttributeGroup_Flatten(t *testing.T) {
	g := domain.NewAttributeGroup()
	g.Fields["staff_doctor"] = domain.NumberFromInt(2)
	g.SetItem("non_ins", 2, "amt", domain.NumberFromInt(500))

	flat := g.Flatten()
	assert.Equal(t, "2", flat.Text("staff_doctor"))
	assert.Equal(t, "500", flat.Text("non_ins_2_amt"))
	assert.Len(t, flat, 2)
}

func TestAttributeGroup_SetItemBounds(t *testing.T) {
	g := domain.NewAttributeGroup()
	assert.Error(t, g.SetItem("devices", domain.MaxCollectionItems, "code", domain.Text("x")))
	assert.Error(t, g.SetItem("devices", -1, "code", domain.Text("x")))
	assert.Empty(t, g.Collections["devices"])

	require.NoError(t, g.SetItem("devices", domain.MaxCollectionItems-1, "code", domain.Text("x")))
	assert.Len(t, g.Collections["devices"], domain.MaxCollectionItems)
}

func TestAttributeGroup_FlattenWith(t *testing.T) {
	g := domain.NewAttributeGroup()
	require.NoError(t, g.SetItem("materials", 0, "mat_init", domain.NumberFromInt(7)))

	flat := g.FlattenWith(func(_, attr string) string { return attr[len("mat_"):] })
	assert.Equal(t, "7", flat.Text("materials_0_init"))
}

func TestNewPeriodReport(t *testing.T) {
	r := domain.NewPeriodReport(2024)
	assert.Equal(t, domain.Period(2024), r.Period)
	for _, name := range domain.GroupOrder {
		assert.True(t, r.Group(name).IsEmpty(), string(name))
	}
	assert.True(t, domain.PeriodReport{}.Group(domain.GroupFacilityInfo).IsEmpty())
}
