package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// GroupName names one of the attribute groups of a period report.
type GroupName string

const (
	GroupBusinessInfo   GroupName = "business_info"
	GroupRevenueSummary GroupName = "revenue_summary"
	GroupDeductionInfo  GroupName = "deduction_info"
	GroupFacilityInfo   GroupName = "facility_info"
)

// GroupOrder is the fixed order in which groups are merged and stored.
var GroupOrder = []GroupName{GroupBusinessInfo, GroupRevenueSummary, GroupDeductionInfo, GroupFacilityInfo}

// AttributeGroup is one nested blob of a period report: plain fields plus
// repeating collections whose items are field sets keyed by attribute.
type AttributeGroup struct {
	Fields      FieldSet
	Collections map[string][]FieldSet
}

// NewAttributeGroup returns an empty group ready for writes.
func NewAttributeGroup() AttributeGroup {
	return AttributeGroup{Fields: FieldSet{}, Collections: map[string][]FieldSet{}}
}

// IsEmpty reports whether the group holds no data at all.
func (g AttributeGroup) IsEmpty() bool {
	return len(g.Fields) == 0 && len(g.Collections) == 0
}

// SetItem stores one attribute of a collection item, growing the collection as
// needed. Indexes outside [0, MaxCollectionItems) are rejected.
func (g *AttributeGroup) SetItem(collection string, index int, attribute string, value FieldValue) error {
	if index < 0 || index >= MaxCollectionItems {
		return fmt.Errorf("item %d of %s out of range", index, collection)
	}
	if g.Collections == nil {
		g.Collections = map[string][]FieldSet{}
	}
	items := g.Collections[collection]
	for len(items) <= index {
		items = append(items, FieldSet{})
	}
	items[index][attribute] = value
	g.Collections[collection] = items
	return nil
}

// Flatten returns the group as a flat field set, expanding collection items
// into positional keys.
func (g AttributeGroup) Flatten() FieldSet {
	return g.FlattenWith(nil)
}

// FlattenWith is Flatten with item attributes renamed by rename, when given.
func (g AttributeGroup) FlattenWith(rename func(collection, attr string) string) FieldSet {
	out := make(FieldSet, len(g.Fields))
	for k, v := range g.Fields {
		out[k] = v
	}
	for name, items := range g.Collections {
		for i, item := range items {
			for attr, v := range item {
				if rename != nil {
					attr = rename(name, attr)
				}
				out[ItemKey(name, i, attr)] = v
			}
		}
	}
	return out
}

// MarshalJSON writes a single JSON object: fields as scalars and collections as arrays.
func (g AttributeGroup) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(g.Fields)+len(g.Collections))
	for k, v := range g.Fields {
		obj[k] = v
	}
	for name, items := range g.Collections {
		if items == nil {
			items = []FieldSet{}
		}
		obj[name] = items
	}
	return json.Marshal(obj)
}

// UnmarshalJSON reads the object written by MarshalJSON. Array members become
// collections; nested objects are rejected.
func (g *AttributeGroup) UnmarshalJSON(data []byte) error {
	*g = NewAttributeGroup()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode attribute group: %w", err)
	}
	for k, msg := range raw {
		trimmed := bytes.TrimSpace(msg)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var items []FieldSet
			if err := json.Unmarshal(trimmed, &items); err != nil {
				return fmt.Errorf("decode collection %q: %w", k, err)
			}
			for i := range items {
				if items[i] == nil {
					items[i] = FieldSet{}
				}
			}
			g.Collections[k] = items
			continue
		}
		var v FieldValue
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return fmt.Errorf("decode field %q: %w", k, err)
		}
		g.Fields[k] = v
	}
	return nil
}

// PeriodReport is the remote record of one reporting period.
type PeriodReport struct {
	Period    Period
	Groups    map[GroupName]AttributeGroup
	UpdatedAt time.Time
}

// NewPeriodReport returns a report with every group present and empty.
func NewPeriodReport(period Period) PeriodReport {
	groups := make(map[GroupName]AttributeGroup, len(GroupOrder))
	for _, name := range GroupOrder {
		groups[name] = NewAttributeGroup()
	}
	return PeriodReport{Period: period, Groups: groups}
}

// Group returns the named group, or an empty one when absent.
func (r PeriodReport) Group(name GroupName) AttributeGroup {
	g, ok := r.Groups[name]
	if !ok {
		return NewAttributeGroup()
	}
	return g
}
