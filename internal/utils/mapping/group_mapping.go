package mapping

import (
	"github.com/SscSPs/business_report_engine/internal/core/domain"
	"github.com/SscSPs/business_report_engine/internal/core/rules"
)

// Collision records a stored key found in a group that does not own it.
type Collision struct {
	Key      string
	StoredIn domain.GroupName
	Owner    domain.GroupName
}

// MergeGroups flattens the groups of a report in domain.GroupOrder. A key held
// by a group that does not own it is reported as a collision and only used
// when its owner does not hold it. Keys unknown to the ownership table follow
// the group order, later groups winning.
func MergeGroups(report domain.PeriodReport, own *rules.Ownership) (domain.FieldSet, []Collision) {
	flat := make(map[domain.GroupName]domain.FieldSet, len(domain.GroupOrder))
	for _, name := range domain.GroupOrder {
		flat[name] = report.Group(name).FlattenWith(rules.KeyAttribute)
	}

	out := domain.FieldSet{}
	var collisions []Collision
	for _, name := range domain.GroupOrder {
		fields := flat[name]
		for _, key := range fields.Keys() {
			owner, known := own.GroupOf(key)
			if known && owner != name {
				collisions = append(collisions, Collision{Key: key, StoredIn: name, Owner: owner})
				if flat[owner].Has(key) {
					continue
				}
			}
			out[key] = fields[key]
		}
	}
	return out, collisions
}

// SplitFields assigns every key of fs to the group owning it and returns the
// resulting report together with the sorted keys no group owns.
func SplitFields(fs domain.FieldSet, period domain.Period, own *rules.Ownership) (domain.PeriodReport, []string) {
	report := domain.NewPeriodReport(period)
	var unassigned []string
	for _, key := range fs.Keys() {
		owner, ok := own.GroupOf(key)
		if !ok {
			unassigned = append(unassigned, key)
			continue
		}
		group := report.Groups[owner]
		if c, idx, attr, isItem := domain.ParseItemKey(key, own.Collections()); isItem {
			if err := group.SetItem(c, idx, rules.StoredAttribute(c, attr), fs[key]); err != nil {
				unassigned = append(unassigned, key)
				continue
			}
		} else {
			group.Fields[key] = fs[key]
		}
		report.Groups[owner] = group
	}
	return report, unassigned
}
