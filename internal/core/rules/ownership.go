package rules

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
	"github.com/SscSPs/business_report_engine/internal/core/domain"
)

// GroupSpec lists the plain fields and collections stored in one attribute group.
type GroupSpec struct {
	Group       domain.GroupName
	Fields      []string
	Collections []string
}

// Ownership maps every stored field key to exactly one attribute group.
type Ownership struct {
	fields      map[string]domain.GroupName
	collections map[string]domain.GroupName
	names       []string
}

// NewOwnership validates the group specs. A key or collection claimed by two
// groups is a configuration error.
func NewOwnership(specs ...GroupSpec) (*Ownership, error) {
	o := &Ownership{
		fields:      map[string]domain.GroupName{},
		collections: map[string]domain.GroupName{},
	}
	for _, spec := range specs {
		for _, f := range spec.Fields {
			if prev, dup := o.fields[f]; dup {
				return nil, fmt.Errorf("%w: field %q owned by both %s and %s", apperrors.ErrRuleConfig, f, prev, spec.Group)
			}
			o.fields[f] = spec.Group
		}
		for _, c := range spec.Collections {
			if prev, dup := o.collections[c]; dup {
				return nil, fmt.Errorf("%w: collection %q owned by both %s and %s", apperrors.ErrRuleConfig, c, prev, spec.Group)
			}
			o.collections[c] = spec.Group
			o.names = append(o.names, c)
		}
	}
	sort.Strings(o.names)
	return o, nil
}

// GroupOf returns the group owning key. Collection item keys resolve to the
// group owning their collection.
func (o *Ownership) GroupOf(key string) (domain.GroupName, bool) {
	if g, ok := o.fields[key]; ok {
		return g, true
	}
	if c, _, _, ok := domain.ParseItemKey(key, o.names); ok {
		return o.collections[c], true
	}
	return "", false
}

// CollectionGroup returns the group owning a whole collection.
func (o *Ownership) CollectionGroup(collection string) (domain.GroupName, bool) {
	g, ok := o.collections[collection]
	return g, ok
}

// Collections returns the known collection names, sorted.
func (o *Ownership) Collections() []string {
	return o.names
}

// DefaultOwnership is the storage layout of period reports.
func DefaultOwnership() (*Ownership, error) {
	business := append(append([]string(nil), domain.ProfileFieldKeys...), "personNo", "jointBiz", "tel_home", "birth")

	revenue := []string{FieldRevInc, FieldRevEx, FieldRevTotal, "billOutNormal", "billOutBuyer", "nonBillCard", "nonBillCash", "nonBillEtc"}
	for _, row := range append([]string{ReviewBalanceRow}, ReviewInputRows...) {
		for _, col := range append([]string{ReviewTotalCol}, ReviewRevenueCols...) {
			revenue = append(revenue, ReviewKey(row, col))
		}
	}

	deduction := append([]string{FieldBuyTotal}, PurchaseFields...)
	for i := 27; i <= 30; i++ {
		deduction = append(deduction, "pharm_"+strconv.Itoa(i), "supp_"+strconv.Itoa(i))
	}

	facility := []string{"room_clinic", "room_surgery", "room_ward", "room_wait", "staff_doctor", "staff_nurse"}

	return NewOwnership(
		GroupSpec{Group: domain.GroupBusinessInfo, Fields: business},
		GroupSpec{Group: domain.GroupRevenueSummary, Fields: revenue, Collections: []string{CollectionNonIns}},
		GroupSpec{Group: domain.GroupDeductionInfo, Fields: deduction},
		GroupSpec{Group: domain.GroupFacilityInfo, Fields: facility, Collections: []string{CollectionDevices, CollectionMaterials}},
	)
}

// MustDefaultOwnership panics when the built-in layout is inconsistent.
func MustDefaultOwnership() *Ownership {
	o, err := DefaultOwnership()
	if err != nil {
		panic(err)
	}
	return o
}
