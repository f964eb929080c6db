package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
	"github.com/SscSPs/business_report_engine/internal/core/domain"
)

// Collections of the dental review appendix besides materials.
const (
	CollectionDevices = "devices"
	CollectionNonIns  = "non_ins"
)

// CollectionSpec describes a repeating table: its item attributes, the rows
// it starts with when nothing is stored yet and how many rows it may hold.
// Stored renames attributes whose name in the stored blob differs from the
// one used in item keys.
type CollectionSpec struct {
	Name       string
	Attributes []string
	Seed       []domain.FieldSet
	MaxItems   int
	Stored     map[string]string
}

// HasAttribute reports whether attr is an item attribute of the collection.
func (c CollectionSpec) HasAttribute(attr string) bool {
	for _, a := range c.Attributes {
		if a == attr {
			return true
		}
	}
	return false
}

// FallbackIdentity is the business identity used when no profile exists.
func FallbackIdentity() domain.FieldSet {
	return domain.FieldSet{
		domain.FieldBizName: domain.Text("찬치과의원"),
		domain.FieldBizNo:   domain.Text("616-93-18253"),
		domain.FieldRepName: domain.Text("박찬"),
		domain.FieldAddress: domain.Text("제주특별자치도 제주시 중앙로371-1, 비 (이도이동,2층)"),
		domain.FieldTel:     domain.Text("064-755-2228"),
		domain.FieldPhone:   domain.Text(""),
		domain.FieldEmail:   domain.Text(""),
		"personNo":          domain.Text(""),
	}
}

// Attribute counts shown on the form but never computed.
const (
	AttrCount        = "count"
	MaterialUseCount = "use_count"
)

// materialStoredNames are the attribute names of material rows in the stored blob.
var materialStoredNames = map[string]string{
	MaterialInit:     "mat_init",
	MaterialBuy:      "mat_buy",
	MaterialUseCount: "mat_use_count",
	MaterialUsed:     "mat_used_amt",
	MaterialNext:     "mat_next",
}

// CollectionSpecs returns the repeating tables in display order.
func CollectionSpecs() []CollectionSpec {
	materials := make([]domain.FieldSet, 0, 3)
	for _, name := range []string{"임플란트", "교정용 브리켓", "금(골드)"} {
		materials = append(materials, domain.FieldSet{"name": domain.Text(name)})
	}
	return []CollectionSpec{
		{
			Name:       CollectionDevices,
			Attributes: []string{"code", "name", AttrCount, "date", "price", "lease_date", "lease_price"},
			Seed:       emptyRows(4),
			MaxItems:   10,
		},
		{
			Name:       CollectionNonIns,
			Attributes: []string{"code", "type", AttrCount, "amt"},
			Seed:       emptyRows(5),
			MaxItems:   10,
		},
		{
			Name:       CollectionMaterials,
			Attributes: []string{"name", MaterialInit, MaterialBuy, MaterialUseCount, MaterialUsed, MaterialNext},
			Seed:       materials,
			MaxItems:   10,
			Stored:     materialStoredNames,
		},
	}
}

var collectionSpecs = CollectionSpecs()

func collectionSpec(name string) (CollectionSpec, bool) {
	for _, spec := range collectionSpecs {
		if spec.Name == name {
			return spec, true
		}
	}
	return CollectionSpec{}, false
}

// StoredAttribute returns the name under which an item attribute is stored.
func StoredAttribute(collection, attr string) string {
	spec, _ := collectionSpec(collection)
	if stored, ok := spec.Stored[attr]; ok {
		return stored
	}
	return attr
}

// KeyAttribute is the inverse of StoredAttribute.
func KeyAttribute(collection, stored string) string {
	spec, _ := collectionSpec(collection)
	for attr, name := range spec.Stored {
		if name == stored {
			return attr
		}
	}
	return stored
}

// CheckItemKey rejects a key that addresses a collection item badly: an index
// that is not canonical or exceeds the collection's rows, or an attribute the
// collection does not have. Keys outside every collection pass.
func CheckItemKey(key string) error {
	for _, spec := range collectionSpecs {
		if !strings.HasPrefix(key, spec.Name+"_") {
			continue
		}
		_, idx, attr, ok := domain.ParseItemKey(key, []string{spec.Name})
		switch {
		case !ok:
			return fmt.Errorf("%w: %q is not a valid %s item key", apperrors.ErrValidation, key, spec.Name)
		case idx >= spec.MaxItems:
			return fmt.Errorf("%w: %q exceeds the %d rows of %s", apperrors.ErrValidation, key, spec.MaxItems, spec.Name)
		case !spec.HasAttribute(attr):
			return fmt.Errorf("%w: %s items have no attribute %q", apperrors.ErrValidation, spec.Name, attr)
		}
		return nil
	}
	return nil
}

func emptyRows(n int) []domain.FieldSet {
	rows := make([]domain.FieldSet, n)
	for i := range rows {
		rows[i] = domain.FieldSet{}
	}
	return rows
}

// SeedFields flattens the collection seeds into positional keys.
func SeedFields() domain.FieldSet {
	out := domain.FieldSet{}
	for _, spec := range collectionSpecs {
		for i, row := range spec.Seed {
			for attr, v := range row {
				out[domain.ItemKey(spec.Name, i, attr)] = v
			}
		}
	}
	return out
}

// SectionFields lists the field keys a section edits, in display order.
// Collection keys are expanded for the seeded rows.
func SectionFields(id domain.SectionID) []string {
	switch id {
	case domain.SectionReport:
		keys := []string{
			domain.FieldBizName, domain.FieldBizNo, domain.FieldRepName, "personNo",
			domain.FieldAddress, domain.FieldTel, "tel_home", domain.FieldPhone, domain.FieldEmail, "jointBiz",
			FieldRevInc, FieldRevEx, FieldRevTotal,
			"billOutNormal", "billOutBuyer", "nonBillCard", "nonBillCash", "nonBillEtc",
			FieldBuyTotal,
		}
		return append(keys, PurchaseFields...)
	case domain.SectionReview:
		keys := []string{"birth", "room_clinic", "room_surgery", "room_ward", "room_wait", "staff_doctor", "staff_nurse"}
		for _, row := range append([]string{ReviewBalanceRow}, ReviewInputRows...) {
			for _, col := range append([]string{ReviewTotalCol}, ReviewRevenueCols...) {
				keys = append(keys, ReviewKey(row, col))
			}
		}
		for i := 27; i <= 30; i++ {
			keys = append(keys, "pharm_"+strconv.Itoa(i))
		}
		for i := 27; i <= 30; i++ {
			keys = append(keys, "supp_"+strconv.Itoa(i))
		}
		return keys
	case domain.SectionReviewSub:
		keys := []string{domain.FieldBizName, domain.FieldRepName, "birth"}
		for _, spec := range CollectionSpecs() {
			for i := range spec.Seed {
				for _, attr := range spec.Attributes {
					keys = append(keys, domain.ItemKey(spec.Name, i, attr))
				}
			}
		}
		return keys
	default:
		return nil
	}
}
