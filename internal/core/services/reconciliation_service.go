package services

import (
	"errors"
	"sort"

	"github.com/SscSPs/business_report_engine/internal/core/domain"
	portssvc "github.com/SscSPs/business_report_engine/internal/core/ports/services"
	"github.com/SscSPs/business_report_engine/internal/core/rules"
	"github.com/shopspring/decimal"
)

// reconciliationService recomputes derived fields. It holds no mutable state.
type reconciliationService struct {
	registry *rules.Registry
}

// NewReconciliationService creates an evaluator over the given rules.
func NewReconciliationService(registry *rules.Registry) portssvc.ReconciliationSvc {
	return &reconciliationService{registry: registry}
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

// Evaluate overlays change on previous and walks the section's rules in
// dependency order. A scalar rule fires when one of its inputs was edited or
// recomputed earlier in the same pass; a list rule fires for every item with
// an edited tracked attribute. Derived keys in change are not applied and are
// returned in Rejected. A change-set addressing a collection item by a
// malformed or out-of-range key is refused as a whole.
func (s *reconciliationService) Evaluate(previous, change domain.FieldSet, section domain.SectionID) (*domain.Reconciliation, error) {
	sec, err := s.registry.Section(section)
	if err != nil {
		return nil, err
	}
	var invalid []error
	for _, key := range change.Keys() {
		if err := rules.CheckItemKey(key); err != nil {
			invalid = append(invalid, err)
		}
	}
	if len(invalid) > 0 {
		return nil, errors.Join(invalid...)
	}

	state := previous.Clone()
	dirty := make(map[string]bool, len(change))
	var rejected []string
	for _, key := range change.Keys() {
		if sec.IsDerived(key) {
			rejected = append(rejected, key)
			continue
		}
		state[key] = change[key]
		dirty[key] = true
	}

	touched := map[string]bool{}
	write := func(key string, value domain.FieldValue) {
		if old, ok := state[key]; !ok || !old.Equal(value) {
			touched[key] = true
		}
		state[key] = value
		dirty[key] = true
	}

	for _, r := range sec.Rules() {
		if !anyDirty(r.Inputs, dirty) {
			continue
		}
		results := r.Compute(state)
		for _, out := range r.Outputs {
			if val, ok := results[out]; ok {
				write(out, domain.Number(val))
			}
		}
	}

	for _, lr := range sec.ListRules() {
		for _, idx := range touchedItems(lr, dirty) {
			item := func(attr string) decimal.Decimal {
				return state.Decimal(domain.ItemKey(lr.Collection, idx, attr))
			}
			write(lr.OutputKey(idx), domain.Number(lr.Compute(item)))
		}
	}

	return &domain.Reconciliation{
		Section:  section,
		State:    state,
		Touched:  sortedKeys(touched),
		Rejected: rejected,
	}, nil
}

func anyDirty(inputs []string, dirty map[string]bool) bool {
	for _, in := range inputs {
		if dirty[in] {
			return true
		}
	}
	return false
}

// touchedItems returns the sorted item indexes of lr's collection whose
// tracked attributes were edited.
func touchedItems(lr rules.ListRule, dirty map[string]bool) []int {
	seen := map[int]bool{}
	var indexes []int
	collections := []string{lr.Collection}
	for key := range dirty {
		_, idx, attr, ok := domain.ParseItemKey(key, collections)
		if !ok || !lr.Tracks(attr) || seen[idx] {
			continue
		}
		seen[idx] = true
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	return indexes
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
