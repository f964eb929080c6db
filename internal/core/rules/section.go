package rules

import (
	"fmt"
	"sort"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
	"github.com/SscSPs/business_report_engine/internal/core/domain"
)

// Section is the compiled rule set of one document section. Scalar rules are
// held in evaluation order; list rules run after them.
type Section struct {
	ID        domain.SectionID
	rules     []Rule
	listRules []ListRule
	derived   map[string]struct{}
}

// NewSection validates the declared rules and compiles their dependency graph.
func NewSection(id domain.SectionID, declared []Rule, listRules []ListRule) (*Section, error) {
	for _, r := range declared {
		if r.Name == "" || len(r.Outputs) == 0 || r.Compute == nil {
			return nil, fmt.Errorf("%w: section %s has an incomplete rule %q", apperrors.ErrRuleConfig, id, r.Name)
		}
	}
	ordered, err := evaluationOrder(declared)
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", id, err)
	}

	derived := map[string]struct{}{}
	for _, r := range ordered {
		for _, out := range r.Outputs {
			derived[out] = struct{}{}
		}
	}

	outputs := map[string]string{}
	for _, lr := range listRules {
		if lr.Name == "" || lr.Collection == "" || lr.Output == "" || lr.Compute == nil {
			return nil, fmt.Errorf("%w: section %s has an incomplete list rule %q", apperrors.ErrRuleConfig, id, lr.Name)
		}
		if lr.Tracks(lr.Output) {
			return nil, fmt.Errorf("%w: list rule %q reads its own output %q", apperrors.ErrRuleConfig, lr.Name, lr.Output)
		}
		slot := lr.Collection + "." + lr.Output
		if prev, dup := outputs[slot]; dup {
			return nil, fmt.Errorf("%w: %s is written by both %q and %q", apperrors.ErrRuleConfig, slot, prev, lr.Name)
		}
		outputs[slot] = lr.Name
	}

	return &Section{
		ID:        id,
		rules:     ordered,
		listRules: append([]ListRule(nil), listRules...),
		derived:   derived,
	}, nil
}

// Rules returns the scalar rules in evaluation order.
func (s *Section) Rules() []Rule {
	return s.rules
}

// ListRules returns the collection rules.
func (s *Section) ListRules() []ListRule {
	return s.listRules
}

// Collections returns the names of collections touched by list rules.
func (s *Section) Collections() []string {
	names := make([]string, 0, len(s.listRules))
	seen := map[string]bool{}
	for _, lr := range s.listRules {
		if !seen[lr.Collection] {
			seen[lr.Collection] = true
			names = append(names, lr.Collection)
		}
	}
	return names
}

// IsDerived reports whether key is written by a rule of this section and must
// therefore never be edited directly.
func (s *Section) IsDerived(key string) bool {
	if _, ok := s.derived[key]; ok {
		return true
	}
	for _, lr := range s.listRules {
		c, _, attr, ok := domain.ParseItemKey(key, []string{lr.Collection})
		if ok && c == lr.Collection && attr == lr.Output {
			return true
		}
	}
	return false
}

// DerivedKeys returns the scalar derived keys, sorted.
func (s *Section) DerivedKeys() []string {
	keys := make([]string, 0, len(s.derived))
	for k := range s.derived {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
