package rules

import (
	"fmt"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
	"github.com/SscSPs/business_report_engine/internal/core/domain"
)

// Registry holds the compiled rules of every section.
type Registry struct {
	sections map[domain.SectionID]*Section
}

// NewRegistry indexes the given sections by ID.
func NewRegistry(sections ...*Section) (*Registry, error) {
	r := &Registry{sections: make(map[domain.SectionID]*Section, len(sections))}
	for _, s := range sections {
		if _, dup := r.sections[s.ID]; dup {
			return nil, fmt.Errorf("%w: section %s registered twice", apperrors.ErrRuleConfig, s.ID)
		}
		r.sections[s.ID] = s
	}
	return r, nil
}

// Section returns the rules of one section.
func (r *Registry) Section(id domain.SectionID) (*Section, error) {
	s, ok := r.sections[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownSection, id)
	}
	return s, nil
}

// DefaultRegistry builds the rules of the business status report, the revenue
// review table and the dental review appendix.
func DefaultRegistry() (*Registry, error) {
	report, err := NewSection(domain.SectionReport, reportRules(), nil)
	if err != nil {
		return nil, err
	}
	review, err := NewSection(domain.SectionReview, reviewRules(), nil)
	if err != nil {
		return nil, err
	}
	reviewSub, err := NewSection(domain.SectionReviewSub, nil, reviewSubListRules())
	if err != nil {
		return nil, err
	}
	return NewRegistry(report, review, reviewSub)
}

// MustDefaultRegistry is DefaultRegistry for package initialisation and tests.
func MustDefaultRegistry() *Registry {
	r, err := DefaultRegistry()
	if err != nil {
		panic(err)
	}
	return r
}
