// Package rules declares which document fields are derived from which inputs,
// per section, and which attribute group owns each stored field.
package rules

import (
	"github.com/SscSPs/business_report_engine/internal/core/domain"
	"github.com/SscSPs/business_report_engine/internal/utils/numeric"
	"github.com/shopspring/decimal"
)

// Rule derives one or more output fields from input fields of the same section.
// Compute must be pure: it may only read the given field set.
type Rule struct {
	Name    string
	Inputs  []string
	Outputs []string
	Compute func(fs domain.FieldSet) map[string]decimal.Decimal
}

// ListRule derives one attribute of every item of a repeating collection from
// tracked attributes of the same item. Only items whose tracked attributes
// changed are recomputed.
type ListRule struct {
	Name       string
	Collection string
	Inputs     []string
	Output     string
	Compute    func(item func(attribute string) decimal.Decimal) decimal.Decimal
}

// OutputKey returns the positional key of the output attribute of item index.
func (r ListRule) OutputKey(index int) string {
	return domain.ItemKey(r.Collection, index, r.Output)
}

// Tracks reports whether attribute is one of the rule's inputs.
func (r ListRule) Tracks(attribute string) bool {
	for _, in := range r.Inputs {
		if in == attribute {
			return true
		}
	}
	return false
}

// Sum returns a rule writing the sum of inputs to output.
func Sum(name, output string, inputs ...string) Rule {
	ins := append([]string(nil), inputs...)
	return Rule{
		Name:    name,
		Inputs:  ins,
		Outputs: []string{output},
		Compute: func(fs domain.FieldSet) map[string]decimal.Decimal {
			values := make([]decimal.Decimal, len(ins))
			for i, in := range ins {
				values[i] = fs.Decimal(in)
			}
			return map[string]decimal.Decimal{output: numeric.Sum(values...)}
		},
	}
}

// Balance returns a rule writing received - previous + outstanding to output.
func Balance(name, output, received, previous, outstanding string) Rule {
	return Rule{
		Name:    name,
		Inputs:  []string{received, previous, outstanding},
		Outputs: []string{output},
		Compute: func(fs domain.FieldSet) map[string]decimal.Decimal {
			total := fs.Decimal(received).Sub(fs.Decimal(previous)).Add(fs.Decimal(outstanding))
			return map[string]decimal.Decimal{output: total}
		},
	}
}
