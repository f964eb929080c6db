package rules

import (
	"fmt"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
)

// evaluationOrder sorts rules so that every rule runs after the rules producing
// its inputs. Among rules that are ready at the same time the declared order
// wins, which makes the result deterministic.
func evaluationOrder(declared []Rule) ([]Rule, error) {
	producer := make(map[string]int, len(declared))
	for i, r := range declared {
		for _, out := range r.Outputs {
			if prev, dup := producer[out]; dup {
				return nil, fmt.Errorf("%w: field %q is written by both %q and %q",
					apperrors.ErrRuleConfig, out, declared[prev].Name, r.Name)
			}
			producer[out] = i
		}
	}

	indegree := make([]int, len(declared))
	dependents := make([][]int, len(declared))
	for j, r := range declared {
		seen := map[int]bool{}
		for _, in := range r.Inputs {
			p, ok := producer[in]
			if !ok || seen[p] {
				continue
			}
			if p == j {
				return nil, fmt.Errorf("%w: rule %q reads its own output %q", apperrors.ErrRuleConfig, r.Name, in)
			}
			seen[p] = true
			dependents[p] = append(dependents[p], j)
			indegree[j]++
		}
	}

	ordered := make([]Rule, 0, len(declared))
	done := make([]bool, len(declared))
	for len(ordered) < len(declared) {
		next := -1
		for i := range declared {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, fmt.Errorf("%w: dependency cycle among rules %v", apperrors.ErrRuleConfig, pendingNames(declared, done))
		}
		done[next] = true
		ordered = append(ordered, declared[next])
		for _, d := range dependents[next] {
			indegree[d]--
		}
	}
	return ordered, nil
}

func pendingNames(rules []Rule, done []bool) []string {
	var names []string
	for i, r := range rules {
		if !done[i] {
			names = append(names, r.Name)
		}
	}
	return names
}
