package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SectionID identifies one of the document variants, each with its own schema and rules.
type SectionID string

const (
	SectionReport    SectionID = "report"     // business status report
	SectionReview    SectionID = "review"     // revenue review table
	SectionReviewSub SectionID = "review_sub" // dental review appendix
)

// Sections lists every known section in display order.
var Sections = []SectionID{SectionReport, SectionReview, SectionReviewSub}

// ParseSection validates a section identifier.
func ParseSection(s string) (SectionID, error) {
	id := SectionID(strings.TrimSpace(s))
	for _, known := range Sections {
		if id == known {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// Period is the reporting year a document instance belongs to.
type Period int

// ParsePeriod parses a four digit reporting year.
func ParsePeriod(s string) (Period, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid period %q: %w", s, err)
	}
	p := Period(year)
	if !p.Valid() {
		return 0, fmt.Errorf("invalid period %q: year out of range", s)
	}
	return p, nil
}

// Valid reports whether p is a plausible reporting year.
func (p Period) Valid() bool {
	return p >= 1900 && p <= 9999
}

func (p Period) String() string {
	return strconv.Itoa(int(p))
}

// VisibilityMaskKey is the local store key of the global visibility mask.
const VisibilityMaskKey = "visibility_mask"

// DraftKey returns the local store key of the draft for one section and period.
func DraftKey(section SectionID, period Period) string {
	return "draft:" + string(section) + ":" + period.String()
}
