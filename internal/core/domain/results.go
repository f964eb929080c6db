package domain

import "time"

// Baseline is the merged initial field set for one section and period.
type Baseline struct {
	Section       SectionID
	Period        Period
	Fields        FieldSet
	ProfileFound  bool
	ReportFound   bool
	DraftRestored bool // unsaved local data was applied on top of the remote data
}

// Reconciliation is the outcome of evaluating one change-set.
type Reconciliation struct {
	Section  SectionID
	State    FieldSet
	Touched  []string // derived keys whose value changed, sorted
	Rejected []string // derived keys present in the change-set and ignored, sorted
}

// CommitResult describes a successful commit.
type CommitResult struct {
	Section     SectionID
	Period      Period
	Profile     Profile
	Report      PeriodReport
	Unassigned  []string // keys that belong to no attribute group and were not stored
	CommittedAt time.Time
}
