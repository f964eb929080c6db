package services

import (
	"context"

	"github.com/SscSPs/business_report_engine/internal/core/domain"
)

// ReconciliationSvc recomputes derived fields after an edit. It performs no I/O.
type ReconciliationSvc interface {
	// Evaluate applies change on top of previous and recomputes every derived
	// field of the section affected by it.
	Evaluate(previous, change domain.FieldSet, section domain.SectionID) (*domain.Reconciliation, error)
}

// BaselineSvc builds the initial editable state of a document.
type BaselineSvc interface {
	// Resolve layers defaults, profile, period report and draft. On a remote
	// read failure it returns a usable baseline together with a transient error.
	Resolve(ctx context.Context, section domain.SectionID, period domain.Period) (*domain.Baseline, error)
}

// DraftReaderSvc defines read operations for drafts
type DraftReaderSvc interface {
	// Load returns the stored draft and whether one exists.
	Load(ctx context.Context, section domain.SectionID, period domain.Period) (domain.FieldSet, bool, error)
}

// DraftWriterSvc defines write operations for drafts
type DraftWriterSvc interface {
	Save(ctx context.Context, section domain.SectionID, period domain.Period, fields domain.FieldSet) error
	Clear(ctx context.Context, section domain.SectionID, period domain.Period) error
}

// DraftSvc combines draft read and write operations
type DraftSvc interface {
	DraftReaderSvc
	DraftWriterSvc
}

// VisibilitySvc owns the global field visibility mask.
type VisibilitySvc interface {
	// Load reads the persisted mask. Called once when a session starts.
	Load(ctx context.Context) error
	// Toggle flips the suppressed flag of key, persists the mask and returns the new flag.
	Toggle(ctx context.Context, key string) (bool, error)
	// Mask returns a snapshot of the mask.
	Mask() domain.VisibilityMask
	IsShown(key string, optimizeMode bool) bool
}

// CommitSvc writes a working state to the remote store.
type CommitSvc interface {
	Commit(ctx context.Context, section domain.SectionID, period domain.Period, fields domain.FieldSet) (*domain.CommitResult, error)
}

// EditorSvc is one editing session over a selected section and period.
type EditorSvc interface {
	// Select switches the session to section and period and loads its baseline.
	// A load overtaken by a newer Select returns apperrors.ErrStaleLoad.
	Select(ctx context.Context, section domain.SectionID, period domain.Period) (*domain.Baseline, error)
	// Edit reconciles change into the current state and stores the draft. After
	// a partial load the draft is not stored and apperrors.ErrPartialBaseline
	// is returned together with the reconciliation.
	Edit(ctx context.Context, change domain.FieldSet) (*domain.Reconciliation, error)
	// Save commits the current state. A partially loaded state is refused.
	Save(ctx context.Context) (*domain.CommitResult, error)
	// Current returns the selection and a copy of its state.
	Current() (domain.SectionID, domain.Period, domain.FieldSet)
}
