package repositories

import (
	"context"

	"github.com/SscSPs/business_report_engine/internal/core/domain"
)

// ProfileReader defines read operations for the global profile
type ProfileReader interface {
	// FindProfile retrieves the singleton profile. Returns apperrors.ErrNotFound
	// when it was never saved.
	FindProfile(ctx context.Context) (*domain.Profile, error)
}

// ProfileWriter defines write operations for the global profile
type ProfileWriter interface {
	// SaveProfile upserts the singleton profile.
	SaveProfile(ctx context.Context, profile domain.Profile) error
}

// ProfileRepositoryFacade combines all profile-related repository interfaces
type ProfileRepositoryFacade interface {
	ProfileReader
	ProfileWriter
}
