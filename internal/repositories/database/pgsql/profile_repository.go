package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
	"github.com/SscSPs/business_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/business_report_engine/internal/core/ports/repositories"
	"github.com/SscSPs/business_report_engine/internal/models"
	"github.com/SscSPs/business_report_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProfileRepository struct {
	BaseRepository
}

// newPgxProfileRepository creates a new repository for the global profile.
func newPgxProfileRepository(pool *pgxpool.Pool) *PgxProfileRepository {
	return &PgxProfileRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ProfileRepositoryFacade = (*PgxProfileRepository)(nil)

// FindProfile retrieves the singleton profile row.
func (r *PgxProfileRepository) FindProfile(ctx context.Context) (*domain.Profile, error) {
	query := `
		SELECT id, biz_name, biz_no, rep_name, address, tel, phone, email, updated_at
		FROM profile
		WHERE id = $1;
	`
	var m models.ProfileRow
	err := r.Pool.QueryRow(ctx, query, models.ProfileRowID).Scan(
		&m.ID,
		&m.BizName,
		&m.BizNo,
		&m.RepName,
		&m.Address,
		&m.Tel,
		&m.Phone,
		&m.Email,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	profile := mapping.ToDomainProfile(m)
	return &profile, nil
}

// SaveProfile upserts the singleton profile row.
func (r *PgxProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	return saveProfile(ctx, r.Pool, profile)
}

func saveProfile(ctx context.Context, q querier, profile domain.Profile) error {
	m := mapping.ToModelProfile(profile)
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO profile (id, biz_name, biz_no, rep_name, address, tel, phone, email, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			biz_name = EXCLUDED.biz_name,
			biz_no = EXCLUDED.biz_no,
			rep_name = EXCLUDED.rep_name,
			address = EXCLUDED.address,
			tel = EXCLUDED.tel,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := q.Exec(ctx, query,
		m.ID,
		m.BizName,
		m.BizNo,
		m.RepName,
		m.Address,
		m.Tel,
		m.Phone,
		m.Email,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
