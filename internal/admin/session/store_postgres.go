// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package session

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communia-hq/communia/internal/platform/dberr"
)

// PostgresProfileRepository implements [ProfileRepository] using pgx.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new PostgreSQL implementation of the ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

/*
FindBySubject retrieves the admin profile owned by an identity subject.

Description: Performs a lookup on the admin_profiles table. The table is tiny
(one row per administrator) and indexed on subject_id, so this read is cheap
enough to run on every login.

Parameters:
  - ctx: context.Context
  - subjectID: string

Returns:
  - *AdminProfile: Hydrated profile entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresProfileRepository) FindBySubject(ctx context.Context, subjectID string) (*AdminProfile, error) {
	const query = `
		SELECT id, subject_id, email, display_name, role, created_at, updated_at
		FROM admin_profiles
		WHERE subject_id = $1`

	profile := &AdminProfile{}
	err := repository.pool.QueryRow(ctx, query, subjectID).Scan(
		&profile.ID,
		&profile.SubjectID,
		&profile.Email,
		&profile.DisplayName,
		&profile.Role,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "Admin profile")
	}

	return profile, nil
}
