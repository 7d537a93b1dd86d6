package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pluri-rh/timesheet-manager/backend/internal/domain"
)

func (r *Repository) CreateProfile(profile *domain.Profile) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO profiles (email, password_hash, role, agency_id, agency_name, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at, version
	`

	args := []any{profile.Email, profile.PasswordHash, profile.Role, profile.AgencyID, profile.AgencyName, profile.FirstName, profile.LastName, profile.Phone}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt, &profile.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetProfileByID(id uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT email, password_hash, role, agency_id, agency_name, first_name, last_name, phone, created_at, updated_at, last_login_at, version
		FROM profiles WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	profile := &domain.Profile{
		ID: id,
	}

	dst := []any{&profile.Email, &profile.PasswordHash, &profile.Role, &profile.AgencyID, &profile.AgencyName, &profile.FirstName, &profile.LastName, &profile.Phone, &profile.CreatedAt, &profile.UpdatedAt, &profile.LastLoginAt, &profile.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *Repository) GetProfileByEmail(email string) (*domain.Profile, error) {
	query := `
		SELECT id, password_hash, role, agency_id, agency_name, first_name, last_name, phone, created_at, updated_at, last_login_at, version
		FROM profiles WHERE email = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	profile := &domain.Profile{
		Email: email,
	}

	dst := []any{&profile.ID, &profile.PasswordHash, &profile.Role, &profile.AgencyID, &profile.AgencyName, &profile.FirstName, &profile.LastName, &profile.Phone, &profile.CreatedAt, &profile.UpdatedAt, &profile.LastLoginAt, &profile.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *Repository) UpdateProfile(profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET
			password_hash = $1,
			email = $2,
			first_name = $3,
			last_name = $4,
			phone = $5,
			updated_at = now(),
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{profile.PasswordHash, profile.Email, profile.FirstName, profile.LastName, profile.Phone, profile.ID, profile.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&profile.UpdatedAt, &profile.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) TouchLastLogin(id uuid.UUID) error {
	query := `
		UPDATE profiles SET last_login_at = now() WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

// GetInterimairesByAgency lists the worker profiles administered by an
// agency, newest first. This is display-scoped filtering; row-level
// policies in the store remain the access-control authority.
func (r *Repository) GetInterimairesByAgency(agencyID uuid.UUID) ([]*domain.Profile, error) {
	query := `
		SELECT id, email, role, agency_id, agency_name, first_name, last_name, phone, created_at, updated_at, last_login_at, version
		FROM profiles
		WHERE role = $1 AND agency_id = $2
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, domain.RoleInterimaire, agencyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]*domain.Profile, 0)
	for rows.Next() {
		profile := &domain.Profile{}
		dst := []any{&profile.ID, &profile.Email, &profile.Role, &profile.AgencyID, &profile.AgencyName, &profile.FirstName, &profile.LastName, &profile.Phone, &profile.CreatedAt, &profile.UpdatedAt, &profile.LastLoginAt, &profile.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM profiles WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
