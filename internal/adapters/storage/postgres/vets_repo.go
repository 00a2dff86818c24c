package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-clinic-bookings/internal/domain/vets"
)

type VetsRepo struct {
	db *sql.DB
}

func NewVetsRepo(db *sql.DB) *VetsRepo {
	return &VetsRepo{db: db}
}

const insertVetSQL = `
	INSERT INTO vets (
		id, user_id,
		full_name, email, phone,
		specialty, bio,
		clinic_name, clinic_address, city, state_region, postal_code, country,
		is_active,
		created_at, updated_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
`

const selectVetSQL = `
	SELECT
		id, user_id,
		full_name, email, phone,
		specialty, bio,
		clinic_name, clinic_address, city, state_region, postal_code, country,
		is_active,
		created_at, updated_at
	FROM vets
`

func (r *VetsRepo) GetByID(ctx context.Context, id string) (vets.Vet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return vets.Vet{}, vets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, selectVetSQL+` WHERE id = $1`, id)
	return scanVet(row)
}

func (r *VetsRepo) GetByUserID(ctx context.Context, userID string) (vets.Vet, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return vets.Vet{}, vets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, selectVetSQL+` WHERE user_id = $1`, userID)
	return scanVet(row)
}

func (r *VetsRepo) ListActive(ctx context.Context) ([]vets.Vet, error) {
	rows, err := r.db.QueryContext(ctx, selectVetSQL+` WHERE is_active ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vets.Vet, 0)
	for rows.Next() {
		v, err := scanVetRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, rows.Err()
}

func (r *VetsRepo) Update(ctx context.Context, v vets.Vet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vets
		SET
			full_name = $2,
			email = $3,
			phone = $4,
			specialty = $5,
			bio = $6,
			clinic_name = $7,
			clinic_address = $8,
			city = $9,
			state_region = $10,
			postal_code = $11,
			country = $12,
			is_active = $13,
			updated_at = $14
		WHERE id = $1
	`,
		v.ID,
		v.FullName,
		v.Email,
		v.Phone,
		string(v.Specialty),
		v.Bio,
		v.ClinicName,
		v.ClinicAddress,
		v.City,
		v.StateRegion,
		v.PostalCode,
		v.Country,
		v.IsActive,
		v.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vets.ErrNotFound
	}
	return nil
}

func (r *VetsRepo) CreateWorkingHours(ctx context.Context, wh vets.WorkingHours) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vet_working_hours (
			id, vet_id, day, start_time, end_time, is_active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		wh.ID,
		wh.VetID,
		string(wh.Day),
		wh.StartTime,
		wh.EndTime,
		wh.IsActive,
		wh.CreatedAt,
		wh.UpdatedAt,
	)
	return err
}

const selectWorkingHoursSQL = `
	SELECT
		id, vet_id, day, start_time, end_time, is_active,
		created_at, updated_at
	FROM vet_working_hours
`

func (r *VetsRepo) ListWorkingHoursByVet(ctx context.Context, vetID string) ([]vets.WorkingHours, error) {
	rows, err := r.db.QueryContext(ctx, selectWorkingHoursSQL+` WHERE vet_id = $1 ORDER BY created_at ASC`, vetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vets.WorkingHours, 0)
	for rows.Next() {
		var wh vets.WorkingHours
		if err := rows.Scan(
			&wh.ID,
			&wh.VetID,
			&wh.Day,
			&wh.StartTime,
			&wh.EndTime,
			&wh.IsActive,
			&wh.CreatedAt,
			&wh.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, wh)
	}

	return out, rows.Err()
}

func (r *VetsRepo) GetWorkingHoursByID(ctx context.Context, id string) (vets.WorkingHours, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return vets.WorkingHours{}, vets.ErrNotFound
	}

	var wh vets.WorkingHours
	err := r.db.QueryRowContext(ctx, selectWorkingHoursSQL+` WHERE id = $1`, id).Scan(
		&wh.ID,
		&wh.VetID,
		&wh.Day,
		&wh.StartTime,
		&wh.EndTime,
		&wh.IsActive,
		&wh.CreatedAt,
		&wh.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return vets.WorkingHours{}, vets.ErrNotFound
		}
		return vets.WorkingHours{}, err
	}
	return wh, nil
}

func (r *VetsRepo) DeleteWorkingHours(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vet_working_hours WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vets.ErrNotFound
	}
	return nil
}

func (r *VetsRepo) CreateTimeOff(ctx context.Context, to vets.TimeOff) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vet_time_off (
			id, vet_id, start_at, end_at, reason,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		to.ID,
		to.VetID,
		to.StartAt,
		to.EndAt,
		to.Reason,
		to.CreatedAt,
		to.UpdatedAt,
	)
	return err
}

const selectTimeOffSQL = `
	SELECT
		id, vet_id, start_at, end_at, reason,
		created_at, updated_at
	FROM vet_time_off
`

func (r *VetsRepo) ListTimeOffByVet(ctx context.Context, vetID string) ([]vets.TimeOff, error) {
	rows, err := r.db.QueryContext(ctx, selectTimeOffSQL+` WHERE vet_id = $1 ORDER BY start_at ASC`, vetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vets.TimeOff, 0)
	for rows.Next() {
		var to vets.TimeOff
		if err := rows.Scan(
			&to.ID,
			&to.VetID,
			&to.StartAt,
			&to.EndAt,
			&to.Reason,
			&to.CreatedAt,
			&to.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, to)
	}

	return out, rows.Err()
}

func (r *VetsRepo) GetTimeOffByID(ctx context.Context, id string) (vets.TimeOff, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return vets.TimeOff{}, vets.ErrNotFound
	}

	var to vets.TimeOff
	err := r.db.QueryRowContext(ctx, selectTimeOffSQL+` WHERE id = $1`, id).Scan(
		&to.ID,
		&to.VetID,
		&to.StartAt,
		&to.EndAt,
		&to.Reason,
		&to.CreatedAt,
		&to.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return vets.TimeOff{}, vets.ErrNotFound
		}
		return vets.TimeOff{}, err
	}
	return to, nil
}

func (r *VetsRepo) DeleteTimeOff(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vet_time_off WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vets.ErrNotFound
	}
	return nil
}

func scanVet(row *sql.Row) (vets.Vet, error) {
	var v vets.Vet
	if err := row.Scan(
		&v.ID,
		&v.UserID,
		&v.FullName,
		&v.Email,
		&v.Phone,
		&v.Specialty,
		&v.Bio,
		&v.ClinicName,
		&v.ClinicAddress,
		&v.City,
		&v.StateRegion,
		&v.PostalCode,
		&v.Country,
		&v.IsActive,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return vets.Vet{}, vets.ErrNotFound
		}
		return vets.Vet{}, err
	}
	return v, nil
}

func scanVetRow(rows *sql.Rows) (vets.Vet, error) {
	var v vets.Vet
	err := rows.Scan(
		&v.ID,
		&v.UserID,
		&v.FullName,
		&v.Email,
		&v.Phone,
		&v.Specialty,
		&v.Bio,
		&v.ClinicName,
		&v.ClinicAddress,
		&v.City,
		&v.StateRegion,
		&v.PostalCode,
		&v.Country,
		&v.IsActive,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}
