package postgres

import (
	"context"
	"database/sql"

	"pet-clinic-bookings/internal/domain/users"
	"pet-clinic-bookings/internal/domain/vets"
)

// RegistrationRepo crea cuenta y perfil vet dentro de una transacción.
type RegistrationRepo struct {
	db *sql.DB
}

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo {
	return &RegistrationRepo{db: db}
}

func (r *RegistrationRepo) CreateWithUser(ctx context.Context, u users.User, v vets.Vet) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertUserSQL,
		u.ID,
		u.Email,
		u.FullName,
		u.PasswordHash,
		string(u.Role),
		u.IsActive,
		u.CreatedAt,
		u.UpdatedAt,
	); err != nil {
		return mapUniqueEmail(err)
	}

	if _, err := tx.ExecContext(ctx, insertVetSQL,
		v.ID,
		v.UserID,
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
		v.CreatedAt,
		v.UpdatedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}
