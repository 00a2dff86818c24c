package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-clinic-bookings/internal/domain/bookings"
)

type BookingsRepo struct {
	db *sql.DB
}

func NewBookingsRepo(db *sql.DB) *BookingsRepo {
	return &BookingsRepo{db: db}
}

func (r *BookingsRepo) Create(ctx context.Context, b bookings.Booking) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bookings (
			id, user_id, pet_id, vet_id,
			start_at, end_at, status, reason,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		b.ID,
		b.UserID,
		b.PetID,
		b.VetID,
		b.StartAt,
		b.EndAt,
		string(b.Status),
		b.Reason,
		b.CreatedAt,
		b.UpdatedAt,
	)
	return err
}

func (r *BookingsRepo) Update(ctx context.Context, b bookings.Booking) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bookings
		SET
			start_at = $2,
			end_at = $3,
			status = $4,
			reason = $5,
			updated_at = $6
		WHERE id = $1
	`,
		b.ID,
		b.StartAt,
		b.EndAt,
		string(b.Status),
		b.Reason,
		b.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return bookings.ErrNotFound
	}
	return nil
}

func (r *BookingsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return bookings.ErrNotFound
	}
	return nil
}

const selectBookingSQL = `
	SELECT
		id, user_id, pet_id, vet_id,
		start_at, end_at, status, reason,
		created_at, updated_at
	FROM bookings
`

// GetForUser aplica el scope en SQL: booking ajeno => cero filas.
func (r *BookingsRepo) GetForUser(ctx context.Context, bookingID, userID string) (bookings.Booking, error) {
	bookingID = strings.TrimSpace(bookingID)
	userID = strings.TrimSpace(userID)
	if bookingID == "" || userID == "" {
		return bookings.Booking{}, bookings.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, selectBookingSQL+` WHERE id = $1 AND user_id = $2`, bookingID, userID)
	return scanBooking(row)
}

func (r *BookingsRepo) GetForVet(ctx context.Context, bookingID, vetID string) (bookings.Booking, error) {
	bookingID = strings.TrimSpace(bookingID)
	vetID = strings.TrimSpace(vetID)
	if bookingID == "" || vetID == "" {
		return bookings.Booking{}, bookings.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, selectBookingSQL+` WHERE id = $1 AND vet_id = $2`, bookingID, vetID)
	return scanBooking(row)
}

func (r *BookingsRepo) ListByUser(ctx context.Context, userID string) ([]bookings.Booking, error) {
	return r.list(ctx, selectBookingSQL+` WHERE user_id = $1 ORDER BY start_at ASC`, userID)
}

func (r *BookingsRepo) ListByVet(ctx context.Context, vetID string) ([]bookings.Booking, error) {
	return r.list(ctx, selectBookingSQL+` WHERE vet_id = $1 ORDER BY start_at ASC`, vetID)
}

func (r *BookingsRepo) list(ctx context.Context, query, arg string) ([]bookings.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]bookings.Booking, 0)
	for rows.Next() {
		var b bookings.Booking
		if err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.PetID,
			&b.VetID,
			&b.StartAt,
			&b.EndAt,
			&b.Status,
			&b.Reason,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	return out, rows.Err()
}

func scanBooking(row *sql.Row) (bookings.Booking, error) {
	var b bookings.Booking
	if err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.PetID,
		&b.VetID,
		&b.StartAt,
		&b.EndAt,
		&b.Status,
		&b.Reason,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return bookings.Booking{}, bookings.ErrNotFound
		}
		return bookings.Booking{}, err
	}
	return b, nil
}
