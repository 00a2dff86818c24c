package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"pet-clinic-bookings/migrations"

	"github.com/pressly/goose/v3"
)

// Migrate aplica las migraciones SQL embebidas al arranque.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
