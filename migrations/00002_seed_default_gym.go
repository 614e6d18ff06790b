package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

const defaultGymName = "FITNESS PLUS"

func init() {
	goose.AddMigrationContext(upSeedDefaultGym, downSeedDefaultGym)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// upSeedDefaultGym runs once through goose. On a fresh install no partner
// exists yet, so EnsureDefaultGym repeats the seed on every startup.
func upSeedDefaultGym(ctx context.Context, tx *sql.Tx) error {
	return seedDefaultGym(ctx, tx)
}

// EnsureDefaultGym lists the flagship gym under the first partner account
// unless it already exists. It is a no-op while there is no partner.
func EnsureDefaultGym(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin default gym seed: %w", err)
	}
	if err := seedDefaultGym(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func seedDefaultGym(ctx context.Context, tx querier) error {
	var partnerID int64
	err := tx.QueryRowContext(ctx, "SELECT id FROM users WHERE role = 'admin' ORDER BY id LIMIT 1").Scan(&partnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up partner: %w", err)
	}

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM gyms WHERE name = $1", defaultGymName).Scan(&count); err != nil {
		return fmt.Errorf("failed to check existing gym: %w", err)
	}
	if count > 0 {
		return nil
	}

	var gymID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO gyms (name, address, district, image, open_time, close_time, rating, partner_id, credit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, NOW(), NOW())
		RETURNING id
	`,
		defaultGymName,
		"Level 5, House 7A, Road 41, Gulshan 2, Dhaka-1212",
		"Dhaka",
		"https://images.unsplash.com/photo-1593079831901-447551065166?q=80&w=2070",
		"06:00 AM",
		"11:59 PM",
		4.9,
		partnerID,
	).Scan(&gymID)
	if err != nil {
		return fmt.Errorf("failed to create default gym: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "UPDATE users SET gym_id = $1 WHERE id = $2 AND gym_id IS NULL", gymID, partnerID); err != nil {
		return fmt.Errorf("failed to link default gym to partner: %w", err)
	}
	return nil
}

func downSeedDefaultGym(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "UPDATE users SET gym_id = NULL WHERE gym_id IN (SELECT id FROM gyms WHERE name = $1)", defaultGymName); err != nil {
		return fmt.Errorf("failed to unlink default gym: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM gyms WHERE name = $1", defaultGymName); err != nil {
		return fmt.Errorf("failed to delete default gym: %w", err)
	}
	return nil
}
