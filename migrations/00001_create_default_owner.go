package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	goose.AddMigrationContext(upCreateDefaultOwner, downCreateDefaultOwner)
}

func upCreateDefaultOwner(ctx context.Context, tx *sql.Tx) error {
	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE role = 'owner'").Scan(&count); err != nil {
		return fmt.Errorf("failed to check existing owner: %w", err)
	}
	if count > 0 {
		return nil
	}

	if settings.OwnerPassword == "" {
		return errors.New("OWNER_PASSWORD must be set to seed the platform owner")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(settings.OwnerPassword), settings.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		INSERT INTO users (mobile, password, name, role, credits, created_at, updated_at)
		VALUES ($1, $2, 'Platform Owner', 'owner', 0, NOW(), NOW())
	`
	if _, err := tx.ExecContext(ctx, query, settings.OwnerMobile, string(hashed)); err != nil {
		return fmt.Errorf("failed to create owner user: %w", err)
	}
	return nil
}

func downCreateDefaultOwner(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE mobile = $1 AND role = 'owner'", settings.OwnerMobile); err != nil {
		return fmt.Errorf("failed to delete owner user: %w", err)
	}
	return nil
}
