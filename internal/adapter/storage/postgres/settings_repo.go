package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const autoTransitionKey = "auto_transition_enabled"

// SettingsRepo implements ports.SettingsRepository on a key/value settings
// table. The auto-transition flag is read fresh on every driver tick so
// operators can flip it without restarting anything.
type SettingsRepo struct {
	pool Pool
}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(pool Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// GetAutoTransitionEnabled reads the auto-transition flag. A missing row
// means the flag was never touched and defaults to enabled.
func (r *SettingsRepo) GetAutoTransitionEnabled(ctx context.Context) (bool, error) {
	query := `SELECT value FROM platform_settings WHERE key = $1`

	var enabled bool
	err := r.pool.QueryRow(ctx, query, autoTransitionKey).Scan(&enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return true, nil
		}
		return false, fmt.Errorf("get auto-transition flag: %w", err)
	}
	return enabled, nil
}

// SetAutoTransitionEnabled writes the auto-transition flag.
func (r *SettingsRepo) SetAutoTransitionEnabled(ctx context.Context, enabled bool) error {
	query := `INSERT INTO platform_settings (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	_, err := r.pool.Exec(ctx, query, autoTransitionKey, enabled)
	if err != nil {
		return fmt.Errorf("set auto-transition flag: %w", err)
	}
	return nil
}
