package postgres

import (
	"context"
	"errors"
	"fmt"

	"custodial-vault-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// VaultAccountRepo implements ports.VaultAccountRepository.
type VaultAccountRepo struct {
	pool Pool
}

// NewVaultAccountRepo creates a new VaultAccountRepo.
func NewVaultAccountRepo(pool Pool) *VaultAccountRepo {
	return &VaultAccountRepo{pool: pool}
}

// Create inserts a new vault account into the database.
func (r *VaultAccountRepo) Create(ctx context.Context, v *domain.VaultAccount) error {
	query := `INSERT INTO vault_accounts (id, workspace_id, name, hidden_on_ui, auto_fuel, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		v.ID, v.WorkspaceID, v.Name, v.HiddenOnUI, v.AutoFuel,
		v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vault account: %w", err)
	}
	return nil
}

// GetByID fetches a vault account by its UUID.
func (r *VaultAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.VaultAccount, error) {
	query := `SELECT id, workspace_id, name, hidden_on_ui, auto_fuel, created_at, updated_at
		FROM vault_accounts WHERE id = $1`

	v := &domain.VaultAccount{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.WorkspaceID, &v.Name, &v.HiddenOnUI, &v.AutoFuel,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vault account by id: %w", err)
	}
	return v, nil
}

// ListByWorkspace fetches every vault account owned by a workspace.
func (r *VaultAccountRepo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.VaultAccount, error) {
	query := `SELECT id, workspace_id, name, hidden_on_ui, auto_fuel, created_at, updated_at
		FROM vault_accounts WHERE workspace_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list vault accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.VaultAccount
	for rows.Next() {
		v := domain.VaultAccount{}
		err := rows.Scan(
			&v.ID, &v.WorkspaceID, &v.Name, &v.HiddenOnUI, &v.AutoFuel,
			&v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan vault account row: %w", err)
		}
		accounts = append(accounts, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vault account rows: %w", err)
	}
	return accounts, nil
}
