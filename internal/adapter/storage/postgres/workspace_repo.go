package postgres

import (
	"context"
	"errors"
	"fmt"

	"custodial-vault-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WorkspaceRepo implements ports.WorkspaceRepository.
type WorkspaceRepo struct {
	pool Pool
}

// NewWorkspaceRepo creates a new WorkspaceRepo.
func NewWorkspaceRepo(pool Pool) *WorkspaceRepo {
	return &WorkspaceRepo{pool: pool}
}

// Create inserts a new workspace into the database.
func (r *WorkspaceRepo) Create(ctx context.Context, ws *domain.Workspace) error {
	query := `INSERT INTO workspaces (id, name, api_key_hash, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query, ws.ID, ws.Name, ws.APIKeyHash, ws.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert workspace: %w", err)
	}
	return nil
}

// GetByID fetches a workspace by its UUID.
func (r *WorkspaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	query := `SELECT id, name, api_key_hash, created_at FROM workspaces WHERE id = $1`

	ws := &domain.Workspace{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&ws.ID, &ws.Name, &ws.APIKeyHash, &ws.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workspace by id: %w", err)
	}
	return ws, nil
}
