package postgres

import (
	"context"
	"errors"
	"fmt"

	"custodial-vault-platform/internal/core/domain"
	"custodial-vault-platform/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// AddressRepo implements ports.AddressRepository.
type AddressRepo struct {
	pool Pool
}

// NewAddressRepo creates a new AddressRepo.
func NewAddressRepo(pool Pool) *AddressRepo {
	return &AddressRepo{pool: pool}
}

// Create inserts a new deposit address. A duplicate address value maps to
// ports.ErrAddressExists.
func (r *AddressRepo) Create(ctx context.Context, a *domain.Address) error {
	query := `INSERT INTO addresses (id, wallet_id, address_value, description, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.WalletID, a.AddressValue, a.Description, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ports.ErrAddressExists
		}
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

// GetByValue fetches an address by its globally unique value.
func (r *AddressRepo) GetByValue(ctx context.Context, addressValue string) (*domain.Address, error) {
	query := `SELECT id, wallet_id, address_value, description, created_at
		FROM addresses WHERE address_value = $1`

	a := &domain.Address{}
	err := r.pool.QueryRow(ctx, query, addressValue).Scan(
		&a.ID, &a.WalletID, &a.AddressValue, &a.Description, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get address by value: %w", err)
	}
	return a, nil
}

// ListByWallet fetches every address attached to a wallet.
func (r *AddressRepo) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Address, error) {
	query := `SELECT id, wallet_id, address_value, description, created_at
		FROM addresses WHERE wallet_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var addrs []domain.Address
	for rows.Next() {
		a := domain.Address{}
		err := rows.Scan(&a.ID, &a.WalletID, &a.AddressValue, &a.Description, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addrs = append(addrs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address rows: %w", err)
	}
	return addrs, nil
}

// ListOwned resolves which of the given address values are owned by wallets
// inside the given workspaces. The join is scoped to exactly those
// workspaces, never global.
func (r *AddressRepo) ListOwned(ctx context.Context, workspaceIDs []uuid.UUID, addressValues []string) ([]ports.OwnedAddress, error) {
	if len(workspaceIDs) == 0 || len(addressValues) == 0 {
		return nil, nil
	}

	query := `SELECT v.workspace_id, v.id, v.name, w.id, w.asset_id, a.address_value
		FROM addresses a
		JOIN wallets w ON w.id = a.wallet_id
		JOIN vault_accounts v ON v.id = w.vault_account_id
		WHERE v.workspace_id = ANY($1) AND a.address_value = ANY($2)`

	rows, err := r.pool.Query(ctx, query, workspaceIDs, addressValues)
	if err != nil {
		return nil, fmt.Errorf("list owned addresses: %w", err)
	}
	defer rows.Close()

	var owned []ports.OwnedAddress
	for rows.Next() {
		o := ports.OwnedAddress{}
		err := rows.Scan(
			&o.WorkspaceID, &o.VaultAccountID, &o.VaultAccountName,
			&o.WalletID, &o.AssetID, &o.AddressValue,
		)
		if err != nil {
			return nil, fmt.Errorf("scan owned address row: %w", err)
		}
		owned = append(owned, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owned address rows: %w", err)
	}
	return owned, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
