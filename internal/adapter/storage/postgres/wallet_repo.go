package postgres

import (
	"context"
	"errors"
	"fmt"

	"custodial-vault-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const walletColumns = `id, vault_account_id, asset_id, wallet_type, balance, pending, frozen, locked_amount, created_at, updated_at`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet into the database.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.VaultAccountID, w.AssetID, w.Type,
		w.Balance, w.Pending, w.Frozen, w.LockedAmount,
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// CreateInTx inserts a new wallet inside an already-open database transaction.
// Used by the ledger when it materializes a fee wallet mid-reservation.
func (r *WalletRepo) CreateInTx(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		w.ID, w.VaultAccountID, w.AssetID, w.Type,
		w.Balance, w.Pending, w.Frozen, w.LockedAmount,
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet in tx: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID (without locking).
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`

	return scanWallet(r.pool.QueryRow(ctx, query, id))
}

// GetByVaultAndAsset fetches the permanent wallet of a (vault, asset) pair
// without locking.
func (r *WalletRepo) GetByVaultAndAsset(ctx context.Context, vaultAccountID uuid.UUID, assetID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets
		WHERE vault_account_id = $1 AND asset_id = $2 AND wallet_type = 'Permanent'`

	return scanWallet(r.pool.QueryRow(ctx, query, vaultAccountID, assetID))
}

// ListByVault fetches every wallet inside a vault account.
func (r *WalletRepo) ListByVault(ctx context.Context, vaultAccountID uuid.UUID) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets
		WHERE vault_account_id = $1 ORDER BY asset_id, created_at`

	rows, err := r.pool.Query(ctx, query, vaultAccountID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		w := domain.Wallet{}
		err := rows.Scan(
			&w.ID, &w.VaultAccountID, &w.AssetID, &w.Type,
			&w.Balance, &w.Pending, &w.Frozen, &w.LockedAmount,
			&w.CreatedAt, &w.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet rows: %w", err)
	}
	return wallets, nil
}

// GetByAddressForUpdate resolves the wallet owning an address value inside a
// workspace and locks its row. Returns nil for addresses not owned by any
// wallet in that workspace. This MUST be called within a transaction.
func (r *WalletRepo) GetByAddressForUpdate(ctx context.Context, tx pgx.Tx, workspaceID uuid.UUID, addressValue string) (*domain.Wallet, error) {
	query := `SELECT w.id, w.vault_account_id, w.asset_id, w.wallet_type, w.balance, w.pending, w.frozen, w.locked_amount, w.created_at, w.updated_at
		FROM wallets w
		JOIN addresses a ON a.wallet_id = w.id
		JOIN vault_accounts v ON v.id = w.vault_account_id
		WHERE v.workspace_id = $1 AND a.address_value = $2
		FOR UPDATE OF w`

	w, err := scanWallet(tx.QueryRow(ctx, query, workspaceID, addressValue))
	if err != nil {
		return nil, fmt.Errorf("get wallet for update by address: %w", err)
	}
	return w, nil
}

// GetByVaultAndAssetForUpdate fetches the permanent wallet of a (vault, asset)
// pair with pessimistic locking. This MUST be called within a transaction.
func (r *WalletRepo) GetByVaultAndAssetForUpdate(ctx context.Context, tx pgx.Tx, vaultAccountID uuid.UUID, assetID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets
		WHERE vault_account_id = $1 AND asset_id = $2 AND wallet_type = 'Permanent'
		FOR UPDATE`

	w, err := scanWallet(tx.QueryRow(ctx, query, vaultAccountID, assetID))
	if err != nil {
		return nil, fmt.Errorf("get wallet for update by vault and asset: %w", err)
	}
	return w, nil
}

// UpdateBalances writes a wallet's balance and pending columns within a
// transaction. The caller must hold the row lock.
func (r *WalletRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance, pending decimal.Decimal) error {
	query := `UPDATE wallets SET balance = $1, pending = $2, updated_at = NOW() WHERE id = $3`

	tag, err := tx.Exec(ctx, query, balance, pending, walletID)
	if err != nil {
		return fmt.Errorf("update wallet balances: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

// scanWallet is a helper to scan a single row into a Wallet.
func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.VaultAccountID, &w.AssetID, &w.Type,
		&w.Balance, &w.Pending, &w.Frozen, &w.LockedAmount,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}
	return w, nil
}
