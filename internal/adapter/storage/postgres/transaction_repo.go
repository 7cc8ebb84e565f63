package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"custodial-vault-platform/internal/core/domain"
	"custodial-vault-platform/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const transactionColumns = `id, workspace_id, vault_account_id, asset_id, source_address, destination_address,
	amount, requested_amount, network_fee, fee_currency, state, confirmations,
	hash, external_tx_id, failure_reason, replaced_by_tx_id, created_at, updated_at`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new transaction. Duplicate hash and external id values map
// to the ports sentinel errors.
func (r *TransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.WorkspaceID, t.VaultAccountID, t.AssetID,
		t.SourceAddress, t.DestinationAddress,
		t.Amount, t.RequestedAmount, t.NetworkFee, t.FeeCurrency,
		t.State, t.Confirmations,
		t.Hash, t.ExternalTxID, t.FailureReason, t.ReplacedByTxID,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return mapTransactionInsertError(err)
	}
	return nil
}

// CreateInTx inserts a new transaction inside an already-open database
// transaction. Used by the deposit path so the record and its balance credit
// commit together.
func (r *TransactionRepo) CreateInTx(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.WorkspaceID, t.VaultAccountID, t.AssetID,
		t.SourceAddress, t.DestinationAddress,
		t.Amount, t.RequestedAmount, t.NetworkFee, t.FeeCurrency,
		t.State, t.Confirmations,
		t.Hash, t.ExternalTxID, t.FailureReason, t.ReplacedByTxID,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return mapTransactionInsertError(err)
	}
	return nil
}

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// ListByWorkspace fetches every transaction originated by a workspace, newest
// first.
func (r *TransactionRepo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE workspace_id = $1 ORDER BY created_at DESC`

	return r.queryTransactions(ctx, query, workspaceID)
}

// ListAll fetches every transaction, newest first.
func (r *TransactionRepo) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC`

	return r.queryTransactions(ctx, query)
}

// ListNonTerminal fetches every transaction outside a terminal state, oldest
// first, so the auto-transition driver advances long-waiting work before new.
func (r *TransactionRepo) ListNonTerminal(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE state NOT IN ('COMPLETED', 'FAILED', 'REJECTED', 'CANCELLED', 'TIMEOUT')
		ORDER BY created_at`

	return r.queryTransactions(ctx, query)
}

// Update persists a mutated transaction outside a ledger transaction.
func (r *TransactionRepo) Update(ctx context.Context, t *domain.Transaction) error {
	tag, err := r.pool.Exec(ctx, transactionUpdateQuery, transactionUpdateArgs(t)...)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %s", t.ID)
	}
	return nil
}

// UpdateInTx persists a mutated transaction inside an already-open database
// transaction, so state and balance settlement commit together.
func (r *TransactionRepo) UpdateInTx(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	tag, err := tx.Exec(ctx, transactionUpdateQuery, transactionUpdateArgs(t)...)
	if err != nil {
		return fmt.Errorf("update transaction in tx: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %s", t.ID)
	}
	return nil
}

// UpdateBatch persists a set of mutated transactions in one round trip.
func (r *TransactionRepo) UpdateBatch(ctx context.Context, txs []domain.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range txs {
		batch.Queue(transactionUpdateQuery, transactionUpdateArgs(&txs[i])...)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close() //nolint:errcheck

	for i := range txs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("update transaction %s in batch: %w", txs[i].ID, err)
		}
	}
	return results.Close()
}

const transactionUpdateQuery = `UPDATE transactions SET
	state = $1, confirmations = $2, hash = $3, external_tx_id = $4,
	failure_reason = $5, replaced_by_tx_id = $6, updated_at = $7
	WHERE id = $8`

func transactionUpdateArgs(t *domain.Transaction) []any {
	return []any{
		t.State, t.Confirmations, t.Hash, t.ExternalTxID,
		t.FailureReason, t.ReplacedByTxID, t.UpdatedAt, t.ID,
	}
}

func (r *TransactionRepo) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{}
		err := rows.Scan(
			&t.ID, &t.WorkspaceID, &t.VaultAccountID, &t.AssetID,
			&t.SourceAddress, &t.DestinationAddress,
			&t.Amount, &t.RequestedAmount, &t.NetworkFee, &t.FeeCurrency,
			&t.State, &t.Confirmations,
			&t.Hash, &t.ExternalTxID, &t.FailureReason, &t.ReplacedByTxID,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txs, nil
}

// scanTransaction is a helper to scan a single row into a Transaction.
func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.WorkspaceID, &t.VaultAccountID, &t.AssetID,
		&t.SourceAddress, &t.DestinationAddress,
		&t.Amount, &t.RequestedAmount, &t.NetworkFee, &t.FeeCurrency,
		&t.State, &t.Confirmations,
		&t.Hash, &t.ExternalTxID, &t.FailureReason, &t.ReplacedByTxID,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}

// mapTransactionInsertError converts unique violations on the hash and
// external id indexes to their sentinel errors.
func mapTransactionInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "hash"):
			return ports.ErrHashExists
		case strings.Contains(pgErr.ConstraintName, "external"):
			return ports.ErrExternalTxIDExists
		}
	}
	return fmt.Errorf("insert transaction: %w", err)
}
