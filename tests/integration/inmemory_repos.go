package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"custodial-vault-platform/internal/core/domain"
	"custodial-vault-platform/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// newInMemoryStore wires the repos that reference each other for ownership
// joins the same way the SQL store joins tables.
func newInMemoryStore() (*inMemoryWorkspaceRepo, *inMemoryVaultRepo, *inMemoryWalletRepo, *inMemoryAddressRepo) {
	workspaces := newInMemoryWorkspaceRepo()
	vaults := newInMemoryVaultRepo()
	wallets := newInMemoryWalletRepo()
	addresses := newInMemoryAddressRepo(wallets, vaults)
	wallets.addresses = addresses
	wallets.vaults = vaults
	return workspaces, vaults, wallets, addresses
}

// --- In-Memory Workspace Repo ---

type inMemoryWorkspaceRepo struct {
	mu         sync.RWMutex
	workspaces map[uuid.UUID]*domain.Workspace
}

func newInMemoryWorkspaceRepo() *inMemoryWorkspaceRepo {
	return &inMemoryWorkspaceRepo{workspaces: make(map[uuid.UUID]*domain.Workspace)}
}

func (r *inMemoryWorkspaceRepo) Create(ctx context.Context, ws *domain.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ws
	r.workspaces[ws.ID] = &cp
	return nil
}

func (r *inMemoryWorkspaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ws, ok := r.workspaces[id]
	if !ok {
		return nil, nil
	}
	cp := *ws
	return &cp, nil
}

// --- In-Memory Vault Account Repo ---

type inMemoryVaultRepo struct {
	mu     sync.RWMutex
	vaults map[uuid.UUID]*domain.VaultAccount
}

func newInMemoryVaultRepo() *inMemoryVaultRepo {
	return &inMemoryVaultRepo{vaults: make(map[uuid.UUID]*domain.VaultAccount)}
}

func (r *inMemoryVaultRepo) Create(ctx context.Context, v *domain.VaultAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.vaults[v.ID] = &cp
	return nil
}

func (r *inMemoryVaultRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.VaultAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vaults[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *inMemoryVaultRepo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.VaultAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.VaultAccount
	for _, v := range r.vaults {
		if v.WorkspaceID == workspaceID {
			result = append(result, *v)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// --- In-Memory Address Repo ---

type inMemoryAddressRepo struct {
	mu        sync.RWMutex
	addresses map[string]*domain.Address
	wallets   *inMemoryWalletRepo
	vaults    *inMemoryVaultRepo
}

func newInMemoryAddressRepo(wallets *inMemoryWalletRepo, vaults *inMemoryVaultRepo) *inMemoryAddressRepo {
	return &inMemoryAddressRepo{
		addresses: make(map[string]*domain.Address),
		wallets:   wallets,
		vaults:    vaults,
	}
}

func (r *inMemoryAddressRepo) Create(ctx context.Context, a *domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.addresses[a.AddressValue]; exists {
		return ports.ErrAddressExists
	}
	cp := *a
	r.addresses[a.AddressValue] = &cp
	return nil
}

func (r *inMemoryAddressRepo) GetByValue(ctx context.Context, addressValue string) (*domain.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.addresses[addressValue]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryAddressRepo) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Address
	for _, a := range r.addresses {
		if a.WalletID == walletID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *inMemoryAddressRepo) ListOwned(ctx context.Context, workspaceIDs []uuid.UUID, addressValues []string) ([]ports.OwnedAddress, error) {
	wsSet := make(map[uuid.UUID]bool, len(workspaceIDs))
	for _, id := range workspaceIDs {
		wsSet[id] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []ports.OwnedAddress
	for _, value := range addressValues {
		a, ok := r.addresses[value]
		if !ok {
			continue
		}
		w, err := r.wallets.GetByID(ctx, a.WalletID)
		if err != nil || w == nil {
			continue
		}
		v, err := r.vaults.GetByID(ctx, w.VaultAccountID)
		if err != nil || v == nil || !wsSet[v.WorkspaceID] {
			continue
		}
		result = append(result, ports.OwnedAddress{
			WorkspaceID:      v.WorkspaceID,
			VaultAccountID:   v.ID,
			VaultAccountName: v.Name,
			WalletID:         w.ID,
			AssetID:          w.AssetID,
			AddressValue:     a.AddressValue,
		})
	}
	return result, nil
}

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu        sync.RWMutex
	wallets   map[uuid.UUID]*domain.Wallet
	addresses *inMemoryAddressRepo
	vaults    *inMemoryVaultRepo
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) CreateInTx(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	return r.Create(ctx, w)
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) GetByVaultAndAsset(ctx context.Context, vaultAccountID uuid.UUID, assetID string) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.VaultAccountID == vaultAccountID && w.AssetID == assetID && w.Type == domain.WalletTypePermanent {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) ListByVault(ctx context.Context, vaultAccountID uuid.UUID) ([]domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Wallet
	for _, w := range r.wallets {
		if w.VaultAccountID == vaultAccountID {
			result = append(result, *w)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *inMemoryWalletRepo) GetByAddressForUpdate(ctx context.Context, tx pgx.Tx, workspaceID uuid.UUID, addressValue string) (*domain.Wallet, error) {
	a, err := r.addresses.GetByValue(ctx, addressValue)
	if err != nil || a == nil {
		return nil, err
	}
	w, err := r.GetByID(ctx, a.WalletID)
	if err != nil || w == nil {
		return nil, err
	}
	v, err := r.vaults.GetByID(ctx, w.VaultAccountID)
	if err != nil || v == nil || v.WorkspaceID != workspaceID {
		return nil, err
	}
	return w, nil
}

func (r *inMemoryWalletRepo) GetByVaultAndAssetForUpdate(ctx context.Context, tx pgx.Tx, vaultAccountID uuid.UUID, assetID string) (*domain.Wallet, error) {
	return r.GetByVaultAndAsset(ctx, vaultAccountID, assetID)
}

func (r *inMemoryWalletRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance, pending decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	w.Balance = balance
	w.Pending = pending
	return nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]*domain.Transaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{transactions: make(map[uuid.UUID]*domain.Transaction)}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.transactions {
		if t.Hash != nil && existing.Hash != nil && *existing.Hash == *t.Hash {
			return ports.ErrHashExists
		}
		if t.ExternalTxID != nil && existing.ExternalTxID != nil && *existing.ExternalTxID == *t.ExternalTxID {
			return ports.ErrExternalTxIDExists
		}
	}
	cp := *t
	r.transactions[t.ID] = &cp
	return nil
}

// CreateInTx delegates to Create; the in-memory transactor already
// serializes the surrounding operation.
func (r *inMemoryTransactionRepo) CreateInTx(ctx context.Context, _ pgx.Tx, t *domain.Transaction) error {
	return r.Create(ctx, t)
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTransactionRepo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Transaction
	for _, t := range r.transactions {
		if t.WorkspaceID == workspaceID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *inMemoryTransactionRepo) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Transaction, 0, len(r.transactions))
	for _, t := range r.transactions {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *inMemoryTransactionRepo) ListNonTerminal(ctx context.Context) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Transaction
	for _, t := range r.transactions {
		if !t.IsTerminal() {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *inMemoryTransactionRepo) Update(ctx context.Context, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[t.ID]; !ok {
		return fmt.Errorf("transaction not found: %s", t.ID)
	}
	cp := *t
	r.transactions[t.ID] = &cp
	return nil
}

func (r *inMemoryTransactionRepo) UpdateInTx(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	return r.Update(ctx, t)
}

func (r *inMemoryTransactionRepo) UpdateBatch(ctx context.Context, txs []domain.Transaction) error {
	for i := range txs {
		if err := r.Update(ctx, &txs[i]); err != nil {
			return err
		}
	}
	return nil
}

// --- In-Memory Settings Repo ---

type inMemorySettingsRepo struct {
	mu      sync.RWMutex
	enabled bool
}

func newInMemorySettingsRepo() *inMemorySettingsRepo {
	return &inMemorySettingsRepo{enabled: true}
}

func (r *inMemorySettingsRepo) GetAutoTransitionEnabled(ctx context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled, nil
}

func (r *inMemorySettingsRepo) SetAutoTransitionEnabled(ctx context.Context, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
	return nil
}

// --- In-Memory Transactor ---

// inMemoryTransactor serializes ledger transactions with a single mutex,
// standing in for the row locks the real store takes.
type inMemoryTransactor struct {
	mu sync.Mutex
}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	tx := &lockedTx{}
	tx.unlock = func() { t.mu.Unlock() }
	return tx, nil
}

// lockedTx releases the transactor lock on the first Commit or Rollback.
// The deferred Rollback after a Commit is then a no-op.
type lockedTx struct {
	noopTx
	once   sync.Once
	unlock func()
}

func (t *lockedTx) Commit(ctx context.Context) error {
	t.once.Do(t.unlock)
	return nil
}

func (t *lockedTx) Rollback(ctx context.Context) error {
	t.once.Do(t.unlock)
	return nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
