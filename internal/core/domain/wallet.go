package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletType distinguishes the single permanent wallet per (vault, asset)
// pair from the additional wallets UTXO-capable assets are allowed.
type WalletType string

const (
	WalletTypePermanent WalletType = "Permanent"
	WalletTypeUTXO      WalletType = "UTXO"
)

// Wallet is the balance record for one (vault account, asset) pair.
// Balance fields are fixed-scale decimals and must stay non-negative.
// Only the ledger service mutates them.
type Wallet struct {
	ID             uuid.UUID       `json:"id"`
	VaultAccountID uuid.UUID       `json:"vault_account_id"`
	AssetID        string          `json:"asset_id"`
	Type           WalletType      `json:"type"`
	Balance        decimal.Decimal `json:"balance"`
	Pending        decimal.Decimal `json:"pending"`
	Frozen         decimal.Decimal `json:"frozen"`
	LockedAmount   decimal.Decimal `json:"locked_amount"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Available returns the amount free to reserve:
// balance - pending - frozen - lockedAmount.
func (w *Wallet) Available() decimal.Decimal {
	return w.Balance.Sub(w.Pending).Sub(w.Frozen).Sub(w.LockedAmount)
}
