package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionState is the lifecycle state of a transaction.
type TransactionState string

const (
	StateSubmitted            TransactionState = "SUBMITTED"
	StatePendingSignature     TransactionState = "PENDING_SIGNATURE"
	StatePendingAuthorization TransactionState = "PENDING_AUTHORIZATION"
	StateQueued               TransactionState = "QUEUED"
	StateBroadcasting         TransactionState = "BROADCASTING"
	StateConfirming           TransactionState = "CONFIRMING"
	StateCompleted            TransactionState = "COMPLETED"
	StateFailed               TransactionState = "FAILED"
	StateRejected             TransactionState = "REJECTED"
	StateCancelled            TransactionState = "CANCELLED"
	StateTimeout              TransactionState = "TIMEOUT"
)

// Transaction is a deposit or withdrawal ledger record. Created once by a
// transfer request, mutated only through legal state transitions and balance
// settlement, never deleted.
type Transaction struct {
	ID                 uuid.UUID        `json:"id"`
	WorkspaceID        uuid.UUID        `json:"workspace_id"`
	VaultAccountID     uuid.UUID        `json:"vault_account_id"`
	AssetID            string           `json:"asset_id"`
	SourceAddress      string           `json:"source_address"`
	DestinationAddress string           `json:"destination_address"`
	Amount             decimal.Decimal  `json:"amount"`           // settled transfer amount
	RequestedAmount    decimal.Decimal  `json:"requested_amount"` // gross, before fee deduction
	NetworkFee         decimal.Decimal  `json:"network_fee"`
	FeeCurrency        string           `json:"fee_currency"`
	State              TransactionState `json:"state"`
	Confirmations      int              `json:"confirmations"`
	Hash               *string          `json:"hash,omitempty"`
	ExternalTxID       *string          `json:"external_tx_id,omitempty"`
	FailureReason      *string          `json:"failure_reason,omitempty"`
	ReplacedByTxID     *uuid.UUID       `json:"replaced_by_tx_id,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// IsTerminal returns true if the transaction is in a final state.
func (t *Transaction) IsTerminal() bool {
	return IsTerminalState(t.State)
}

// SameCurrencyFee reports whether the network fee is charged in the transfer
// asset itself. An empty fee currency means same-currency.
func (t *Transaction) SameCurrencyFee() bool {
	return t.FeeCurrency == "" || t.FeeCurrency == t.AssetID
}
