package dto

import (
	"time"

	"custodial-vault-platform/internal/core/domain"
	"custodial-vault-platform/internal/core/ports"

	"github.com/shopspring/decimal"
)

// RegisterWorkspaceRequest is the request body for workspace registration.
type RegisterWorkspaceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// RegisterWorkspaceResponse returns the workspace and its one-time API key.
type RegisterWorkspaceResponse struct {
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
	APIKey      string `json:"api_key"`
	Token       string `json:"token"`
	Expiry      int64  `json:"expiry"` // Unix timestamp
}

// TokenRequest is the request body for exchanging an API key for a JWT.
type TokenRequest struct {
	WorkspaceID string `json:"workspace_id" binding:"required,uuid"`
	APIKey      string `json:"api_key" binding:"required"`
}

// TokenResponse is the response body for a successful token exchange.
type TokenResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// CreateVaultAccountRequest is the request body for vault account creation.
type CreateVaultAccountRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	HiddenOnUI bool   `json:"hidden_on_ui"`
	AutoFuel   bool   `json:"auto_fuel"`
}

// CreateWalletRequest is the request body for wallet creation.
type CreateWalletRequest struct {
	AssetID string `json:"asset_id" binding:"required"`
	Type    string `json:"type" binding:"omitempty,oneof=Permanent UTXO"`
}

// CreateAddressRequest is the request body for deposit address creation.
type CreateAddressRequest struct {
	Description *string `json:"description,omitempty" binding:"omitempty,max=200"`
}

// CreateTransferRequest is the request body for an outgoing transfer. Amount
// is the gross requested amount as a decimal string.
type CreateTransferRequest struct {
	VaultAccountID     string `json:"vault_account_id" binding:"required,uuid"`
	AssetID            string `json:"asset_id" binding:"required"`
	DestinationAddress string `json:"destination_address" binding:"required"`
	Amount             string `json:"amount" binding:"required"`
}

// RegisterIncomingRequest is the request body for an external deposit.
type RegisterIncomingRequest struct {
	AssetID            string  `json:"asset_id" binding:"required"`
	SourceAddress      string  `json:"source_address" binding:"required"`
	DestinationAddress string  `json:"destination_address" binding:"required"`
	Amount             string  `json:"amount" binding:"required"`
	Hash               *string `json:"hash,omitempty"`
	ExternalTxID       *string `json:"external_tx_id,omitempty"`
}

// TransitionRequest is the request body for a manual state transition.
type TransitionRequest struct {
	State         string  `json:"state" binding:"required"`
	FailureReason *string `json:"failure_reason,omitempty" binding:"omitempty,max=500"`
}

// TransitionResponse reports the post-transition state.
type TransitionResponse struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

// AutoTransitionRequest is the request body for the autopilot toggle.
type AutoTransitionRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// AutoTransitionResponse reports the autopilot flag.
type AutoTransitionResponse struct {
	Enabled bool `json:"enabled"`
}

// AssetResponse describes one supported asset.
type AssetResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Decimals     int32  `json:"decimals"`
	Blockchain   string `json:"blockchain"`
	FeeAssetID   string `json:"fee_asset_id"`
	BaseFee      string `json:"base_fee"`
	SupportsUTXO bool   `json:"supports_utxo"`
}

// AddressResponse describes one deposit address.
type AddressResponse struct {
	ID          string    `json:"id"`
	WalletID    string    `json:"wallet_id"`
	Address     string    `json:"address"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToAssetResponse maps a domain asset to its response shape.
func ToAssetResponse(a domain.Asset) AssetResponse {
	return AssetResponse{
		ID:           a.ID,
		Name:         a.Name,
		Decimals:     a.Decimals,
		Blockchain:   string(a.Blockchain),
		FeeAssetID:   a.FeeAssetID,
		BaseFee:      a.BaseFee.String(),
		SupportsUTXO: a.SupportsUTXO,
	}
}

// ToAddressResponse maps a domain address to its response shape.
func ToAddressResponse(a *domain.Address) AddressResponse {
	return AddressResponse{
		ID:          a.ID.String(),
		WalletID:    a.WalletID.String(),
		Address:     a.AddressValue,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
}

// ParseAmount parses a decimal amount string, rejecting non-numeric input.
func ParseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(raw)
}

// TransactionViewResponse aliases the service-level view: it is already
// shaped for one viewing workspace.
type TransactionViewResponse = ports.TransactionView
