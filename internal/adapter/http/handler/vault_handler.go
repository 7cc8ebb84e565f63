package handler

import (
	"custodial-vault-platform/internal/adapter/http/dto"
	"custodial-vault-platform/internal/adapter/http/middleware"
	"custodial-vault-platform/internal/core/domain"
	"custodial-vault-platform/internal/core/ports"
	"custodial-vault-platform/pkg/apperror"
	"custodial-vault-platform/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// VaultHandler handles vault account, wallet, and address endpoints.
type VaultHandler struct {
	vaultSvc ports.VaultService
	log      zerolog.Logger
}

// NewVaultHandler creates a vault handler.
func NewVaultHandler(vaultSvc ports.VaultService, log zerolog.Logger) *VaultHandler {
	return &VaultHandler{vaultSvc: vaultSvc, log: log}
}

// CreateVaultAccount creates a vault account in the caller's workspace.
func (h *VaultHandler) CreateVaultAccount(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, apperror.ErrWorkspaceRequired())
		return
	}

	var req dto.CreateVaultAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	account, err := h.vaultSvc.CreateVaultAccount(c.Request.Context(), ports.CreateVaultAccountRequest{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		HiddenOnUI:  req.HiddenOnUI,
		AutoFuel:    req.AutoFuel,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, account)
}

// ListVaultAccounts lists the caller's vault accounts with their wallets.
func (h *VaultHandler) ListVaultAccounts(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, apperror.ErrWorkspaceRequired())
		return
	}

	accounts, err := h.vaultSvc.ListVaultAccounts(c.Request.Context(), workspaceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, accounts)
}

// CreateWallet creates an asset wallet inside a vault account.
func (h *VaultHandler) CreateWallet(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, apperror.ErrWorkspaceRequired())
		return
	}

	vaultAccountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("vault account id must be a valid UUID"))
		return
	}

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	walletType := domain.WalletType(req.Type)
	if req.Type == "" {
		walletType = domain.WalletTypePermanent
	}

	wallet, err := h.vaultSvc.CreateWallet(c.Request.Context(), ports.CreateWalletRequest{
		WorkspaceID:    workspaceID,
		VaultAccountID: vaultAccountID,
		AssetID:        req.AssetID,
		Type:           walletType,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, wallet)
}

// CreateAddress mints a deposit address for a wallet.
func (h *VaultHandler) CreateAddress(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, apperror.ErrWorkspaceRequired())
		return
	}

	walletID, err := uuid.Parse(c.Param("walletId"))
	if err != nil {
		response.Error(c, apperror.Validation("wallet id must be a valid UUID"))
		return
	}

	// Body is optional; an address needs no input beyond the wallet.
	var req dto.CreateAddressRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
	}

	address, err := h.vaultSvc.CreateDepositAddress(c.Request.Context(), workspaceID, walletID, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToAddressResponse(address))
}

// ListAssets lists the supported asset registry. Static data, but served
// authenticated so clients discover fee currencies the same way as balances.
func (h *VaultHandler) ListAssets(c *gin.Context) {
	assets := domain.SupportedAssets()
	out := make([]dto.AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, dto.ToAssetResponse(a))
	}
	response.OK(c, out)
}
