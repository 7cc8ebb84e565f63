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

// TransactionHandler handles transfer creation, deposit registration,
// listing, and manual state transitions.
type TransactionHandler struct {
	transferSvc   ports.TransferService
	transitionSvc ports.TransitionService
	ownershipSvc  ports.OwnershipService
	txRepo        ports.TransactionRepository
	log           zerolog.Logger
}

// NewTransactionHandler creates a transaction handler.
func NewTransactionHandler(
	transferSvc ports.TransferService,
	transitionSvc ports.TransitionService,
	ownershipSvc ports.OwnershipService,
	txRepo ports.TransactionRepository,
	log zerolog.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transferSvc:   transferSvc,
		transitionSvc: transitionSvc,
		ownershipSvc:  ownershipSvc,
		txRepo:        txRepo,
		log:           log,
	}
}

// CreateTransfer submits an outgoing transfer. Funds are reserved before the
// transaction is returned.
func (h *TransactionHandler) CreateTransfer(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, apperror.ErrWorkspaceRequired())
		return
	}

	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	vaultAccountID, err := uuid.Parse(req.VaultAccountID)
	if err != nil {
		response.Error(c, apperror.Validation("vault_account_id must be a valid UUID"))
		return
	}

	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		response.Error(c, apperror.Validation("amount must be a valid decimal number"))
		return
	}

	view, err := h.transferSvc.CreateTransfer(c.Request.Context(), ports.CreateTransferRequest{
		WorkspaceID:        workspaceID,
		VaultAccountID:     vaultAccountID,
		AssetID:            req.AssetID,
		DestinationAddress: req.DestinationAddress,
		Amount:             amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, view)
}

// RegisterIncoming records an external deposit that already settled on chain.
func (h *TransactionHandler) RegisterIncoming(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, apperror.ErrWorkspaceRequired())
		return
	}

	var req dto.RegisterIncomingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		response.Error(c, apperror.Validation("amount must be a valid decimal number"))
		return
	}

	view, err := h.transferSvc.RegisterIncoming(c.Request.Context(), ports.RegisterIncomingRequest{
		WorkspaceID:        workspaceID,
		AssetID:            req.AssetID,
		SourceAddress:      req.SourceAddress,
		DestinationAddress: req.DestinationAddress,
		Amount:             amount,
		Hash:               req.Hash,
		ExternalTxID:       req.ExternalTxID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, view)
}

// List returns every transaction visible to the caller, rendered from its
// perspective. The candidate set is global; the ownership service decides
// visibility, so receivers see transfers originated in other workspaces.
func (h *TransactionHandler) List(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, apperror.ErrWorkspaceRequired())
		return
	}

	txs, err := h.txRepo.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	views, err := h.ownershipSvc.BuildPerspectives(c.Request.Context(), txs, workspaceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, views)
}

// Transition applies a manual state transition to a transaction identified
// by its workspace-scoped composite id.
func (h *TransactionHandler) Transition(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, apperror.ErrWorkspaceRequired())
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	target := domain.TransactionState(req.State)
	if !domain.IsValidState(target) {
		response.Error(c, apperror.Validation("unknown transaction state: "+req.State))
		return
	}

	result, err := h.transitionSvc.Transition(c.Request.Context(), ports.TransitionRequest{
		TransactionID: c.Param("id"),
		TargetState:   target,
		WorkspaceID:   workspaceID,
		FailureReason: req.FailureReason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TransitionResponse{ID: result.ID, State: string(result.State)})
}
