package handler

import (
	"custodial-vault-platform/internal/adapter/http/middleware"
	"custodial-vault-platform/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	WorkspaceSvc   ports.WorkspaceService
	VaultSvc       ports.VaultService
	TransferSvc    ports.TransferService
	TransitionSvc  ports.TransitionService
	OwnershipSvc   ports.OwnershipService
	TxRepo         ports.TransactionRepository
	SettingsRepo   ports.SettingsRepository
	TokenSvc       ports.TokenService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
	MaxBodyBytes   int64
}

// NewRouter wires middleware, handlers, and routes into a gin engine.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger))

	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20 // 1 MiB
	}
	router.Use(middleware.MaxBodySize(maxBody))

	workspaceHandler := NewWorkspaceHandler(deps.WorkspaceSvc, deps.Logger)
	vaultHandler := NewVaultHandler(deps.VaultSvc, deps.Logger)
	txHandler := NewTransactionHandler(deps.TransferSvc, deps.TransitionSvc, deps.OwnershipSvc, deps.TxRepo, deps.Logger)
	adminHandler := NewAdminHandler(deps.SettingsRepo, deps.Logger)

	router.GET("/health", HealthCheck(deps.HealthCheckers...))

	v1 := router.Group("/api/v1")

	// Public: registration and token exchange.
	v1.POST("/workspaces", workspaceHandler.Register)
	v1.POST("/auth/token", workspaceHandler.IssueToken)

	// Everything else is scoped to the authenticated workspace.
	authed := v1.Group("")
	authed.Use(middleware.JWTAuth(deps.TokenSvc, deps.Logger))
	{
		authed.POST("/vault/accounts", vaultHandler.CreateVaultAccount)
		authed.GET("/vault/accounts", vaultHandler.ListVaultAccounts)
		authed.POST("/vault/accounts/:id/wallets", vaultHandler.CreateWallet)
		authed.POST("/wallets/:walletId/addresses", vaultHandler.CreateAddress)
		authed.GET("/assets", vaultHandler.ListAssets)

		authed.POST("/transactions", txHandler.CreateTransfer)
		authed.POST("/transactions/incoming", txHandler.RegisterIncoming)
		authed.GET("/transactions", txHandler.List)
		authed.POST("/transactions/:id/state", txHandler.Transition)

		authed.GET("/admin/auto-transition", adminHandler.GetAutoTransition)
		authed.PUT("/admin/auto-transition", adminHandler.SetAutoTransition)
	}

	return router
}
