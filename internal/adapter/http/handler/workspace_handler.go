package handler

import (
	"context"
	"net/http"
	"time"

	"custodial-vault-platform/internal/adapter/http/dto"
	"custodial-vault-platform/internal/core/ports"
	"custodial-vault-platform/pkg/apperror"
	"custodial-vault-platform/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WorkspaceHandler handles workspace registration and token exchange.
type WorkspaceHandler struct {
	workspaceSvc ports.WorkspaceService
	log          zerolog.Logger
}

// NewWorkspaceHandler creates a workspace handler.
func NewWorkspaceHandler(workspaceSvc ports.WorkspaceService, log zerolog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceSvc: workspaceSvc, log: log}
}

// Register creates a workspace and returns its one-time API key together
// with a ready-to-use JWT.
func (h *WorkspaceHandler) Register(c *gin.Context) {
	var req dto.RegisterWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	creds, err := h.workspaceSvc.Register(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.RegisterWorkspaceResponse{
		WorkspaceID: creds.Workspace.ID.String(),
		Name:        creds.Workspace.Name,
		APIKey:      creds.APIKey,
		Token:       creds.Token,
		Expiry:      creds.ExpiresAt.Unix(),
	})
}

// IssueToken exchanges a workspace id and API key for a scoped JWT.
func (h *WorkspaceHandler) IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	workspaceID, err := uuid.Parse(req.WorkspaceID)
	if err != nil {
		response.Error(c, apperror.Validation("workspace_id must be a valid UUID"))
		return
	}

	token, expiresAt, err := h.workspaceSvc.IssueToken(c.Request.Context(), workspaceID, req.APIKey)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TokenResponse{Token: token, Expiry: expiresAt.Unix()})
}

// HealthCheck returns a handler that pings every registered dependency.
// Any failing dependency degrades the overall status to 503.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "healthy"
		deps := make(map[string]string, len(checkers))
		for _, checker := range checkers {
			if err := checker.Ping(ctx); err != nil {
				deps[checker.Name()] = "unhealthy: " + err.Error()
				status = "degraded"
			} else {
				deps[checker.Name()] = "healthy"
			}
		}

		code := http.StatusOK
		if status != "healthy" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":       status,
			"dependencies": deps,
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
		})
	}
}
