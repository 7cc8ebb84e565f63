package handler

import (
	"custodial-vault-platform/internal/adapter/http/dto"
	"custodial-vault-platform/internal/core/ports"
	"custodial-vault-platform/pkg/apperror"
	"custodial-vault-platform/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminHandler exposes the auto-transition toggle. The flag is global, not
// workspace-scoped: it drives the whole platform's engine.
type AdminHandler struct {
	settingsRepo ports.SettingsRepository
	log          zerolog.Logger
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(settingsRepo ports.SettingsRepository, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{settingsRepo: settingsRepo, log: log}
}

// GetAutoTransition reports whether the auto-transition engine is enabled.
func (h *AdminHandler) GetAutoTransition(c *gin.Context) {
	enabled, err := h.settingsRepo.GetAutoTransitionEnabled(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	response.OK(c, dto.AutoTransitionResponse{Enabled: enabled})
}

// SetAutoTransition flips the auto-transition engine on or off. Takes effect
// on the next driver tick.
func (h *AdminHandler) SetAutoTransition(c *gin.Context) {
	var req dto.AutoTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.settingsRepo.SetAutoTransitionEnabled(c.Request.Context(), *req.Enabled); err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	h.log.Info().Bool("enabled", *req.Enabled).Msg("auto-transition flag updated")
	response.OK(c, dto.AutoTransitionResponse{Enabled: *req.Enabled})
}
