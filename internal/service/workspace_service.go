package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"custodial-vault-platform/internal/core/domain"
	"custodial-vault-platform/internal/core/ports"
	"custodial-vault-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WorkspaceServiceImpl implements ports.WorkspaceService.
type WorkspaceServiceImpl struct {
	workspaceRepo ports.WorkspaceRepository
	hashSvc       ports.HashService
	tokenSvc      ports.TokenService
	log           zerolog.Logger
}

// NewWorkspaceService creates a new WorkspaceServiceImpl.
func NewWorkspaceService(
	workspaceRepo ports.WorkspaceRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *WorkspaceServiceImpl {
	return &WorkspaceServiceImpl{
		workspaceRepo: workspaceRepo,
		hashSvc:       hashSvc,
		tokenSvc:      tokenSvc,
		log:           log,
	}
}

// Register creates a workspace and mints its API key. The plaintext key is
// never stored and is returned exactly once.
func (s *WorkspaceServiceImpl) Register(ctx context.Context, name string) (*ports.WorkspaceCredentials, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("workspace name is required")
	}

	apiKey, err := NewAPIKey()
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	keyHash, err := s.hashSvc.Hash(apiKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash api key: %w", err))
	}

	ws := domain.Workspace{
		ID:         uuid.New(),
		Name:       name,
		APIKeyHash: keyHash,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.workspaceRepo.Create(ctx, &ws); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create workspace: %w", err))
	}

	token, expiresAt, err := s.tokenSvc.Generate(ws.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	s.log.Info().
		Str("workspace_id", ws.ID.String()).
		Str("name", ws.Name).
		Msg("workspace registered")

	return &ports.WorkspaceCredentials{
		Workspace: ws,
		APIKey:    apiKey,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// IssueToken exchanges a workspace id and API key for a scoped JWT.
func (s *WorkspaceServiceImpl) IssueToken(ctx context.Context, workspaceID uuid.UUID, apiKey string) (string, time.Time, error) {
	ws, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("load workspace: %w", err))
	}
	if ws == nil {
		return "", time.Time{}, apperror.ErrInvalidToken()
	}

	ok, err := s.hashSvc.Verify(apiKey, ws.APIKeyHash)
	if err != nil || !ok {
		return "", time.Time{}, apperror.ErrInvalidToken()
	}

	return s.tokenSvc.Generate(ws.ID)
}
