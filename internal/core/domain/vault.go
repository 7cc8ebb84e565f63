package domain

import (
	"time"

	"github.com/google/uuid"
)

// VaultAccount is a named container of per-asset wallets owned by one workspace.
type VaultAccount struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	HiddenOnUI  bool      `json:"hidden_on_ui"`
	AutoFuel    bool      `json:"auto_fuel"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
