package domain

import (
	"time"

	"github.com/google/uuid"
)

// Address belongs to exactly one wallet. AddressValue is globally unique and
// is the join key for ownership resolution. Immutable once created except for
// the description.
type Address struct {
	ID           uuid.UUID `json:"id"`
	WalletID     uuid.UUID `json:"wallet_id"`
	AddressValue string    `json:"address"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AssetAddress keys ownership lookups: the same address string can in
// principle appear under different assets, so lookups carry both.
type AssetAddress struct {
	AssetID string
	Address string
}
