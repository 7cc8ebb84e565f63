package domain

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// A composite transaction id is the externally visible, workspace-scoped
// encoding of (workspaceID, rawID). It is derived on the read path and never
// persisted; the same transaction yields a different id per viewing
// workspace.

// ComposeTransactionID encodes (workspaceID, rawID) into an opaque,
// reversible id string.
func ComposeTransactionID(workspaceID, rawID uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString(
		[]byte(workspaceID.String() + ":" + rawID.String()),
	)
}

// DecomposeTransactionID reverses ComposeTransactionID.
func DecomposeTransactionID(compositeID string) (workspaceID, rawID uuid.UUID, err error) {
	raw, err := base64.RawURLEncoding.DecodeString(compositeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("decode composite id: %w", err)
	}
	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return uuid.Nil, uuid.Nil, fmt.Errorf("malformed composite id")
	}
	workspaceID, err = uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("parse workspace id: %w", err)
	}
	rawID, err = uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("parse transaction id: %w", err)
	}
	return workspaceID, rawID, nil
}

// UnwrapTransactionID decodes a composite id and verifies its embedded
// workspace against the caller's. The mismatch check defends against
// cross-tenant id forgery; allowCrossWorkspace skips it for callers that
// resolve visibility through address ownership instead.
func UnwrapTransactionID(compositeID string, expectedWorkspaceID uuid.UUID, allowCrossWorkspace bool) (uuid.UUID, error) {
	wsID, rawID, err := DecomposeTransactionID(compositeID)
	if err != nil {
		return uuid.Nil, err
	}
	if !allowCrossWorkspace && wsID != expectedWorkspaceID {
		return uuid.Nil, fmt.Errorf("composite id belongs to another workspace")
	}
	return rawID, nil
}
