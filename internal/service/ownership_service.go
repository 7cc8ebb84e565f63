package service

import (
	"context"
	"fmt"

	"custodial-vault-platform/internal/core/domain"
	"custodial-vault-platform/internal/core/ports"
	"custodial-vault-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OwnershipServiceImpl implements ports.OwnershipService. Read-only: it
// never mutates wallets or transactions.
type OwnershipServiceImpl struct {
	addressRepo ports.AddressRepository
	log         zerolog.Logger
}

// NewOwnershipService creates a new OwnershipServiceImpl.
func NewOwnershipService(addressRepo ports.AddressRepository, log zerolog.Logger) *OwnershipServiceImpl {
	return &OwnershipServiceImpl{addressRepo: addressRepo, log: log}
}

// BuildOwnershipView maps (assetId, address) to the owning vault account,
// restricted to wallets inside the given workspaces.
func (s *OwnershipServiceImpl) BuildOwnershipView(ctx context.Context, txs []domain.Transaction, workspaceIDs []uuid.UUID) (map[domain.AssetAddress]ports.Ownership, error) {
	view := make(map[domain.AssetAddress]ports.Ownership)
	if len(txs) == 0 || len(workspaceIDs) == 0 {
		return view, nil
	}

	values := endpointAddresses(txs)
	owned, err := s.addressRepo.ListOwned(ctx, workspaceIDs, values)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("resolve ownership: %w", err))
	}

	for _, row := range owned {
		key := domain.AssetAddress{AssetID: row.AssetID, Address: row.AddressValue}
		view[key] = ports.Ownership{
			WorkspaceID:      row.WorkspaceID,
			VaultAccountID:   row.VaultAccountID,
			VaultAccountName: row.VaultAccountName,
		}
	}
	return view, nil
}

// BuildPerspectives renders txs for one viewing workspace. A transaction is
// visible iff the viewer originated it or owns one of its endpoints; the
// ownership lookup is scoped to the viewer's own addresses only.
func (s *OwnershipServiceImpl) BuildPerspectives(ctx context.Context, txs []domain.Transaction, viewerWorkspaceID uuid.UUID) ([]ports.TransactionView, error) {
	if viewerWorkspaceID == uuid.Nil {
		return nil, apperror.ErrWorkspaceRequired()
	}

	view, err := s.BuildOwnershipView(ctx, txs, []uuid.UUID{viewerWorkspaceID})
	if err != nil {
		return nil, err
	}

	out := make([]ports.TransactionView, 0, len(txs))
	for i := range txs {
		t := &txs[i]
		srcOwn, srcOwned := view[domain.AssetAddress{AssetID: t.AssetID, Address: t.SourceAddress}]
		destOwn, destOwned := view[domain.AssetAddress{AssetID: t.AssetID, Address: t.DestinationAddress}]

		if !srcOwned && !destOwned && t.WorkspaceID != viewerWorkspaceID {
			continue
		}

		out = append(out, ports.TransactionView{
			ID:            domain.ComposeTransactionID(viewerWorkspaceID, t.ID),
			AssetID:       t.AssetID,
			Amount:        t.Amount,
			NetworkFee:    t.NetworkFee,
			FeeCurrency:   t.FeeCurrency,
			State:         t.State,
			Confirmations: t.Confirmations,
			Hash:          t.Hash,
			Source:        endpointView(t.SourceAddress, srcOwn, srcOwned),
			Destination:   endpointView(t.DestinationAddress, destOwn, destOwned),
			CreatedAt:     t.CreatedAt,
			UpdatedAt:     t.UpdatedAt,
		})
	}
	return out, nil
}

func endpointView(address string, own ports.Ownership, owned bool) ports.EndpointView {
	if !owned {
		return ports.EndpointView{
			Type:    ports.EndpointOneTimeAddress,
			Address: address,
		}
	}
	vaultID := own.VaultAccountID
	return ports.EndpointView{
		Type:             ports.EndpointVaultAccount,
		Address:          address,
		VaultAccountID:   &vaultID,
		VaultAccountName: own.VaultAccountName,
	}
}

// endpointAddresses collects the distinct endpoint address values of a batch.
func endpointAddresses(txs []domain.Transaction) []string {
	seen := make(map[string]struct{}, len(txs)*2)
	out := make([]string, 0, len(txs)*2)
	for i := range txs {
		for _, v := range []string{txs[i].SourceAddress, txs[i].DestinationAddress} {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
