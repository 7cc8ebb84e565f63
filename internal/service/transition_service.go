package service

import (
	"context"
	"fmt"
	"time"

	"custodial-vault-platform/internal/core/domain"
	"custodial-vault-platform/internal/core/ports"
	"custodial-vault-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TransitionServiceImpl implements ports.TransitionService. It composes the
// state machine, the ledger service, and notifications into one atomic
// operation per transition request: balance side effects and the state
// update commit in the same database transaction, notifications go out
// best-effort after commit.
type TransitionServiceImpl struct {
	txRepo     ports.TransactionRepository
	ledger     ports.LedgerService
	bus        ports.NotificationBus
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewTransitionService creates a new TransitionServiceImpl.
func NewTransitionService(
	txRepo ports.TransactionRepository,
	ledger ports.LedgerService,
	bus ports.NotificationBus,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *TransitionServiceImpl {
	return &TransitionServiceImpl{
		txRepo:     txRepo,
		ledger:     ledger,
		bus:        bus,
		transactor: transactor,
		log:        log,
	}
}

// Transition applies one requested state transition.
func (s *TransitionServiceImpl) Transition(ctx context.Context, req ports.TransitionRequest) (*ports.TransitionResult, error) {
	if req.WorkspaceID == uuid.Nil {
		return nil, apperror.ErrWorkspaceRequired()
	}
	if !domain.IsValidState(req.TargetState) {
		return nil, apperror.Validation(fmt.Sprintf("unknown state %q", req.TargetState))
	}

	rawID, err := domain.UnwrapTransactionID(req.TransactionID, req.WorkspaceID, false)
	if err != nil {
		return nil, apperror.ErrNotFound("transaction")
	}

	t, err := s.txRepo.GetByID(ctx, rawID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load transaction: %w", err))
	}
	if t == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	// Counterparty workspaces can see a transfer, but only the originating
	// workspace drives its state. Foreign transactions look like missing ones.
	if t.WorkspaceID != req.WorkspaceID {
		return nil, apperror.ErrNotFound("transaction")
	}

	// Idempotent no-op: requesting the current state succeeds without
	// touching state or updatedAt.
	if t.State == req.TargetState {
		return &ports.TransitionResult{
			ID:    domain.ComposeTransactionID(req.WorkspaceID, t.ID),
			State: t.State,
		}, nil
	}

	if !domain.CanTransition(t.State, req.TargetState) {
		return nil, apperror.ErrInvalidStateTransition(string(t.State), string(req.TargetState))
	}

	prevState := t.State
	t.State = req.TargetState
	t.UpdatedAt = time.Now().UTC()
	if req.FailureReason != nil {
		t.FailureReason = req.FailureReason
	}

	if err := s.applyAtomically(ctx, t); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("tx_id", t.ID.String()).
		Str("from", string(prevState)).
		Str("to", string(t.State)).
		Msg("transaction transitioned")

	s.notify(ctx, t)

	return &ports.TransitionResult{
		ID:    domain.ComposeTransactionID(req.WorkspaceID, t.ID),
		State: t.State,
	}, nil
}

// applyAtomically commits the balance side effect of the new state and the
// state change itself in one database transaction.
func (s *TransitionServiceImpl) applyAtomically(ctx context.Context, t *domain.Transaction) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	switch t.State {
	case domain.StateCompleted:
		if err := s.ledger.CompleteInTx(ctx, dbTx, t); err != nil {
			return err
		}
	case domain.StateRejected, domain.StateCancelled, domain.StateTimeout:
		if err := s.ledger.RollbackInTx(ctx, dbTx, t); err != nil {
			return err
		}
	}

	if err := s.txRepo.UpdateInTx(ctx, dbTx, t); err != nil {
		return apperror.InternalError(fmt.Errorf("persist transaction: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// notify emits the per-transaction upsert and the lists-changed ping.
// Delivery failures never affect ledger state.
func (s *TransitionServiceImpl) notify(ctx context.Context, t *domain.Transaction) {
	if err := s.bus.PublishTransactionUpdated(ctx, t.WorkspaceID, t); err != nil {
		s.log.Warn().Err(err).Str("tx_id", t.ID.String()).Msg("transaction notification failed")
	}
	if err := s.bus.PublishListsChanged(ctx, t.WorkspaceID); err != nil {
		s.log.Warn().Err(err).Str("workspace_id", t.WorkspaceID.String()).Msg("lists-changed notification failed")
	}
}
