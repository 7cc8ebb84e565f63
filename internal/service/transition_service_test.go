package service

import (
	"context"
	"testing"
	"time"

	"custodial-vault-platform/internal/core/domain"
	"custodial-vault-platform/internal/core/ports"
	"custodial-vault-platform/internal/core/ports/mocks"
	"custodial-vault-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type transitionTestDeps struct {
	svc        *TransitionServiceImpl
	txRepo     *mocks.MockTransactionRepository
	ledger     *mocks.MockLedgerService
	bus        *mocks.MockNotificationBus
	transactor *mocks.MockDBTransactor
	ctrl       *gomock.Controller
}

func setupTransitionService(t *testing.T) *transitionTestDeps {
	ctrl := gomock.NewController(t)
	d := &transitionTestDeps{
		txRepo:     mocks.NewMockTransactionRepository(ctrl),
		ledger:     mocks.NewMockLedgerService(ctrl),
		bus:        mocks.NewMockNotificationBus(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewTransitionService(d.txRepo, d.ledger, d.bus, d.transactor, zerolog.Nop())
	return d
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

func newSubmittedTx(wsID uuid.UUID) *domain.Transaction {
	now := time.Now().UTC()
	return &domain.Transaction{
		ID:                 uuid.New(),
		WorkspaceID:        wsID,
		VaultAccountID:     uuid.New(),
		AssetID:            "BTC",
		SourceAddress:      "bc1qsource",
		DestinationAddress: "bc1qdest",
		Amount:             decimal.RequireFromString("0.5"),
		RequestedAmount:    decimal.RequireFromString("0.5002"),
		NetworkFee:         decimal.RequireFromString("0.0002"),
		FeeCurrency:        "BTC",
		State:              domain.StateSubmitted,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestTransition_ForwardStep(t *testing.T) {
	d := setupTransitionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	txn := newSubmittedTx(wsID)
	dbTx := &mockTx{}

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.transactor.EXPECT().Begin(ctx).Return(dbTx, nil)
	d.txRepo.EXPECT().UpdateInTx(ctx, dbTx, gomock.Any()).Return(nil)
	d.bus.EXPECT().PublishTransactionUpdated(ctx, wsID, gomock.Any()).Return(nil)
	d.bus.EXPECT().PublishListsChanged(ctx, wsID).Return(nil)

	res, err := d.svc.Transition(ctx, ports.TransitionRequest{
		TransactionID: domain.ComposeTransactionID(wsID, txn.ID),
		TargetState:   domain.StatePendingAuthorization,
		WorkspaceID:   wsID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatePendingAuthorization, res.State)
	assert.Equal(t, domain.ComposeTransactionID(wsID, txn.ID), res.ID)
}

func TestTransition_SameStateIsIdempotentNoOp(t *testing.T) {
	d := setupTransitionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	txn := newSubmittedTx(wsID)
	before := txn.UpdatedAt

	// No Begin, no persist, no notification.
	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)

	res, err := d.svc.Transition(ctx, ports.TransitionRequest{
		TransactionID: domain.ComposeTransactionID(wsID, txn.ID),
		TargetState:   domain.StateSubmitted,
		WorkspaceID:   wsID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StateSubmitted, res.State)
	assert.Equal(t, before, txn.UpdatedAt, "updatedAt must not change on a no-op")
}

func TestTransition_IllegalEdge(t *testing.T) {
	d := setupTransitionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	txn := newSubmittedTx(wsID)

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)

	_, err := d.svc.Transition(ctx, ports.TransitionRequest{
		TransactionID: domain.ComposeTransactionID(wsID, txn.ID),
		TargetState:   domain.StateCompleted,
		WorkspaceID:   wsID,
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "LED_003", appErr.Code)
	assert.Equal(t, domain.StateSubmitted, txn.State, "no mutation on illegal transition")
}

func TestTransition_CompletedSettles(t *testing.T) {
	d := setupTransitionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	txn := newSubmittedTx(wsID)
	txn.State = domain.StateConfirming
	dbTx := &mockTx{}

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.transactor.EXPECT().Begin(ctx).Return(dbTx, nil)
	d.ledger.EXPECT().CompleteInTx(ctx, dbTx, txn).Return(nil)
	d.txRepo.EXPECT().UpdateInTx(ctx, dbTx, txn).Return(nil)
	d.bus.EXPECT().PublishTransactionUpdated(ctx, wsID, txn).Return(nil)
	d.bus.EXPECT().PublishListsChanged(ctx, wsID).Return(nil)

	res, err := d.svc.Transition(ctx, ports.TransitionRequest{
		TransactionID: domain.ComposeTransactionID(wsID, txn.ID),
		TargetState:   domain.StateCompleted,
		WorkspaceID:   wsID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, res.State)
}

func TestTransition_CancelledRollsBack(t *testing.T) {
	d := setupTransitionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	txn := newSubmittedTx(wsID)
	txn.State = domain.StateQueued
	dbTx := &mockTx{}

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.transactor.EXPECT().Begin(ctx).Return(dbTx, nil)
	d.ledger.EXPECT().RollbackInTx(ctx, dbTx, txn).Return(nil)
	d.txRepo.EXPECT().UpdateInTx(ctx, dbTx, txn).Return(nil)
	d.bus.EXPECT().PublishTransactionUpdated(ctx, wsID, txn).Return(nil)
	d.bus.EXPECT().PublishListsChanged(ctx, wsID).Return(nil)

	res, err := d.svc.Transition(ctx, ports.TransitionRequest{
		TransactionID: domain.ComposeTransactionID(wsID, txn.ID),
		TargetState:   domain.StateCancelled,
		WorkspaceID:   wsID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StateCancelled, res.State)
}

func TestTransition_ForeignCompositeIDRejected(t *testing.T) {
	d := setupTransitionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsA := uuid.New()
	wsB := uuid.New()
	txn := newSubmittedTx(wsA)

	// Composite id minted for workspace A, presented by workspace B.
	_, err := d.svc.Transition(ctx, ports.TransitionRequest{
		TransactionID: domain.ComposeTransactionID(wsA, txn.ID),
		TargetState:   domain.StateCancelled,
		WorkspaceID:   wsB,
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "NF_001", appErr.Code, "forged ids must look like a missing transaction")
}

func TestTransition_CounterpartyCannotDriveState(t *testing.T) {
	d := setupTransitionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	senderWS := uuid.New()
	receiverWS := uuid.New()
	txn := newSubmittedTx(senderWS)

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)

	// The receiving workspace holds a perspective id that unwraps cleanly
	// against itself, but it has no authority over the sender's transfer.
	_, err := d.svc.Transition(ctx, ports.TransitionRequest{
		TransactionID: domain.ComposeTransactionID(receiverWS, txn.ID),
		TargetState:   domain.StateCancelled,
		WorkspaceID:   receiverWS,
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "NF_001", appErr.Code)
	assert.Equal(t, domain.StateSubmitted, txn.State, "foreign request must not touch the transaction")
}

func TestTransition_MissingWorkspace(t *testing.T) {
	d := setupTransitionService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.Transition(context.Background(), ports.TransitionRequest{
		TransactionID: domain.ComposeTransactionID(uuid.New(), uuid.New()),
		TargetState:   domain.StateCancelled,
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "VAL_002", appErr.Code)
}

func TestTransition_NotificationFailureDoesNotFailTransition(t *testing.T) {
	d := setupTransitionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	txn := newSubmittedTx(wsID)
	dbTx := &mockTx{}

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.transactor.EXPECT().Begin(ctx).Return(dbTx, nil)
	d.txRepo.EXPECT().UpdateInTx(ctx, dbTx, txn).Return(nil)
	d.bus.EXPECT().PublishTransactionUpdated(ctx, wsID, txn).Return(assert.AnError)
	d.bus.EXPECT().PublishListsChanged(ctx, wsID).Return(assert.AnError)

	_, err := d.svc.Transition(ctx, ports.TransitionRequest{
		TransactionID: domain.ComposeTransactionID(wsID, txn.ID),
		TargetState:   domain.StatePendingAuthorization,
		WorkspaceID:   wsID,
	})
	assert.NoError(t, err, "delivery failures must not affect ledger state")
}
