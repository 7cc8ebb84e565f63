package service

import (
	"context"
	"fmt"
	"time"

	"custodial-vault-platform/internal/core/domain"
	"custodial-vault-platform/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AutopilotService is the auto-transition driver: a background loop that
// advances every eligible non-terminal transaction one forward step per
// tick. It shares the ledger service with the interactive transition path so
// the two never diverge in bookkeeping.
type AutopilotService struct {
	txRepo       ports.TransactionRepository
	settingsRepo ports.SettingsRepository
	ledger       ports.LedgerService
	addressSvc   ports.AddressService
	bus          ports.NotificationBus
	transactor   ports.DBTransactor
	interval     time.Duration
	minConfirms  int
	log          zerolog.Logger
}

// NewAutopilotService creates a new AutopilotService.
func NewAutopilotService(
	txRepo ports.TransactionRepository,
	settingsRepo ports.SettingsRepository,
	ledger ports.LedgerService,
	addressSvc ports.AddressService,
	bus ports.NotificationBus,
	transactor ports.DBTransactor,
	interval time.Duration,
	minConfirms int,
	log zerolog.Logger,
) *AutopilotService {
	if minConfirms < 1 {
		minConfirms = 1
	}
	return &AutopilotService{
		txRepo:       txRepo,
		settingsRepo: settingsRepo,
		ledger:       ledger,
		addressSvc:   addressSvc,
		bus:          bus,
		transactor:   transactor,
		interval:     interval,
		minConfirms:  minConfirms,
		log:          log,
	}
}

// Run drives the loop until ctx is cancelled. Every iteration failure is
// recoverable: it is logged and the loop retries on the next tick.
func (s *AutopilotService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("autopilot started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("autopilot stopped")
			return
		case <-ticker.C:
			if err := s.runOnce(ctx); err != nil {
				s.log.Error().Err(err).Msg("autopilot iteration failed")
			}
		}
	}
}

// runOnce performs a single driver iteration.
func (s *AutopilotService) runOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("autopilot panic: %v", r)
		}
	}()

	// The flag is read fresh every tick so operators can flip it without a
	// restart and multiple driver instances stay consistent.
	enabled, err := s.settingsRepo.GetAutoTransitionEnabled(ctx)
	if err != nil {
		return fmt.Errorf("read auto-transition flag: %w", err)
	}
	if !enabled {
		return nil
	}

	txs, err := s.txRepo.ListNonTerminal(ctx)
	if err != nil {
		return fmt.Errorf("list non-terminal transactions: %w", err)
	}

	// Settlements into COMPLETED commit individually (all-or-nothing per
	// transaction); the remaining state bumps persist as one batch.
	var batch, advanced []domain.Transaction
	for i := range txs {
		t := &txs[i]
		res := s.advance(ctx, t)
		if res == advanceSkipped {
			continue
		}
		advanced = append(advanced, *t)
		if res == advanceNeedsPersist {
			batch = append(batch, *t)
		}
	}

	if len(advanced) == 0 {
		return nil
	}

	if len(batch) > 0 {
		if err := s.txRepo.UpdateBatch(ctx, batch); err != nil {
			return fmt.Errorf("persist batch: %w", err)
		}
	}

	workspaces := make(map[uuid.UUID]struct{})
	for i := range advanced {
		t := &advanced[i]
		if err := s.bus.PublishTransactionUpdated(ctx, t.WorkspaceID, t); err != nil {
			s.log.Warn().Err(err).Str("tx_id", t.ID.String()).Msg("transaction notification failed")
		}
		workspaces[t.WorkspaceID] = struct{}{}
	}
	for wsID := range workspaces {
		if err := s.bus.PublishListsChanged(ctx, wsID); err != nil {
			s.log.Warn().Err(err).Str("workspace_id", wsID.String()).Msg("lists-changed notification failed")
		}
	}

	s.log.Info().Int("advanced", len(advanced)).Msg("autopilot tick applied")
	return nil
}

type advanceResult int

const (
	advanceSkipped advanceResult = iota
	advanceNeedsPersist
	advancePersisted
)

// advance moves one transaction a single forward step.
func (s *AutopilotService) advance(ctx context.Context, t *domain.Transaction) advanceResult {
	next, ok := domain.NextAutoState(t.State)
	if !ok {
		return advanceSkipped
	}
	if !domain.CanTransition(t.State, next) {
		return advanceSkipped
	}

	switch next {
	case domain.StateBroadcasting:
		if t.Hash == nil {
			asset, ok := domain.LookupAsset(t.AssetID)
			if !ok {
				s.log.Warn().
					Str("tx_id", t.ID.String()).
					Str("asset", t.AssetID).
					Msg("unknown asset, cannot generate hash; skipping")
				return advanceSkipped
			}
			hash, err := s.addressSvc.GenerateTransactionHash(asset.ID, asset.Blockchain)
			if err != nil {
				s.log.Warn().Err(err).Str("tx_id", t.ID.String()).Msg("hash generation failed; skipping")
				return advanceSkipped
			}
			t.Hash = &hash
		}
	case domain.StateConfirming:
		t.Confirmations++
	case domain.StateCompleted:
		if err := s.settle(ctx, t); err != nil {
			s.log.Warn().Err(err).Str("tx_id", t.ID.String()).Msg("settlement failed; skipping")
			return advanceSkipped
		}
		return advancePersisted
	}

	t.State = next
	t.UpdatedAt = time.Now().UTC()
	return advanceNeedsPersist
}

// settle moves a transaction into COMPLETED: balance settlement and the
// state change commit together or not at all.
func (s *AutopilotService) settle(ctx context.Context, t *domain.Transaction) error {
	if t.Confirmations < s.minConfirms {
		t.Confirmations = s.minConfirms
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.ledger.CompleteInTx(ctx, dbTx, t); err != nil {
		return err
	}

	t.State = domain.StateCompleted
	t.UpdatedAt = time.Now().UTC()
	if err := s.txRepo.UpdateInTx(ctx, dbTx, t); err != nil {
		return fmt.Errorf("persist transaction: %w", err)
	}
	return dbTx.Commit(ctx)
}
