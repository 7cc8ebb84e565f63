package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallet_Available(t *testing.T) {
	w := &Wallet{
		Balance:      decimal.RequireFromString("10"),
		Pending:      decimal.RequireFromString("2.5"),
		Frozen:       decimal.RequireFromString("1"),
		LockedAmount: decimal.RequireFromString("0.5"),
	}
	assert.True(t, w.Available().Equal(decimal.RequireFromString("6")))
}

func TestTransaction_IsTerminal(t *testing.T) {
	for _, s := range []TransactionState{StateCompleted, StateFailed, StateRejected, StateCancelled, StateTimeout} {
		tx := &Transaction{State: s}
		assert.True(t, tx.IsTerminal(), string(s))
	}
	for _, s := range []TransactionState{StateSubmitted, StateQueued, StateBroadcasting, StateConfirming} {
		tx := &Transaction{State: s}
		assert.False(t, tx.IsTerminal(), string(s))
	}
}

func TestTransaction_SameCurrencyFee(t *testing.T) {
	tx := &Transaction{AssetID: "BTC", FeeCurrency: "BTC"}
	assert.True(t, tx.SameCurrencyFee())

	tx = &Transaction{AssetID: "USDC", FeeCurrency: "ETH"}
	assert.False(t, tx.SameCurrencyFee())

	tx = &Transaction{AssetID: "BTC"}
	assert.True(t, tx.SameCurrencyFee(), "empty fee currency means same-currency")
}

func TestCanTransition_ForwardChain(t *testing.T) {
	chain := []TransactionState{
		StateSubmitted, StatePendingAuthorization, StateQueued,
		StateBroadcasting, StateConfirming, StateCompleted,
	}
	for i := 0; i < len(chain)-1; i++ {
		assert.True(t, CanTransition(chain[i], chain[i+1]),
			"%s -> %s should be legal", chain[i], chain[i+1])
	}
}

func TestCanTransition_SameStateIsIdempotent(t *testing.T) {
	for _, s := range []TransactionState{StateSubmitted, StateQueued, StateCompleted, StateFailed} {
		assert.True(t, CanTransition(s, s), string(s))
	}
}

func TestCanTransition_EscapeEdges(t *testing.T) {
	nonTerminal := []TransactionState{
		StateSubmitted, StatePendingSignature, StatePendingAuthorization,
		StateQueued, StateBroadcasting, StateConfirming,
	}
	for _, from := range nonTerminal {
		for _, to := range []TransactionState{StateRejected, StateCancelled, StateTimeout} {
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_FailedOnlyFromBroadcastingOrConfirming(t *testing.T) {
	assert.True(t, CanTransition(StateBroadcasting, StateFailed))
	assert.True(t, CanTransition(StateConfirming, StateFailed))
	assert.False(t, CanTransition(StateSubmitted, StateFailed))
	assert.False(t, CanTransition(StateQueued, StateFailed))
}

func TestCanTransition_NoSkippingStates(t *testing.T) {
	assert.False(t, CanTransition(StateSubmitted, StateCompleted))
	assert.False(t, CanTransition(StateSubmitted, StateBroadcasting))
	assert.False(t, CanTransition(StateQueued, StateConfirming))
}

func TestCanTransition_TerminalStatesHaveNoExits(t *testing.T) {
	for _, from := range []TransactionState{StateCompleted, StateFailed, StateRejected, StateCancelled, StateTimeout} {
		for _, to := range []TransactionState{StateSubmitted, StateQueued, StateCompleted, StateCancelled} {
			if from == to {
				continue
			}
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestNextAutoState(t *testing.T) {
	next, ok := NextAutoState(StateSubmitted)
	require.True(t, ok)
	assert.Equal(t, StatePendingAuthorization, next)

	next, ok = NextAutoState(StateConfirming)
	require.True(t, ok)
	assert.Equal(t, StateCompleted, next)

	_, ok = NextAutoState(StateCompleted)
	assert.False(t, ok, "terminal states have no auto successor")

	_, ok = NextAutoState(StateCancelled)
	assert.False(t, ok)
}

func TestComposeTransactionID_RoundTrip(t *testing.T) {
	wsID := uuid.New()
	rawID := uuid.New()

	composite := ComposeTransactionID(wsID, rawID)
	gotWS, gotRaw, err := DecomposeTransactionID(composite)
	require.NoError(t, err)
	assert.Equal(t, wsID, gotWS)
	assert.Equal(t, rawID, gotRaw)
}

func TestComposeTransactionID_DiffersPerWorkspace(t *testing.T) {
	rawID := uuid.New()
	idA := ComposeTransactionID(uuid.New(), rawID)
	idB := ComposeTransactionID(uuid.New(), rawID)
	assert.NotEqual(t, idA, idB, "same transaction must yield different ids per workspace")
}

func TestUnwrapTransactionID_WorkspaceMismatch(t *testing.T) {
	wsA := uuid.New()
	wsB := uuid.New()
	rawID := uuid.New()
	composite := ComposeTransactionID(wsA, rawID)

	_, err := UnwrapTransactionID(composite, wsB, false)
	assert.Error(t, err, "cross-workspace unwrap must fail")

	got, err := UnwrapTransactionID(composite, wsB, true)
	require.NoError(t, err)
	assert.Equal(t, rawID, got)

	got, err = UnwrapTransactionID(composite, wsA, false)
	require.NoError(t, err)
	assert.Equal(t, rawID, got)
}

func TestUnwrapTransactionID_Malformed(t *testing.T) {
	_, err := UnwrapTransactionID("not-base64!!!", uuid.New(), false)
	assert.Error(t, err)

	_, err = UnwrapTransactionID("bm90LWEtdXVpZA", uuid.New(), false)
	assert.Error(t, err)
}

func TestLookupAsset(t *testing.T) {
	btc, ok := LookupAsset("BTC")
	require.True(t, ok)
	assert.True(t, btc.SupportsUTXO)
	assert.Equal(t, "BTC", btc.FeeAssetID)

	usdc, ok := LookupAsset("USDC")
	require.True(t, ok)
	assert.Equal(t, "ETH", usdc.FeeAssetID, "token fees are charged in the chain's native asset")

	_, ok = LookupAsset("DOGE")
	assert.False(t, ok)
}
