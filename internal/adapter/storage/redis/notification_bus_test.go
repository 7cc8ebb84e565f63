package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"custodial-vault-platform/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busFixture(t *testing.T) (*NotificationBus, *goredis.Client) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	return NewNotificationBus(client), client
}

func TestNotificationBus_TransactionUpdated(t *testing.T) {
	bus, client := busFixture(t)
	ctx := context.Background()
	wsID := uuid.New()

	sub := client.Subscribe(ctx, ChannelFor(wsID))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	txn := &domain.Transaction{
		ID:          uuid.New(),
		WorkspaceID: wsID,
		AssetID:     "BTC",
		Amount:      decimal.RequireFromString("0.5"),
		State:       domain.StateConfirming,
	}
	require.NoError(t, bus.PublishTransactionUpdated(ctx, wsID, txn))

	msg, err := sub.ReceiveTimeout(ctx, time.Second)
	require.NoError(t, err)
	payload, ok := msg.(*goredis.Message)
	require.True(t, ok)

	var ev Event
	require.NoError(t, json.Unmarshal([]byte(payload.Payload), &ev))
	assert.Equal(t, EventTransactionUpdated, ev.Type)
	assert.Equal(t, wsID, ev.WorkspaceID)
	require.NotNil(t, ev.Transaction)
	assert.Equal(t, txn.ID, ev.Transaction.ID)
	assert.Equal(t, domain.StateConfirming, ev.Transaction.State)
}

func TestNotificationBus_ListsChanged(t *testing.T) {
	bus, client := busFixture(t)
	ctx := context.Background()
	wsID := uuid.New()

	sub := client.Subscribe(ctx, ChannelFor(wsID))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, bus.PublishListsChanged(ctx, wsID))

	msg, err := sub.ReceiveTimeout(ctx, time.Second)
	require.NoError(t, err)
	payload, ok := msg.(*goredis.Message)
	require.True(t, ok)

	var ev Event
	require.NoError(t, json.Unmarshal([]byte(payload.Payload), &ev))
	assert.Equal(t, EventListsChanged, ev.Type)
	assert.Nil(t, ev.Transaction)
}

func TestNotificationBus_ChannelsArePerWorkspace(t *testing.T) {
	bus, client := busFixture(t)
	ctx := context.Background()
	mine := uuid.New()
	other := uuid.New()

	sub := client.Subscribe(ctx, ChannelFor(mine))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, bus.PublishListsChanged(ctx, other))

	_, err = sub.ReceiveTimeout(ctx, 100*time.Millisecond)
	assert.Error(t, err, "another workspace's events must not arrive here")
}
