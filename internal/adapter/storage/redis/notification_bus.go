package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"custodial-vault-platform/internal/core/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// Event type markers carried in every published payload.
const (
	EventTransactionUpdated = "transaction_updated"
	EventListsChanged       = "lists_changed"
)

// NotificationBus implements ports.NotificationBus using Redis pub/sub. Each
// workspace gets its own channel, so a subscriber only ever sees events
// scoped to the workspaces it asked for. Delivery is fire-and-forget.
type NotificationBus struct {
	client *goredis.Client
}

// NewNotificationBus creates a new Redis-backed notification bus.
func NewNotificationBus(client *goredis.Client) *NotificationBus {
	return &NotificationBus{client: client}
}

// Event is the wire shape of one bus message.
type Event struct {
	Type        string              `json:"type"`
	WorkspaceID uuid.UUID           `json:"workspace_id"`
	Transaction *domain.Transaction `json:"transaction,omitempty"`
	EmittedAt   time.Time           `json:"emitted_at"`
}

// PublishTransactionUpdated emits a full transaction upsert to the
// workspace's channel.
func (b *NotificationBus) PublishTransactionUpdated(ctx context.Context, workspaceID uuid.UUID, t *domain.Transaction) error {
	return b.publish(ctx, workspaceID, Event{
		Type:        EventTransactionUpdated,
		WorkspaceID: workspaceID,
		Transaction: t,
		EmittedAt:   time.Now().UTC(),
	})
}

// PublishListsChanged emits a ping telling subscribers to refetch their
// transaction lists.
func (b *NotificationBus) PublishListsChanged(ctx context.Context, workspaceID uuid.UUID) error {
	return b.publish(ctx, workspaceID, Event{
		Type:        EventListsChanged,
		WorkspaceID: workspaceID,
		EmittedAt:   time.Now().UTC(),
	})
}

// Subscribe returns a pub/sub subscription for one workspace's channel. The
// caller owns the subscription and must close it.
func (b *NotificationBus) Subscribe(ctx context.Context, workspaceID uuid.UUID) *goredis.PubSub {
	return b.client.Subscribe(ctx, ChannelFor(workspaceID))
}

// ChannelFor returns the pub/sub channel name of one workspace.
func ChannelFor(workspaceID uuid.UUID) string {
	return "workspace:" + workspaceID.String() + ":events"
}

func (b *NotificationBus) publish(ctx context.Context, workspaceID uuid.UUID, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.client.Publish(ctx, ChannelFor(workspaceID), payload).Err(); err != nil {
		return fmt.Errorf("publish %s event: %w", ev.Type, err)
	}
	return nil
}
