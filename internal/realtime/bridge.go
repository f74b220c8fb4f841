package realtime

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const channelPrefix = "cafe:changes:"

// Bridge fans change events out across service instances over Redis pub/sub.
// Local publishes go to the in-process hub and to the Redis channel; events
// arriving from other instances are injected into the local hub. Each bridge
// tags outgoing events with its own id so it can ignore its echoes.
type Bridge struct {
	hub    *Hub
	rdb    *redis.Client
	id     string
	logger *zap.Logger
}

func NewBridge(hub *Hub, rdb *redis.Client, logger *zap.Logger) *Bridge {
	return &Bridge{
		hub:    hub,
		rdb:    rdb,
		id:     uuid.NewString(),
		logger: logger,
	}
}

func (b *Bridge) Publish(ev Event) {
	b.hub.Publish(ev)

	ev.Source = b.id
	payload, err := json.Marshal(ev)
	if err != nil {
		b.logger.Error("marshaling change event", zap.Error(err))
		return
	}
	// Fire-and-forget: losing a cross-instance event only delays the other
	// instance until its next local change.
	if err := b.rdb.Publish(context.Background(), channelPrefix+ev.Table, payload).Err(); err != nil {
		b.logger.Warn("publishing change event to redis", zap.Error(err))
	}
}

// Run consumes remote change events until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) {
	pubsub := b.rdb.Subscribe(ctx, channelPrefix+TableOrders)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.logger.Warn("unmarshaling change event", zap.Error(err))
				continue
			}
			if ev.Source == b.id {
				continue
			}
			b.hub.Publish(ev)
		}
	}
}
