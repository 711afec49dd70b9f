package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cafe-backend/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// orderEventsChannel 訂單事件的 Redis pub/sub 頻道，供多實例 SSE 同步
	orderEventsChannel = "cafe:order_events"
)

// RedisEventManager Redis 事件管理器
type RedisEventManager struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisEventManager 建立 Redis 事件管理器
func NewRedisEventManager(client *redis.Client, logger zerolog.Logger) *RedisEventManager {
	return &RedisEventManager{
		client: client,
		logger: logger.With().Str("module", "redis_events").Logger(),
	}
}

// Enabled Redis 連線是否可用
func (rem *RedisEventManager) Enabled() bool {
	return rem != nil && rem.client != nil
}

// NewOrderEvent 建立一筆帶事件ID與時間戳的訂單事件
func NewOrderEvent(eventType model.OrderEventType, order *model.Order, oldStatus, newStatus model.OrderStatus) *model.OrderEvent {
	return &model.OrderEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		OrderID:   order.HexID(),
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Order:     order,
		Timestamp: time.Now().UTC(),
	}
}

// PublishOrderEvent 發布訂單事件到 Redis 頻道
func (rem *RedisEventManager) PublishOrderEvent(ctx context.Context, event *model.OrderEvent) error {
	if rem == nil || rem.client == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	if err := rem.client.Publish(ctx, orderEventsChannel, payload).Err(); err != nil {
		rem.logger.Error().Err(err).
			Str("event_id", event.EventID).
			Str("order_id", event.OrderID).
			Msg("發布訂單事件到 Redis 失敗")
		return err
	}

	rem.logger.Debug().
		Str("event_id", event.EventID).
		Str("type", string(event.Type)).
		Str("order_id", event.OrderID).
		Msg("訂單事件已發布到 Redis")
	return nil
}

// SubscribeOrderEvents 訂閱訂單事件頻道
func (rem *RedisEventManager) SubscribeOrderEvents(ctx context.Context) *redis.PubSub {
	return rem.client.Subscribe(ctx, orderEventsChannel)
}

// ParseOrderEvent 解析訂單事件
func ParseOrderEvent(payload string) (*model.OrderEvent, error) {
	var event model.OrderEvent
	err := json.Unmarshal([]byte(payload), &event)
	return &event, err
}
