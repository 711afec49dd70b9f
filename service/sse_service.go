package service

import (
	"context"

	"cafe-backend/infra"
	"cafe-backend/model"

	"github.com/rs/zerolog"
)

// OrderEventBroadcaster SSE 廣播接口，避免 service 與 controller 循環依賴
type OrderEventBroadcaster interface {
	BroadcastOrderEvent(event *model.OrderEvent)
	GetStats() map[string]interface{}
}

// SSEService 負責訂單事件的 SSE 推送。
// 有 Redis 時事件走 pub/sub 繞一圈（所有實例的訂閱者各自廣播給本地客戶端），
// 沒有 Redis 時直接廣播給本實例的客戶端。
type SSEService struct {
	logger       zerolog.Logger
	broadcaster  OrderEventBroadcaster
	eventManager *infra.RedisEventManager
}

// NewSSEService 建立新的 SSE 服務
func NewSSEService(logger zerolog.Logger, broadcaster OrderEventBroadcaster, eventManager *infra.RedisEventManager) *SSEService {
	return &SSEService{
		logger:       logger.With().Str("module", "sse_service").Logger(),
		broadcaster:  broadcaster,
		eventManager: eventManager,
	}
}

// PushOrderEvent 推送訂單事件；Redis 可用時發布到頻道，否則直接本地廣播
func (s *SSEService) PushOrderEvent(ctx context.Context, event *model.OrderEvent) {
	if s.broadcaster == nil {
		s.logger.Warn().Msg("SSE 廣播器未初始化，跳過推送 (SSE broadcaster not initialized, skipping push)")
		return
	}

	if s.eventManager.Enabled() {
		if err := s.eventManager.PublishOrderEvent(ctx, event); err == nil {
			return
		}
		// Redis 發布失敗時退回本地廣播，本實例的看板至少會更新
	}

	s.broadcaster.BroadcastOrderEvent(event)
}

// RunRedisSubscriber 訂閱 Redis 訂單事件頻道並轉播給本地 SSE 客戶端，
// 阻塞直到 ctx 取消，應以 goroutine 啟動
func (s *SSEService) RunRedisSubscriber(ctx context.Context) {
	if !s.eventManager.Enabled() {
		s.logger.Info().Msg("Redis 未連線，SSE 僅廣播本實例事件")
		return
	}

	pubsub := s.eventManager.SubscribeOrderEvents(ctx)
	defer pubsub.Close()

	s.logger.Info().Msg("已訂閱 Redis 訂單事件頻道")

	channel := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-channel:
			if !ok {
				s.logger.Warn().Msg("Redis 訂閱頻道已關閉")
				return
			}
			event, err := infra.ParseOrderEvent(msg.Payload)
			if err != nil {
				s.logger.Error().Err(err).Msg("解析訂單事件失敗 (Failed to parse order event)")
				continue
			}
			s.broadcaster.BroadcastOrderEvent(event)
		}
	}
}

// GetSSEStats 取得 SSE 連接統計
func (s *SSEService) GetSSEStats() map[string]interface{} {
	if s.broadcaster == nil {
		return map[string]interface{}{"enabled": false}
	}
	return s.broadcaster.GetStats()
}
