package background

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"cafe-backend/infra"
	"cafe-backend/model"
	"cafe-backend/service"

	"github.com/rs/zerolog"
)

// Dispatcher 訂單事件派送中心：消費 order_events_queue，
// 把事件交給通知服務的 worker pool 分發到 SSE 與 Discord
type Dispatcher struct {
	logger              zerolog.Logger
	RabbitMQ            *infra.RabbitMQ
	NotificationService *service.NotificationService
	dispatcherID        string
}

// NewDispatcher 建立新的 Dispatcher
func NewDispatcher(logger zerolog.Logger, rabbitMQ *infra.RabbitMQ, notificationService *service.NotificationService) *Dispatcher {
	dispatcherID := fmt.Sprintf("dispatcher_%d_%d", time.Now().Unix(), rand.Int63())

	return &Dispatcher{
		logger:              logger.With().Str("module", "dispatcher").Logger(),
		RabbitMQ:            rabbitMQ,
		NotificationService: notificationService,
		dispatcherID:        dispatcherID,
	}
}

// Start 開始消費訂單事件隊列，阻塞直到隊列關閉或 ctx 取消，應以 goroutine 啟動
func (d *Dispatcher) Start(ctx context.Context) {
	if d.RabbitMQ == nil || d.RabbitMQ.Channel == nil {
		d.logger.Warn().Msg("RabbitMQ 未連線，派送中心不啟動，出餐看板改用輪詢")
		return
	}

	msgs, err := d.RabbitMQ.Channel.Consume(
		infra.QueueNameOrderEvents.String(), "", true, false, false, false, nil,
	)
	if err != nil {
		d.logger.Error().Err(err).Str("queue", infra.QueueNameOrderEvents.String()).Msg("派送中心無法消費隊列")
		return
	}

	d.logger.Info().Str("dispatcher_id", d.dispatcherID).Msg("派送中心已啟動，等待訂單事件...")

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Msg("派送中心已停止")
			return
		case msg, ok := <-msgs:
			if !ok {
				d.logger.Warn().Msg("訂單事件隊列已關閉")
				return
			}
			var event model.OrderEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				d.logger.Error().Err(err).Msg("派送中心事件資料解析失敗")
				continue
			}
			d.handleEvent(&event)
		}
	}
}

func (d *Dispatcher) handleEvent(event *model.OrderEvent) {
	d.logger.Debug().
		Str("event_id", event.EventID).
		Str("type", string(event.Type)).
		Str("order_id", event.OrderID).
		Msg("收到訂單事件")

	if d.NotificationService == nil {
		return
	}
	d.NotificationService.DispatchOrderEvent(event)
}
