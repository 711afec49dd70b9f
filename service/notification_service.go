package service

import (
	"context"
	"sync"
	"time"

	"cafe-backend/model"

	"github.com/rs/zerolog"
)

// NotificationTask 通知任務結構
type NotificationTask struct {
	Type  model.NotificationTaskType // SSE 或 Discord
	Event *model.OrderEvent
}

// NotificationService 統一的通知服務，從派送器接收訂單事件後
// 以 worker pool 分發到 SSE 與 Discord
type NotificationService struct {
	logger         zerolog.Logger
	sseService     *SSEService
	discordService *DiscordService // 可為 nil（未設定 bot token）

	// Worker Pool
	notificationQueue chan NotificationTask
	workers           int
	stopCh            chan struct{}
	wg                sync.WaitGroup
	started           bool
	mu                sync.RWMutex
}

// NewNotificationService 創建新的通知服務
func NewNotificationService(
	logger zerolog.Logger,
	sseService *SSEService,
	discordService *DiscordService,
	workers int,
	queueSize int,
) *NotificationService {
	if workers <= 0 {
		workers = 3 // 預設 3 個 worker
	}
	if queueSize <= 0 {
		queueSize = 100 // 預設隊列大小 100
	}

	return &NotificationService{
		logger:            logger.With().Str("module", "notification_service").Logger(),
		sseService:        sseService,
		discordService:    discordService,
		notificationQueue: make(chan NotificationTask, queueSize),
		workers:           workers,
		stopCh:            make(chan struct{}),
	}
}

// Start 啟動通知服務的 worker pool
func (ns *NotificationService) Start() {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	if ns.started {
		return
	}

	for i := 0; i < ns.workers; i++ {
		ns.wg.Add(1)
		go ns.worker(i)
	}

	ns.started = true
	ns.logger.Info().Int("workers", ns.workers).Msg("NotificationService worker pool 已啟動")
}

// Stop 停止通知服務
func (ns *NotificationService) Stop() {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	if !ns.started {
		return
	}

	close(ns.stopCh)
	ns.wg.Wait()

	ns.started = false
	ns.logger.Info().Msg("NotificationService 已停止")
}

// DispatchOrderEvent 將訂單事件排入 SSE 與 Discord 通知任務，
// 隊列滿時丟棄並記錄（通知屬盡力而為，不回壓到訂單流程）
func (ns *NotificationService) DispatchOrderEvent(event *model.OrderEvent) {
	ns.enqueue(NotificationTask{Type: model.NotificationSSE, Event: event})
	if ns.discordService != nil {
		ns.enqueue(NotificationTask{Type: model.NotificationDiscord, Event: event})
	}
}

func (ns *NotificationService) enqueue(task NotificationTask) {
	select {
	case ns.notificationQueue <- task:
	default:
		ns.logger.Warn().
			Str("type", string(task.Type)).
			Str("order_id", task.Event.OrderID).
			Msg("通知隊列已滿，丟棄任務 (Notification queue full, dropping task)")
	}
}

// worker 處理通知任務的工作者
func (ns *NotificationService) worker(id int) {
	defer ns.wg.Done()

	ns.logger.Debug().Int("worker_id", id).Msg("NotificationService worker 已啟動")

	for {
		select {
		case task := <-ns.notificationQueue:
			ns.processTask(id, task)
		case <-ns.stopCh:
			ns.logger.Debug().Int("worker_id", id).Msg("NotificationService worker 正在停止")
			return
		}
	}
}

// processTask 處理單個通知任務
func (ns *NotificationService) processTask(workerID int, task NotificationTask) {
	ctx := context.Background() // 使用新 context 避免原請求 context 被取消

	startTime := time.Now()
	defer func() {
		ns.logger.Debug().
			Int("worker_id", workerID).
			Str("type", string(task.Type)).
			Str("order_id", task.Event.OrderID).
			Dur("duration", time.Since(startTime)).
			Msg("通知任務處理完成")
	}()

	switch task.Type {
	case model.NotificationSSE:
		if ns.sseService != nil {
			ns.sseService.PushOrderEvent(ctx, task.Event)
		}
	case model.NotificationDiscord:
		if ns.discordService != nil {
			ns.discordService.NotifyOrderEvent(task.Event)
		}
	default:
		ns.logger.Warn().Str("type", string(task.Type)).Msg("未知的通知類型")
	}
}
