package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cafe-backend/model"

	"github.com/rs/zerolog"
)

// SSEController 管理所有 SSE 連接與訂單事件推送，供出餐看板即時更新
type SSEController struct {
	logger    zerolog.Logger
	clients   map[string]*SSEClient
	clientsMu sync.RWMutex
}

// SSEClient 代表一個 SSE 連接
type SSEClient struct {
	ID        string
	Writer    http.ResponseWriter
	Flusher   http.Flusher
	Request   *http.Request
	Events    chan SSEEvent
	Done      chan struct{}
	closeOnce sync.Once
}

// SSEEvent SSE 事件結構
type SSEEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// NewSSEController 建立新的 SSE 控制器
func NewSSEController(logger zerolog.Logger) *SSEController {
	sse := &SSEController{
		logger:  logger.With().Str("module", "sse_controller").Logger(),
		clients: make(map[string]*SSEClient),
	}

	// 啟動定期清理無效連接
	go sse.cleanup()

	return sse
}

// handleSSE 處理 SSE 連接
func (sse *SSEController) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Cache-Control")

	flusher, ok := w.(http.Flusher)
	if !ok {
		sse.logger.Error().Msg("Streaming unsupported")
		http.Error(w, "Streaming unsupported!", http.StatusInternalServerError)
		return
	}

	clientID := fmt.Sprintf("client_%d_%s", time.Now().UnixNano(), r.RemoteAddr)

	client := &SSEClient{
		ID:      clientID,
		Writer:  w,
		Flusher: flusher,
		Request: r,
		Events:  make(chan SSEEvent, 100),
		Done:    make(chan struct{}),
	}

	sse.registerClient(client)
	defer sse.unregisterClient(client)

	// 發送初始連接確認訊息
	sse.sendEvent(client, SSEEvent{
		Event: "connected",
		Data: map[string]interface{}{
			"client_id": clientID,
			"timestamp": time.Now().Format("15:04"),
			"message":   "SSE 連接建立成功",
		},
	})

	sse.logger.Debug().
		Str("client_id", clientID).
		Msg("SSE 客戶端已連接")

	for {
		select {
		case event := <-client.Events:
			if !sse.sendEvent(client, event) {
				return
			}
		case <-client.Done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

// registerClient 註冊新的 SSE 客戶端
func (sse *SSEController) registerClient(client *SSEClient) {
	sse.clientsMu.Lock()
	defer sse.clientsMu.Unlock()
	sse.clients[client.ID] = client
}

// unregisterClient 註銷 SSE 客戶端
func (sse *SSEController) unregisterClient(client *SSEClient) {
	sse.clientsMu.Lock()
	defer sse.clientsMu.Unlock()

	if _, exists := sse.clients[client.ID]; exists {
		delete(sse.clients, client.ID)
		client.closeOnce.Do(func() {
			close(client.Done)
			close(client.Events)
		})
		sse.logger.Debug().
			Str("client_id", client.ID).
			Msg("SSE 客戶端已斷開連接")
	}
}

// sendEvent 發送事件給單一客戶端
func (sse *SSEController) sendEvent(client *SSEClient, event SSEEvent) bool {
	data, err := json.Marshal(event.Data)
	if err != nil {
		sse.logger.Error().Err(err).Msg("序列化事件資料失敗 (Failed to serialize event data)")
		return false
	}

	message := fmt.Sprintf("event: %s\ndata: %s\n\n", event.Event, string(data))

	if _, err := client.Writer.Write([]byte(message)); err != nil {
		sse.logger.Error().Err(err).
			Str("client_id", client.ID).
			Msg("發送 SSE 事件失敗 (Failed to send SSE event)")
		return false
	}

	client.Flusher.Flush()
	return true
}

// BroadcastOrderEvent 廣播訂單事件給所有連接的客戶端，
// 事件名稱即訂單事件類型 (order_created / order_status_changed)
func (sse *SSEController) BroadcastOrderEvent(event *model.OrderEvent) {
	sseEvent := SSEEvent{
		Event: string(event.Type),
		Data:  event,
	}

	sse.clientsMu.RLock()
	clients := make([]*SSEClient, 0, len(sse.clients))
	for _, client := range sse.clients {
		clients = append(clients, client)
	}
	sse.clientsMu.RUnlock()

	for _, client := range clients {
		select {
		case client.Events <- sseEvent:
			// 事件發送成功
		default:
			// 客戶端事件隊列已滿，跳過該客戶端
			sse.logger.Warn().
				Str("client_id", client.ID).
				Msg("跳過客戶端，事件隊列已滿 (Skipping client, event queue is full)")
		}
	}
}

// GetStats 獲取 SSE 連接統計資訊
func (sse *SSEController) GetStats() map[string]interface{} {
	sse.clientsMu.RLock()
	connectedClients := len(sse.clients)
	sse.clientsMu.RUnlock()

	return map[string]interface{}{
		"connected_clients": connectedClients,
	}
}

// ConnectedClients 當前連接數，供 metrics 使用
func (sse *SSEController) ConnectedClients() int {
	sse.clientsMu.RLock()
	defer sse.clientsMu.RUnlock()
	return len(sse.clients)
}

// cleanup 定期清理無效連接
func (sse *SSEController) cleanup() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		sse.clientsMu.Lock()
		var toRemove []string

		for clientID, client := range sse.clients {
			select {
			case <-client.Done:
				toRemove = append(toRemove, clientID)
			default:
				// 連接仍然有效
			}
		}

		for _, clientID := range toRemove {
			if client, exists := sse.clients[clientID]; exists {
				delete(sse.clients, clientID)
				client.closeOnce.Do(func() {
					close(client.Done)
					close(client.Events)
				})
				sse.logger.Info().
					Str("client_id", clientID).
					Msg("清理無效的 SSE 客戶端")
			}
		}

		sse.clientsMu.Unlock()
	}
}

// GetSSEHandler 返回 SSE 處理函數，用於在 Chi 路由器上註冊
func (sse *SSEController) GetSSEHandler() http.HandlerFunc {
	return sse.handleSSE
}
