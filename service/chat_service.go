package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	chatModels "cafe-backend/data-models/chat"
	"cafe-backend/infra"
	"cafe-backend/metrics"
	"cafe-backend/model"
	"cafe-backend/utils"

	"github.com/rs/zerolog"
)

var (
	// ErrEmptyMessages 對話為空
	ErrEmptyMessages = errors.New("messages required")
	// ErrInvalidChatRole 不合法的訊息角色
	ErrInvalidChatRole = errors.New("invalid message role")
	// ErrOrderSaveFailed 聊天建單時入庫失敗，和上游模型錯誤區分開來
	ErrOrderSaveFailed = errors.New("failed to save order")
)

// ChatCompleter 聊天補全客戶端介面，測試時可替換
type ChatCompleter interface {
	ChatComplete(ctx context.Context, messages []model.ChatMessage) (string, error)
}

type ChatService struct {
	logger       zerolog.Logger
	completer    ChatCompleter
	orderService *OrderService
}

func NewChatService(logger zerolog.Logger, completer ChatCompleter, orderService *OrderService) *ChatService {
	return &ChatService{
		logger:       logger.With().Str("module", "chat_service").Logger(),
		completer:    completer,
		orderService: orderService,
	}
}

// Chat 處理一輪收銀員對話：前置系統提示詞、呼叫模型、解析訂單區塊。
// 模型回覆含訂單時入庫並回傳收據，否則原樣回傳模型文字。
func (cs *ChatService) Chat(ctx context.Context, messages []model.ChatMessage) (*chatModels.ChatData, error) {
	startTime := time.Now()
	opStatus := metrics.StatusSuccess
	defer func() {
		metrics.RecordChatOperation(opStatus, time.Since(startTime))
	}()

	if len(messages) == 0 {
		opStatus = metrics.StatusError
		return nil, ErrEmptyMessages
	}
	for _, msg := range messages {
		if !msg.Role.IsValid() {
			opStatus = metrics.StatusError
			return nil, fmt.Errorf("%w: %s", ErrInvalidChatRole, msg.Role)
		}
	}

	ctx, span := infra.StartChatSpan(ctx, "complete", infra.AttrInt("message_count", len(messages)))
	defer span.End()

	fullMessages := make([]model.ChatMessage, 0, len(messages)+1)
	fullMessages = append(fullMessages, model.ChatMessage{Role: model.ChatRoleSystem, Content: CashierSystemPrompt})
	fullMessages = append(fullMessages, messages...)

	content, err := cs.completer.ChatComplete(ctx, fullMessages)
	if err != nil {
		opStatus = metrics.StatusError
		infra.RecordError(span, err, "聊天補全失敗")
		cs.logger.Error().Err(err).Msg("聊天補全失敗 (Chat completion failed)")
		return nil, err
	}

	payload := utils.ExtractOrderJSON(content)
	if payload == nil {
		// 對話尚未結帳，原樣回傳模型文字
		infra.MarkSuccess(span, infra.AttrBool("order_placed", false))
		return &chatModels.ChatData{Message: content}, nil
	}

	order, err := cs.orderService.CreateOrder(ctx, payload, metrics.SourceChat)
	if err != nil {
		opStatus = metrics.StatusError
		infra.RecordError(span, err, "聊天建單失敗")
		return nil, fmt.Errorf("%w: %v", ErrOrderSaveFailed, err)
	}

	receipt := utils.FormatReceipt(order.HexID(), order.Items, payload.Total)
	infra.MarkSuccess(span,
		infra.AttrBool("order_placed", true),
		infra.AttrString("order_id", order.HexID()),
	)

	return &chatModels.ChatData{
		Message:        receipt,
		OrderID:        order.HexID(),
		OrderCreatedAt: order.CreatedAt,
	}, nil
}
