package controller

import (
	"context"
	"errors"

	chatModels "cafe-backend/data-models/chat"
	"cafe-backend/infra"
	"cafe-backend/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
)

type ChatController struct {
	logger      zerolog.Logger
	chatService *service.ChatService
}

func NewChatController(logger zerolog.Logger, chatService *service.ChatService) *ChatController {
	return &ChatController{
		logger:      logger.With().Str("module", "chat_controller").Logger(),
		chatService: chatService,
	}
}

func (c *ChatController) RegisterRoutes(api huma.API) {
	// AI 收銀員對話；模型回覆含訂單區塊時自動建單並回傳收據
	huma.Register(api, huma.Operation{
		OperationID: "chat",
		Method:      "POST",
		Path:        "/api/chat",
		Summary:     "AI 收銀員對話",
		Tags:        []string{"chat"},
	}, func(ctx context.Context, input *chatModels.ChatInput) (*chatModels.ChatResponse, error) {
		data, err := c.chatService.Chat(ctx, input.Body.Messages)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmptyMessages), errors.Is(err, service.ErrInvalidChatRole):
				return nil, huma.Error400BadRequest("對話內容不合法", err)
			case errors.Is(err, infra.ErrMissingOpenAIKey):
				c.logger.Error().Msg("OPENAI_API_KEY 未設定")
				return nil, huma.Error500InternalServerError("OPENAI_API_KEY not configured", err)
			case errors.Is(err, service.ErrOrderSaveFailed):
				c.logger.Error().Err(err).Msg("聊天建單入庫失敗")
				return nil, huma.Error500InternalServerError("Failed to save order", err)
			default:
				c.logger.Error().Err(err).Msg("聊天處理失敗")
				return nil, huma.Error502BadGateway("聊天補全失敗", err)
			}
		}

		return &chatModels.ChatResponse{Body: *data}, nil
	})
}
