package chat

import (
	"time"

	"cafe-backend/model"
)

type ChatInput struct {
	Body struct {
		Messages []model.ChatMessage `json:"messages" doc:"對話歷史，至少一則"`
	} `json:"body"`
}

// ChatData 聊天回覆；有成立訂單時附上訂單ID與建立時間
type ChatData struct {
	Message        string     `json:"message" doc:"收銀員回覆內容"`
	OrderID        string     `json:"orderId,omitempty" doc:"成立的訂單ID"`
	OrderCreatedAt *time.Time `json:"orderCreatedAt,omitempty" doc:"訂單建立時間"`
}

type ChatResponse struct {
	Body ChatData `json:"body"`
}
