package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LineItem 訂單內的一個計價品項（飲品或點心與其選項）
type LineItem struct {
	Name        string       `json:"name" bson:"name" example:"Latte" doc:"品項名稱"`
	Category    ItemCategory `json:"category" bson:"category" example:"drink" doc:"品項分類 (drink/pastry)"`
	Size        DrinkSize    `json:"size,omitempty" bson:"size,omitempty" example:"large" doc:"尺寸，點心不適用"`
	Temperature DrinkTemp    `json:"temperature,omitempty" bson:"temperature,omitempty" example:"iced" doc:"溫度，點心不適用"`
	Milk        string       `json:"milk,omitempty" bson:"milk,omitempty" example:"oat" doc:"奶類選擇"`
	Modifiers   []string     `json:"modifiers,omitempty" bson:"modifiers,omitempty" doc:"加購項目（濃縮 shot、糖漿等）"`
	Sweetness   string       `json:"sweetness,omitempty" bson:"sweetness,omitempty" example:"Less Sugar" doc:"甜度"`
	Ice         string       `json:"ice,omitempty" bson:"ice,omitempty" example:"Less Ice" doc:"冰量"`
	Quantity    int          `json:"quantity" bson:"quantity" example:"2" doc:"數量，正整數"`
	UnitPrice   float64      `json:"unitPrice" bson:"unit_price" example:"5" doc:"單價（含加購）"`
	LineTotal   float64      `json:"lineTotal" bson:"line_total" example:"10" doc:"小計 = 數量 × 單價"`
}

// Order 一筆訂單。由聊天結帳或 orders API 建立，狀態僅透過 status patch 變更，不會被刪除
type Order struct {
	ID            *primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty" example:"684a73ad0e3a583c37e4b30d" doc:"訂單ID"`
	Items         []LineItem          `json:"items" bson:"items" doc:"品項列表"`
	Status        OrderStatus         `json:"status" bson:"status" example:"pending" doc:"訂單狀態"`
	Total         float64             `json:"total" bson:"total" example:"13.5" doc:"總金額（四捨五入到分）"`
	PriceVerified *bool               `json:"price_verified,omitempty" bson:"price_verified,omitempty" doc:"伺服器端依菜單重算金額是否吻合；false 表示上游模型的算術與菜單不符"`
	CreatedAt     *time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty" doc:"建立時間"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty" bson:"completed_at,omitempty" doc:"完成時間，completed 時蓋章"`
}

// HexID 回傳訂單ID的 hex 字串，無ID時回傳空字串
func (o *Order) HexID() string {
	if o.ID == nil {
		return ""
	}
	return o.ID.Hex()
}

// OrderPayload 從模型輸出抽取出的訂單資料（尚未入庫）
type OrderPayload struct {
	Items []LineItem `json:"items"`
	Total float64    `json:"total"`
}

// OrderEvent 訂單事件，經 RabbitMQ 進入派送器，再由通知服務推送到 SSE / Discord
type OrderEvent struct {
	EventID   string         `json:"event_id" bson:"event_id" doc:"事件ID"`
	Type      OrderEventType `json:"type" bson:"type" doc:"事件類型"`
	OrderID   string         `json:"order_id" bson:"order_id" doc:"訂單ID"`
	OldStatus OrderStatus    `json:"old_status,omitempty" bson:"old_status,omitempty" doc:"變更前狀態"`
	NewStatus OrderStatus    `json:"new_status,omitempty" bson:"new_status,omitempty" doc:"變更後狀態"`
	Order     *Order         `json:"order,omitempty" bson:"order,omitempty" doc:"事件當下的訂單快照"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp" doc:"事件時間"`
}

// ChatMessage 聊天對話中的一則訊息
type ChatMessage struct {
	Role    ChatRole `json:"role" example:"user" doc:"訊息角色 (user/assistant/system)"`
	Content string   `json:"content" example:"一杯大杯冰拿鐵" doc:"訊息內容"`
}
