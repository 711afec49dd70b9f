package model

// OrderStatus 訂單狀態
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"     // 等待製作
	OrderStatusInProgress OrderStatus = "in_progress" // 製作中
	OrderStatusCompleted  OrderStatus = "completed"   // 完成
)

// IsValid 檢查是否為合法的訂單狀態
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted:
		return true
	}
	return false
}

// statusRank 訂單狀態的前進順序，用於偵測倒退轉換
func (s OrderStatus) statusRank() int {
	switch s {
	case OrderStatusPending:
		return 0
	case OrderStatusInProgress:
		return 1
	case OrderStatusCompleted:
		return 2
	}
	return -1
}

// IsBackwardTransition 回傳從 s 轉換到 next 是否為倒退（例如 completed → pending）
func (s OrderStatus) IsBackwardTransition(next OrderStatus) bool {
	return s.IsValid() && next.IsValid() && next.statusRank() < s.statusRank()
}

// ItemCategory 品項分類
type ItemCategory string

const (
	ItemCategoryDrink  ItemCategory = "drink"  // 飲品
	ItemCategoryPastry ItemCategory = "pastry" // 點心
)

// DrinkSize 飲品尺寸
type DrinkSize string

const (
	DrinkSizeSmall DrinkSize = "small" // 小杯 12oz
	DrinkSizeLarge DrinkSize = "large" // 大杯 16oz
)

// DrinkTemp 飲品溫度
type DrinkTemp string

const (
	DrinkTempHot  DrinkTemp = "hot"
	DrinkTempIced DrinkTemp = "iced"
)

// MenuCategory 菜單分類（咖啡/茶）
type MenuCategory string

const (
	MenuCategoryCoffee MenuCategory = "coffee"
	MenuCategoryTea    MenuCategory = "tea"
)

// ChatRole 聊天訊息角色
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
	ChatRoleSystem    ChatRole = "system"
)

// IsValid 檢查是否為合法的聊天角色
func (r ChatRole) IsValid() bool {
	switch r {
	case ChatRoleUser, ChatRoleAssistant, ChatRoleSystem:
		return true
	}
	return false
}

// OrderEventType 訂單事件類型，用於 RabbitMQ / Redis / SSE 推送
type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order_created"        // 新訂單
	OrderEventStatusChanged OrderEventType = "order_status_changed" // 狀態變更
)

// NotificationTaskType 通知任務類型
type NotificationTaskType string

const (
	NotificationSSE     NotificationTaskType = "sse"     // SSE 推送
	NotificationDiscord NotificationTaskType = "discord" // Discord 通知
)
