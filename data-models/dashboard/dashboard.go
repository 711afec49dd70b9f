package dashboard

// TopItem 熱銷品項，名稱格式為 name 或 name (size)
type TopItem struct {
	Name  string `json:"name" doc:"品項名稱（含尺寸）"`
	Count int    `json:"count" doc:"售出數量"`
}

// HourBucket 每小時訂單數（門市時區）
type HourBucket struct {
	Hour  int `json:"hour" minimum:"0" maximum:"23" doc:"小時（0-23）"`
	Count int `json:"count" doc:"訂單數"`
}

// Stats 營運儀表板統計
type Stats struct {
	OrdersToday           int64        `json:"ordersToday" doc:"今日訂單數"`
	PendingCount          int64        `json:"pendingCount" doc:"待處理訂單數"`
	InProgressCount       int64        `json:"inProgressCount" doc:"製作中訂單數"`
	CompletedToday        int64        `json:"completedToday" doc:"今日完成訂單數"`
	RevenueToday          float64      `json:"revenueToday" doc:"今日營收（已完成訂單）"`
	TotalRevenue          float64      `json:"totalRevenue" doc:"總營收（已完成訂單）"`
	AvgOrderValue         float64      `json:"avgOrderValue" doc:"平均客單價（已完成訂單）"`
	TopItems              []TopItem    `json:"topItems" doc:"熱銷品項（前 8 名）"`
	OrdersByHour          []HourBucket `json:"ordersByHour" doc:"每小時訂單分布"`
	AvgFulfillmentMinutes float64      `json:"avgFulfillmentMinutes" doc:"平均出餐時間（分鐘）"`
}

type GetStatsResponse struct {
	Body *Stats `json:"body"`
}
