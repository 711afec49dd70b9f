package order

import (
	"cafe-backend/model"
)

type GetOrdersInput struct {
	Limit int64 `query:"limit" default:"100" doc:"每頁的訂單數量"`
	Skip  int64 `query:"skip" default:"0" doc:"跳過的訂單數量"`
}

type OrdersResponse struct {
	Body []*model.Order `json:"orders"`
}

type CreateOrderInput struct {
	Body model.OrderPayload `json:"order" doc:"訂單項目與總額"`
}

type OrderResponse struct {
	Body *model.Order `json:"order"`
}

type UpdateOrderStatusInput struct {
	ID   string `path:"id" maxLength:"24" minLength:"24" example:"507f1f77bcf86cd799439011" doc:"訂單ID"`
	Body struct {
		Status model.OrderStatus `json:"status" doc:"訂單狀態" example:"in_progress"`
	} `json:"body"`
}

type ExportOrdersResponse struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}
