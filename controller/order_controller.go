package controller

import (
	"context"
	"errors"

	orderModels "cafe-backend/data-models/order"
	"cafe-backend/metrics"
	"cafe-backend/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
)

type OrderController struct {
	logger       zerolog.Logger
	orderService *service.OrderService
}

func NewOrderController(logger zerolog.Logger, orderService *service.OrderService) *OrderController {
	return &OrderController{
		logger:       logger.With().Str("module", "order_controller").Logger(),
		orderService: orderService,
	}
}

func (c *OrderController) RegisterRoutes(api huma.API) {
	// 獲取所有訂單（出餐看板輪詢用，依建立時間由新到舊）
	huma.Register(api, huma.Operation{
		OperationID: "get-orders",
		Method:      "GET",
		Path:        "/api/orders",
		Summary:     "獲取所有訂單",
		Tags:        []string{"orders"},
	}, func(ctx context.Context, input *orderModels.GetOrdersInput) (*orderModels.OrdersResponse, error) {
		orders, err := c.orderService.GetOrders(ctx, input.Limit, input.Skip)
		if err != nil {
			c.logger.Error().Err(err).Msg("獲取訂單列表失敗")
			return nil, huma.Error500InternalServerError("獲取訂單列表失敗", err)
		}

		return &orderModels.OrdersResponse{Body: orders}, nil
	})

	// 創建訂單
	huma.Register(api, huma.Operation{
		OperationID: "create-order",
		Method:      "POST",
		Path:        "/api/orders",
		Summary:     "創建新訂單",
		Tags:        []string{"orders"},
	}, func(ctx context.Context, input *orderModels.CreateOrderInput) (*orderModels.OrderResponse, error) {
		o, err := c.orderService.CreateOrder(ctx, &input.Body, metrics.SourceAPI)
		if err != nil {
			c.logger.Error().Err(err).Msg("建立訂單失敗")
			return nil, huma.Error500InternalServerError("建立訂單失敗", err)
		}

		return &orderModels.OrderResponse{Body: o}, nil
	})

	// 更新訂單狀態
	huma.Register(api, huma.Operation{
		OperationID: "update-order-status",
		Method:      "PATCH",
		Path:        "/api/orders/{id}",
		Summary:     "更新訂單狀態",
		Tags:        []string{"orders"},
	}, func(ctx context.Context, input *orderModels.UpdateOrderStatusInput) (*orderModels.OrderResponse, error) {
		o, err := c.orderService.UpdateOrderStatus(ctx, input.ID, input.Body.Status)
		if err != nil {
			if errors.Is(err, service.ErrInvalidOrderStatus) {
				return nil, huma.Error400BadRequest("不合法的訂單狀態", err)
			}
			if errors.Is(err, service.ErrOrderNotFound) {
				c.logger.Warn().Str("order_id", input.ID).Msg("訂單不存在")
				return nil, huma.Error404NotFound("訂單不存在", err)
			}
			c.logger.Error().Err(err).Str("order_id", input.ID).Str("status", string(input.Body.Status)).Msg("更新訂單狀態失敗")
			return nil, huma.Error500InternalServerError("更新訂單狀態失敗", err)
		}

		return &orderModels.OrderResponse{Body: o}, nil
	})
}
