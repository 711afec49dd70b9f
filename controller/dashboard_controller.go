package controller

import (
	"context"

	dashboardModels "cafe-backend/data-models/dashboard"
	orderModels "cafe-backend/data-models/order"
	"cafe-backend/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
)

type DashboardController struct {
	logger           zerolog.Logger
	dashboardService *service.DashboardService
}

func NewDashboardController(logger zerolog.Logger, dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{
		logger:           logger.With().Str("module", "dashboard_controller").Logger(),
		dashboardService: dashboardService,
	}
}

func (c *DashboardController) RegisterRoutes(api huma.API) {
	// 營運統計
	huma.Register(api, huma.Operation{
		OperationID: "get-dashboard-stats",
		Method:      "GET",
		Path:        "/api/dashboard/stats",
		Summary:     "獲取營運儀表板統計",
		Tags:        []string{"dashboard"},
	}, func(ctx context.Context, input *struct{}) (*dashboardModels.GetStatsResponse, error) {
		stats, err := c.dashboardService.GetDashboardStats(ctx)
		if err != nil {
			c.logger.Error().Err(err).Msg("獲取儀表板統計失敗")
			return nil, huma.Error500InternalServerError("獲取儀表板統計失敗", err)
		}

		return &dashboardModels.GetStatsResponse{Body: stats}, nil
	})

	// 訂單 CSV 匯出
	huma.Register(api, huma.Operation{
		OperationID: "export-orders",
		Method:      "GET",
		Path:        "/api/orders/export",
		Summary:     "匯出訂單 CSV",
		Tags:        []string{"dashboard"},
	}, func(ctx context.Context, input *struct{}) (*orderModels.ExportOrdersResponse, error) {
		csvData, err := c.dashboardService.ExportOrdersCSV(ctx)
		if err != nil {
			c.logger.Error().Err(err).Msg("匯出訂單 CSV 失敗")
			return nil, huma.Error500InternalServerError("匯出訂單 CSV 失敗", err)
		}

		return &orderModels.ExportOrdersResponse{
			ContentType:        "text/csv; charset=utf-8",
			ContentDisposition: `attachment; filename="orders.csv"`,
			Body:               csvData,
		}, nil
	})
}
