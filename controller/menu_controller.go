package controller

import (
	"context"

	menuModels "cafe-backend/data-models/menu"
	"cafe-backend/model"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
)

type MenuController struct {
	logger zerolog.Logger
}

func NewMenuController(logger zerolog.Logger) *MenuController {
	return &MenuController{
		logger: logger.With().Str("module", "menu_controller").Logger(),
	}
}

func (c *MenuController) RegisterRoutes(api huma.API) {
	// 完整菜單，前端據此渲染價目
	huma.Register(api, huma.Operation{
		OperationID: "get-menu",
		Method:      "GET",
		Path:        "/api/menu",
		Summary:     "獲取完整菜單",
		Tags:        []string{"menu"},
	}, func(ctx context.Context, input *struct{}) (*menuModels.MenuResponse, error) {
		return &menuModels.MenuResponse{Body: &model.CafeMenu}, nil
	})
}
