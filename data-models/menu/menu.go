package menu

import (
	"cafe-backend/model"
)

type MenuResponse struct {
	Body *model.Menu `json:"menu"`
}
