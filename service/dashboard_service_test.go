package service

import (
	"testing"
	"time"

	"cafe-backend/model"
)

func completedOrder(total float64, createdAt time.Time, fulfillMinutes float64) *model.Order {
	completedAt := createdAt.Add(time.Duration(fulfillMinutes * float64(time.Minute)))
	return &model.Order{
		Status:      model.OrderStatusCompleted,
		Total:       total,
		CreatedAt:   &createdAt,
		CompletedAt: &completedAt,
	}
}

func TestComputeRevenueStats(t *testing.T) {
	now := time.Date(2025, 6, 12, 15, 0, 0, 0, time.UTC)
	orders := []*model.Order{
		completedOrder(3.00, now, 5),
		completedOrder(4.50, now, 5),
		completedOrder(5.25, now, 5),
		{Status: model.OrderStatusPending, Total: 99.99, CreatedAt: &now},
	}

	totalRevenue, avgOrderValue := computeRevenueStats(orders)
	if totalRevenue != 12.75 {
		t.Errorf("totalRevenue = %v, 預期 12.75（未完成訂單不計入）", totalRevenue)
	}
	if avgOrderValue != 4.25 {
		t.Errorf("avgOrderValue = %v, 預期 4.25", avgOrderValue)
	}
}

func TestComputeRevenueStatsEmpty(t *testing.T) {
	totalRevenue, avgOrderValue := computeRevenueStats(nil)
	if totalRevenue != 0 || avgOrderValue != 0 {
		t.Errorf("無訂單時應為 0/0, 得到 %v/%v", totalRevenue, avgOrderValue)
	}
}

func TestComputeTopItems(t *testing.T) {
	now := time.Now()
	orders := []*model.Order{
		{
			Status:    model.OrderStatusCompleted,
			CreatedAt: &now,
			Items: []model.LineItem{
				{Name: "Latte", Category: model.ItemCategoryDrink, Size: model.DrinkSizeLarge, Quantity: 2},
				{Name: "Plain Croissant", Category: model.ItemCategoryPastry, Quantity: 1},
			},
		},
		{
			Status:    model.OrderStatusPending,
			CreatedAt: &now,
			Items: []model.LineItem{
				{Name: "Latte", Category: model.ItemCategoryDrink, Size: model.DrinkSizeLarge, Quantity: 3},
				{Name: "Latte", Category: model.ItemCategoryDrink, Size: model.DrinkSizeSmall, Quantity: 1},
			},
		},
	}

	items := computeTopItems(orders, 8)
	if len(items) != 3 {
		t.Fatalf("品項數 = %d, 預期 3（尺寸不同視為不同品項）", len(items))
	}
	if items[0].Name != "Latte (large)" || items[0].Count != 5 {
		t.Errorf("第一名 = %+v, 預期 Latte (large) x5", items[0])
	}
	if items[1].Name != "Latte (small)" && items[1].Name != "Plain Croissant" {
		t.Errorf("第二名 = %+v", items[1])
	}
}

func TestComputeTopItemsLimit(t *testing.T) {
	now := time.Now()
	var items []model.LineItem
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	for i, name := range names {
		items = append(items, model.LineItem{Name: name, Category: model.ItemCategoryPastry, Quantity: len(names) - i})
	}
	orders := []*model.Order{{CreatedAt: &now, Items: items}}

	top := computeTopItems(orders, 8)
	if len(top) != 8 {
		t.Errorf("應只取前 8 名, 得到 %d", len(top))
	}
	if top[0].Name != "A" {
		t.Errorf("第一名 = %s, 預期 A", top[0].Name)
	}
}

func TestComputeAvgFulfillmentMinutes(t *testing.T) {
	now := time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)
	orders := []*model.Order{
		completedOrder(3.00, now, 4),
		completedOrder(4.00, now, 8),
		{Status: model.OrderStatusInProgress, Total: 5, CreatedAt: &now},
	}

	avg := computeAvgFulfillmentMinutes(orders)
	if avg != 6 {
		t.Errorf("平均出餐時間 = %v 分鐘, 預期 6", avg)
	}
}

func TestComputeAvgFulfillmentMinutesNoCompleted(t *testing.T) {
	now := time.Now()
	orders := []*model.Order{{Status: model.OrderStatusPending, CreatedAt: &now}}
	if avg := computeAvgFulfillmentMinutes(orders); avg != 0 {
		t.Errorf("無完成訂單時應為 0, 得到 %v", avg)
	}
}

func TestComputeOrdersByHour(t *testing.T) {
	morning := time.Date(2025, 6, 12, 13, 30, 0, 0, time.UTC) // 門市時區 09:30
	afternoon := time.Date(2025, 6, 12, 19, 0, 0, 0, time.UTC)
	orders := []*model.Order{
		{CreatedAt: &morning},
		{CreatedAt: &morning},
		{CreatedAt: &afternoon},
	}

	buckets := computeOrdersByHour(orders)
	if len(buckets) != 2 {
		t.Fatalf("時段數 = %d, 預期 2", len(buckets))
	}
	if buckets[0].Count != 2 {
		t.Errorf("較早時段訂單數 = %d, 預期 2", buckets[0].Count)
	}
	if buckets[0].Hour >= buckets[1].Hour {
		t.Error("時段應依小時遞增排序")
	}
}

func TestComputeRevenueToday(t *testing.T) {
	now := time.Date(2025, 6, 12, 18, 0, 0, 0, time.UTC)
	yesterday := now.Add(-48 * time.Hour)
	orders := []*model.Order{
		completedOrder(5.00, now, 5),
		completedOrder(7.50, now, 5),
		completedOrder(100.00, yesterday, 5),
	}

	if revenue := computeRevenueToday(orders, now); revenue != 12.5 {
		t.Errorf("今日營收 = %v, 預期 12.5（不含昨日訂單）", revenue)
	}
}
