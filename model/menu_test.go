package model

import "testing"

func TestGetBasePrice(t *testing.T) {
	testCases := []struct {
		name     string
		category MenuCategory
		drink    string
		size     DrinkSize
		want     float64
	}{
		{"大杯冷萃", MenuCategoryCoffee, "Cold Brew", DrinkSizeLarge, 5},
		{"小杯冷萃", MenuCategoryCoffee, "Cold Brew", DrinkSizeSmall, 4},
		{"大杯拿鐵", MenuCategoryCoffee, "Latte", DrinkSizeLarge, 5},
		{"小杯美式", MenuCategoryCoffee, "Americano", DrinkSizeSmall, 3},
		{"大杯抹茶拿鐵", MenuCategoryTea, "Matcha Latte", DrinkSizeLarge, 5.25},
		{"未知飲品", MenuCategoryCoffee, "Espresso Tonic", DrinkSizeLarge, 0},
		{"分類錯置", MenuCategoryTea, "Latte", DrinkSizeLarge, 0},
		{"未知分類", MenuCategory("juice"), "Latte", DrinkSizeLarge, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := GetBasePrice(tc.category, tc.drink, tc.size)
			if got != tc.want {
				t.Errorf("GetBasePrice(%s, %s, %s) = %v, 預期 %v", tc.category, tc.drink, tc.size, got, tc.want)
			}
		})
	}
}

func TestGetAddOnPrice(t *testing.T) {
	if got := GetAddOnPrice("Oat Milk"); got != 0.5 {
		t.Errorf("燕麥奶加購價 = %v, 預期 0.5", got)
	}
	// 不分大小寫
	if got := GetAddOnPrice("oat milk"); got != 0.5 {
		t.Errorf("燕麥奶（小寫）加購價 = %v, 預期 0.5", got)
	}
	if got := GetAddOnPrice("Whole Milk"); got != 0 {
		t.Errorf("全脂奶加購價 = %v, 預期 0", got)
	}
	if got := GetAddOnPrice("Soy Milk"); got != 0 {
		t.Errorf("未知加購項目價格 = %v, 預期 0", got)
	}
}

func TestGetPastryPrice(t *testing.T) {
	if got := GetPastryPrice("Plain Croissant"); got != 3.5 {
		t.Errorf("可頌價格 = %v, 預期 3.5", got)
	}
	if got := GetPastryPrice("chocolate croissant"); got != 4 {
		t.Errorf("巧克力可頌（小寫）價格 = %v, 預期 4", got)
	}
	if got := GetPastryPrice("Bagel"); got != 0 {
		t.Errorf("未知點心價格 = %v, 預期 0", got)
	}
}

func TestFindDrink(t *testing.T) {
	d, category, ok := FindDrink("Cold Brew")
	if !ok || category != MenuCategoryCoffee {
		t.Fatalf("應在咖啡類找到 Cold Brew, ok=%v category=%s", ok, category)
	}
	if len(d.Temps) != 1 || d.Temps[0] != DrinkTempIced {
		t.Errorf("Cold Brew 應僅供應冰飲, temps=%v", d.Temps)
	}

	if _, _, ok := FindDrink("Flat White"); ok {
		t.Error("不應找到未在菜單上的飲品")
	}
}

func TestDrinkTempOptions(t *testing.T) {
	temps := DrinkTempOptions("Latte")
	if len(temps) != 2 {
		t.Errorf("拿鐵應供應冷熱兩種溫度, temps=%v", temps)
	}
	if got := DrinkTempOptions("Flat White"); got != nil {
		t.Errorf("未知飲品的溫度選項應為空, got=%v", got)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	if !OrderStatusPending.IsValid() || !OrderStatusInProgress.IsValid() || !OrderStatusCompleted.IsValid() {
		t.Error("三個標準狀態都應為合法狀態")
	}
	if OrderStatus("cancelled").IsValid() {
		t.Error("cancelled 不是本系統的合法狀態")
	}
	if !OrderStatusCompleted.IsBackwardTransition(OrderStatusPending) {
		t.Error("completed → pending 應被視為倒退轉換")
	}
	if OrderStatusPending.IsBackwardTransition(OrderStatusInProgress) {
		t.Error("pending → in_progress 不是倒退轉換")
	}
	if OrderStatusPending.IsBackwardTransition(OrderStatusPending) {
		t.Error("狀態不變不算倒退轉換")
	}
}
