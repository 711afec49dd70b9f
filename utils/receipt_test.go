package utils

import (
	"strings"
	"testing"

	"cafe-backend/model"
)

func TestFormatReceipt(t *testing.T) {
	items := []model.LineItem{
		{Name: "Latte", Category: model.ItemCategoryDrink, Size: model.DrinkSizeLarge, Quantity: 2, UnitPrice: 5, LineTotal: 10},
		{Name: "Plain Croissant", Category: model.ItemCategoryPastry, Quantity: 1, UnitPrice: 3.5, LineTotal: 3.5},
	}

	receipt := FormatReceipt("684a73ad0e3a583c37e4b30d", items, 13.5)

	if !strings.Contains(receipt, "Receipt #684a73ad") {
		t.Errorf("收據編號應為ID前八碼:\n%s", receipt)
	}
	if !strings.Contains(receipt, "• 2x Latte (large) — $10.00") {
		t.Errorf("拿鐵明細行不符:\n%s", receipt)
	}
	if !strings.Contains(receipt, "• 1x Plain Croissant — $3.50") {
		t.Errorf("可頌明細行不符:\n%s", receipt)
	}
	if !strings.Contains(receipt, "Total: $13.50") {
		t.Errorf("總金額行不符:\n%s", receipt)
	}
}

func TestFormatReceiptLineOptions(t *testing.T) {
	line := FormatReceiptLine(model.LineItem{
		Name:        "Latte",
		Category:    model.ItemCategoryDrink,
		Size:        model.DrinkSizeLarge,
		Temperature: model.DrinkTempIced,
		Milk:        "oat",
		Modifiers:   []string{"Extra Espresso Shot", "1 Pump Caramel Syrup"},
		Quantity:    1,
		UnitPrice:   7.5,
		LineTotal:   7.5,
	})

	want := "• 1x Latte (large) iced, oat milk, Extra Espresso Shot, 1 Pump Caramel Syrup — $7.50"
	if line != want {
		t.Errorf("明細行 = %q, 預期 %q", line, want)
	}
}

func TestShortOrderID(t *testing.T) {
	if got := ShortOrderID("684a73ad0e3a583c37e4b30d"); got != "684a73ad" {
		t.Errorf("ShortOrderID = %q, 預期 684a73ad", got)
	}
	if got := ShortOrderID("abc"); got != "abc" {
		t.Errorf("短ID應原樣返回, got %q", got)
	}
}
