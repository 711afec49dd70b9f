package utils

import (
	"testing"

	"cafe-backend/model"
)

func TestVerifyOrderPricingMatch(t *testing.T) {
	items := []model.LineItem{
		{Name: "Latte", Category: model.ItemCategoryDrink, Size: model.DrinkSizeLarge, Quantity: 2, UnitPrice: 5, LineTotal: 10},
		{Name: "Plain Croissant", Category: model.ItemCategoryPastry, Quantity: 1, UnitPrice: 3.5, LineTotal: 3.5},
	}

	ok, mismatches := VerifyOrderPricing(items, 13.5)
	if !ok {
		t.Errorf("金額吻合卻回報不符: %+v", mismatches)
	}
}

func TestVerifyOrderPricingAddOns(t *testing.T) {
	// 大杯拿鐵 5 + 燕麥奶 0.5 + 濃縮 shot 1.5 = 7
	items := []model.LineItem{
		{Name: "Latte", Category: model.ItemCategoryDrink, Size: model.DrinkSizeLarge, Milk: "Oat",
			Modifiers: []string{"Extra Espresso Shot"}, Quantity: 1, UnitPrice: 7, LineTotal: 7},
	}

	ok, mismatches := VerifyOrderPricing(items, 7)
	if !ok {
		t.Errorf("含加購的金額吻合卻回報不符: %+v", mismatches)
	}
}

func TestVerifyOrderPricingMismatch(t *testing.T) {
	// 模型報價 12，但菜單重算大杯冷萃兩杯應為 10
	items := []model.LineItem{
		{Name: "Cold Brew", Category: model.ItemCategoryDrink, Size: model.DrinkSizeLarge, Quantity: 2, UnitPrice: 6, LineTotal: 12},
	}

	ok, mismatches := VerifyOrderPricing(items, 12)
	if ok {
		t.Fatal("金額不符卻回報吻合")
	}
	if len(mismatches) == 0 {
		t.Fatal("應回報至少一筆不符")
	}
	if mismatches[0].Expected != 10 {
		t.Errorf("重算金額 = %v, 預期 10", mismatches[0].Expected)
	}
}

func TestVerifyOrderPricingUnknownItem(t *testing.T) {
	// 菜單上沒有的品項無從重算，只驗證總額
	items := []model.LineItem{
		{Name: "Secret Drink", Category: model.ItemCategoryDrink, Quantity: 1, UnitPrice: 9, LineTotal: 9},
	}

	if ok, _ := VerifyOrderPricing(items, 9); !ok {
		t.Error("未知品項只要總額一致就應視為吻合")
	}
	if ok, _ := VerifyOrderPricing(items, 10); ok {
		t.Error("總額與品項小計不一致時應回報不符")
	}
}

func TestRoundToCents(t *testing.T) {
	if got := RoundToCents(4.256); got != 4.26 {
		t.Errorf("RoundToCents(4.256) = %v, 預期 4.26", got)
	}
	if got := RoundToCents(13.5); got != 13.5 {
		t.Errorf("RoundToCents(13.5) = %v, 預期 13.5", got)
	}
}
