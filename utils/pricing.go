package utils

import (
	"math"

	"cafe-backend/model"
)

// RoundToCents 四捨五入到分
func RoundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// priceTolerance 浮點比較容差（半分錢）
const priceTolerance = 0.005

// PriceMismatch 描述一筆與菜單重算結果不符的品項
type PriceMismatch struct {
	ItemName string  `json:"item_name"`
	Reported float64 `json:"reported"`
	Expected float64 `json:"expected"`
}

// ExpectedUnitPrice 依菜單重算品項單價：飲品為基礎價加上奶類與加購，點心為固定價。
// 菜單上查不到的品項回傳 0 與 false。
func ExpectedUnitPrice(item model.LineItem) (float64, bool) {
	if item.Category == model.ItemCategoryPastry {
		price := model.GetPastryPrice(item.Name)
		return price, price > 0
	}

	drink, _, ok := model.FindDrink(item.Name)
	if !ok {
		return 0, false
	}

	price := drink.Large
	if item.Size == model.DrinkSizeSmall {
		price = drink.Small
	}

	if item.Milk != "" {
		price += model.GetAddOnPrice(item.Milk + " Milk")
	}
	for _, m := range item.Modifiers {
		price += model.GetAddOnPrice(m)
	}
	return RoundToCents(price), true
}

// VerifyOrderPricing 以菜單重算每個品項與總額，回傳是否吻合與不符清單。
// 模型輸出的金額是信任邊界：重算結果只用來標記與告警，不阻擋訂單成立。
func VerifyOrderPricing(items []model.LineItem, total float64) (bool, []PriceMismatch) {
	var mismatches []PriceMismatch
	var sum float64

	for _, item := range items {
		sum += item.LineTotal

		expectedUnit, known := ExpectedUnitPrice(item)
		if !known {
			// 菜單上沒有的品項無從重算，只能信任模型
			continue
		}
		expectedLine := RoundToCents(expectedUnit * float64(item.Quantity))
		if math.Abs(expectedLine-item.LineTotal) > priceTolerance {
			mismatches = append(mismatches, PriceMismatch{
				ItemName: item.Name,
				Reported: item.LineTotal,
				Expected: expectedLine,
			})
		}
	}

	if math.Abs(RoundToCents(sum)-RoundToCents(total)) > priceTolerance {
		mismatches = append(mismatches, PriceMismatch{
			ItemName: "total",
			Reported: total,
			Expected: RoundToCents(sum),
		})
	}

	return len(mismatches) == 0, mismatches
}
