package model

import "strings"

// NYC Coffee 菜單。價格為美元，尺寸 small (12oz) / large (16oz)。
// 靜態資料，隨程式編譯，不落地。

// MenuDrink 菜單上的一款飲品與其兩種尺寸的基礎價
type MenuDrink struct {
	Name  string      `json:"name" doc:"飲品名稱"`
	Small float64     `json:"small" doc:"小杯價格"`
	Large float64     `json:"large" doc:"大杯價格"`
	Temps []DrinkTemp `json:"temps" doc:"可供應的溫度"`
}

// MenuFlatItem 單一價格的菜單品項（加購或點心）
type MenuFlatItem struct {
	Name  string  `json:"name" doc:"品項名稱"`
	Price float64 `json:"price" doc:"價格"`
}

// Menu 完整菜單目錄
type Menu struct {
	Coffee           []MenuDrink    `json:"coffee" doc:"咖啡類"`
	Tea              []MenuDrink    `json:"tea" doc:"茶類"`
	AddOns           []MenuFlatItem `json:"addOns" doc:"加購項目"`
	Pastries         []MenuFlatItem `json:"pastries" doc:"點心類"`
	SweetnessOptions []string       `json:"sweetnessOptions" doc:"甜度選項"`
	IceOptions       []string       `json:"iceOptions" doc:"冰量選項"`
	MaxEspressoShots int            `json:"maxEspressoShots" doc:"單杯濃縮 shot 上限"`
}

// MaxEspressoShots 單杯飲品的濃縮 shot 上限
const MaxEspressoShots = 4

var CafeMenu = Menu{
	Coffee: []MenuDrink{
		{Name: "Americano", Small: 3, Large: 4, Temps: []DrinkTemp{DrinkTempHot, DrinkTempIced}},
		{Name: "Latte", Small: 4, Large: 5, Temps: []DrinkTemp{DrinkTempHot, DrinkTempIced}},
		{Name: "Cold Brew", Small: 4, Large: 5, Temps: []DrinkTemp{DrinkTempIced}},
		{Name: "Mocha", Small: 4.5, Large: 5.5, Temps: []DrinkTemp{DrinkTempHot, DrinkTempIced}},
		{Name: "Coffee Frappuccino", Small: 5.5, Large: 6, Temps: []DrinkTemp{DrinkTempIced}},
	},
	Tea: []MenuDrink{
		{Name: "Black Tea", Small: 3, Large: 3.75, Temps: []DrinkTemp{DrinkTempHot, DrinkTempIced}},
		{Name: "Jasmine Tea", Small: 3, Large: 3.75, Temps: []DrinkTemp{DrinkTempHot, DrinkTempIced}},
		{Name: "Lemon Green Tea", Small: 3.5, Large: 4.25, Temps: []DrinkTemp{DrinkTempHot, DrinkTempIced}},
		{Name: "Matcha Latte", Small: 4.5, Large: 5.25, Temps: []DrinkTemp{DrinkTempHot, DrinkTempIced}},
	},
	AddOns: []MenuFlatItem{
		{Name: "Whole Milk", Price: 0},
		{Name: "Skim Milk", Price: 0},
		{Name: "Oat Milk", Price: 0.5},
		{Name: "Almond Milk", Price: 0.75},
		{Name: "Extra Espresso Shot", Price: 1.5},
		{Name: "Extra Matcha Shot", Price: 1.5},
		{Name: "1 Pump Caramel Syrup", Price: 0.5},
		{Name: "1 Pump Hazelnut Syrup", Price: 0.5},
	},
	Pastries: []MenuFlatItem{
		{Name: "Plain Croissant", Price: 3.5},
		{Name: "Chocolate Croissant", Price: 4},
		{Name: "Chocolate Chip Cookie", Price: 2.5},
		{Name: "Banana Bread (Slice)", Price: 3},
	},
	SweetnessOptions: []string{"No Sugar", "Less Sugar", "Extra Sugar"},
	IceOptions:       []string{"No Ice", "Less Ice", "Extra Ice"},
	MaxEspressoShots: MaxEspressoShots,
}

// GetBasePrice 查詢飲品在指定分類與尺寸下的基礎價，找不到回傳 0
func GetBasePrice(category MenuCategory, drinkName string, size DrinkSize) float64 {
	var list []MenuDrink
	switch category {
	case MenuCategoryCoffee:
		list = CafeMenu.Coffee
	case MenuCategoryTea:
		list = CafeMenu.Tea
	default:
		return 0
	}

	for _, d := range list {
		if d.Name == drinkName {
			if size == DrinkSizeSmall {
				return d.Small
			}
			return d.Large
		}
	}
	return 0
}

// GetAddOnPrice 查詢加購項目價格（不分大小寫），找不到回傳 0
func GetAddOnPrice(name string) float64 {
	for _, a := range CafeMenu.AddOns {
		if strings.EqualFold(a.Name, name) {
			return a.Price
		}
	}
	return 0
}

// GetPastryPrice 查詢點心價格（不分大小寫），找不到回傳 0
func GetPastryPrice(name string) float64 {
	for _, p := range CafeMenu.Pastries {
		if strings.EqualFold(p.Name, name) {
			return p.Price
		}
	}
	return 0
}

// DrinkTempOptions 回傳飲品可供應的溫度，找不到飲品時回傳空切片
func DrinkTempOptions(drinkName string) []DrinkTemp {
	drink, _, ok := FindDrink(drinkName)
	if !ok {
		return nil
	}
	return drink.Temps
}

// FindDrink 依名稱在兩個分類中尋找飲品，回傳飲品與其分類
func FindDrink(drinkName string) (*MenuDrink, MenuCategory, bool) {
	for i := range CafeMenu.Coffee {
		if strings.EqualFold(CafeMenu.Coffee[i].Name, drinkName) {
			return &CafeMenu.Coffee[i], MenuCategoryCoffee, true
		}
	}
	for i := range CafeMenu.Tea {
		if strings.EqualFold(CafeMenu.Tea[i].Name, drinkName) {
			return &CafeMenu.Tea[i], MenuCategoryTea, true
		}
	}
	return nil, "", false
}
