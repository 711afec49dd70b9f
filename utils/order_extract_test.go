package utils

import "testing"

func TestExtractOrderJSON(t *testing.T) {
	wellFormed := "Got it! Here is your order:\n```json\n{\"items\": [{\"name\": \"Latte\", \"category\": \"drink\", \"size\": \"large\", \"quantity\": 2, \"unitPrice\": 5, \"lineTotal\": 10}], \"total\": 10}\n```"

	payload := ExtractOrderJSON(wellFormed)
	if payload == nil {
		t.Fatal("合法的 json 圍欄區塊應被抽取出訂單")
	}
	if len(payload.Items) != 1 {
		t.Fatalf("items 數量 = %d, 預期 1", len(payload.Items))
	}
	if payload.Items[0].Name != "Latte" || payload.Items[0].Quantity != 2 || payload.Items[0].LineTotal != 10 {
		t.Errorf("品項內容不符: %+v", payload.Items[0])
	}
	if payload.Total != 10 {
		t.Errorf("total = %v, 預期 10", payload.Total)
	}
}

func TestExtractOrderJSONNoOrder(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{"純文字回覆", "Sure! Would you like that hot or iced?"},
		{"沒有語言標籤的圍欄", "```\n{\"items\": [], \"total\": 0}\n```"},
		{"區塊內不是JSON", "```json\nnot json at all\n```"},
		{"缺少items", "```json\n{\"total\": 5}\n```"},
		{"缺少total", "```json\n{\"items\": []}\n```"},
		{"items不是陣列", "```json\n{\"items\": \"Latte\", \"total\": 5}\n```"},
		{"items為null", "```json\n{\"items\": null, \"total\": 5}\n```"},
		{"total不是數字", "```json\n{\"items\": [], \"total\": \"five\"}\n```"},
		{"空字串", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if payload := ExtractOrderJSON(tc.text); payload != nil {
				t.Errorf("應回傳 nil（沒有訂單），卻得到 %+v", payload)
			}
		})
	}
}

func TestExtractOrderJSONFirstBlockOnly(t *testing.T) {
	text := "```json\n{\"items\": [{\"name\": \"Americano\", \"quantity\": 1, \"unitPrice\": 3, \"lineTotal\": 3}], \"total\": 3}\n```\nand another:\n```json\n{\"items\": [{\"name\": \"Mocha\", \"quantity\": 1, \"unitPrice\": 4.5, \"lineTotal\": 4.5}], \"total\": 4.5}\n```"

	payload := ExtractOrderJSON(text)
	if payload == nil {
		t.Fatal("第一個區塊合法時應抽取成功")
	}
	if len(payload.Items) != 1 || payload.Items[0].Name != "Americano" {
		t.Errorf("只應採用第一個區塊, items=%+v", payload.Items)
	}
	if payload.Total != 3 {
		t.Errorf("total = %v, 預期第一個區塊的 3", payload.Total)
	}
}

func TestExtractOrderJSONFirstBlockMalformed(t *testing.T) {
	// 第一個區塊壞掉時不往後找，整段視為沒有訂單
	text := "```json\n{broken\n```\n```json\n{\"items\": [], \"total\": 1}\n```"
	if payload := ExtractOrderJSON(text); payload != nil {
		t.Errorf("第一個區塊不合法時應回傳 nil, 卻得到 %+v", payload)
	}
}
