package utils

import (
	"encoding/json"
	"regexp"
	"strings"

	"cafe-backend/model"
)

// 只認第一個 ```json 圍欄區塊，多個區塊不合併
var orderJSONBlockRe = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")

// ExtractOrderJSON 從模型回覆文字中抽取訂單 JSON。
// 找到帶 json 標籤的圍欄區塊、內容可解析、且 items 為陣列、total 為數字時回傳訂單資料；
// 其餘一律回傳 nil（視為沒有訂單），模型的原文交由呼叫端原樣回覆給客人。
func ExtractOrderJSON(text string) *model.OrderPayload {
	match := orderJSONBlockRe.FindStringSubmatch(text)
	if match == nil {
		return nil
	}

	raw := strings.TrimSpace(match[1])

	// 先用寬鬆結構驗證欄位形狀，items 缺失或 total 非數字都算沒有訂單
	var shape struct {
		Items *json.RawMessage `json:"items"`
		Total *float64         `json:"total"`
	}
	if err := json.Unmarshal([]byte(raw), &shape); err != nil {
		return nil
	}
	if shape.Items == nil || shape.Total == nil {
		return nil
	}

	// items 必須是 JSON 陣列，null 或物件都不算
	if !strings.HasPrefix(strings.TrimSpace(string(*shape.Items)), "[") {
		return nil
	}

	var items []model.LineItem
	if err := json.Unmarshal(*shape.Items, &items); err != nil {
		return nil
	}

	return &model.OrderPayload{
		Items: items,
		Total: *shape.Total,
	}
}
