package utils

import (
	"fmt"
	"strings"

	"cafe-backend/model"
)

// ShortOrderID 取訂單ID前八碼作為收據編號
func ShortOrderID(orderID string) string {
	if len(orderID) <= 8 {
		return orderID
	}
	return orderID[:8]
}

// FormatReceiptLine 格式化單一品項的收據行
// 格式：• 2x Latte (large) iced, oat milk, Extra Espresso Shot — $10.00
func FormatReceiptLine(item model.LineItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "• %dx %s", item.Quantity, item.Name)
	if item.Size != "" {
		fmt.Fprintf(&b, " (%s)", item.Size)
	}
	if item.Temperature != "" {
		fmt.Fprintf(&b, " %s", item.Temperature)
	}
	if item.Milk != "" {
		fmt.Fprintf(&b, ", %s milk", item.Milk)
	}
	if len(item.Modifiers) > 0 {
		fmt.Fprintf(&b, ", %s", strings.Join(item.Modifiers, ", "))
	}
	fmt.Fprintf(&b, " — $%.2f", item.LineTotal)
	return b.String()
}

// FormatReceipt 產生給客人的收據文字：收據編號、逐項明細與總金額
func FormatReceipt(orderID string, items []model.LineItem, total float64) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = FormatReceiptLine(item)
	}

	return fmt.Sprintf("Order placed! Receipt #%s\n\n%s\n\n**Total: $%.2f**\n\nPay at the counter when you pick up.",
		ShortOrderID(orderID), strings.Join(lines, "\n"), total)
}
