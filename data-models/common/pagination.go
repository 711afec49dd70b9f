package common

// 列表查詢的預設與上限筆數
const (
	DefaultListLimit int64 = 100
	MaxListLimit     int64 = 500
)

// ListWindow 以 limit/skip 表示的列表查詢視窗
type ListWindow struct {
	Limit int64
	Skip  int64
}

// NewListWindow 正規化 limit/skip，limit <= 0 使用預設值，超過上限則裁切
func NewListWindow(limit, skip int64) ListWindow {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if skip < 0 {
		skip = 0
	}
	return ListWindow{Limit: limit, Skip: skip}
}
