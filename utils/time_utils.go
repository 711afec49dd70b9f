package utils

import "time"

// GetStoreLocation 取得門市時區（紐約）
func GetStoreLocation() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// 無時區資料庫時退回固定偏移（EST）
		return time.FixedZone("America/New_York", -5*3600)
	}
	return loc
}

// NowUTC 取得當前 UTC 時間（用於存儲到 MongoDB）
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StoreDayBounds 回傳指定時間所在門市營業日的起訖（當地時間 00:00 起算）
func StoreDayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(GetStoreLocation())
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	return start, start.Add(24 * time.Hour)
}

// StoreHour 回傳時間在門市時區的小時（0-23），用於尖峰時段統計
func StoreHour(t time.Time) int {
	return t.In(GetStoreLocation()).Hour()
}

// FormatStoreDateTime 將時間轉換為門市時區的完整日期時間格式 (YYYY-MM-DD HH:mm:ss)
func FormatStoreDateTime(t time.Time) string {
	return t.In(GetStoreLocation()).Format("2006-01-02 15:04:05")
}
