package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"cafe-backend/data-models/dashboard"
	"cafe-backend/infra"
	"cafe-backend/metrics"
	"cafe-backend/model"
	"cafe-backend/utils"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
)

const topItemsLimit = 8

type DashboardService struct {
	logger       zerolog.Logger
	mongoDB      *infra.MongoDB
	orderService *OrderService
}

func NewDashboardService(logger zerolog.Logger, mongoDB *infra.MongoDB, orderService *OrderService) *DashboardService {
	return &DashboardService{
		logger:       logger.With().Str("module", "dashboard_service").Logger(),
		mongoDB:      mongoDB,
		orderService: orderService,
	}
}

// GetDashboardStats 彙整營運統計：今日各狀態訂單數走 Mongo 計數，
// 營收、熱銷品項、尖峰時段等走全量訂單的純函數彙整
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*dashboard.Stats, error) {
	startTime := time.Now()
	opStatus := metrics.StatusSuccess
	defer func() {
		metrics.RecordServiceOperation(metrics.ServiceTypeDashboard, metrics.OperationStats, opStatus, metrics.SourceAPI, time.Since(startTime))
	}()

	stats := &dashboard.Stats{}

	if err := s.fillTodayCounts(ctx, stats); err != nil {
		opStatus = metrics.StatusError
		return nil, err
	}

	orders, err := s.fetchAllOrders(ctx)
	if err != nil {
		opStatus = metrics.StatusError
		return nil, err
	}

	totalRevenue, avgOrderValue := computeRevenueStats(orders)
	stats.TotalRevenue = totalRevenue
	stats.AvgOrderValue = avgOrderValue
	stats.RevenueToday = computeRevenueToday(orders, utils.NowUTC())
	stats.TopItems = computeTopItems(orders, topItemsLimit)
	stats.OrdersByHour = computeOrdersByHour(orders)
	stats.AvgFulfillmentMinutes = computeAvgFulfillmentMinutes(orders)

	return stats, nil
}

func (s *DashboardService) fillTodayCounts(ctx context.Context, stats *dashboard.Stats) error {
	collection := s.mongoDB.GetCollection("orders")

	dayStart, dayEnd := utils.StoreDayBounds(utils.NowUTC())
	todayFilter := bson.M{"created_at": bson.M{"$gte": dayStart, "$lt": dayEnd}}

	ordersToday, err := collection.CountDocuments(ctx, todayFilter)
	if err != nil {
		return fmt.Errorf("查詢今日訂單數失敗 (Failed to count today's orders): %w", err)
	}
	stats.OrdersToday = ordersToday

	pendingCount, err := collection.CountDocuments(ctx, bson.M{"status": model.OrderStatusPending})
	if err != nil {
		return err
	}
	stats.PendingCount = pendingCount

	inProgressCount, err := collection.CountDocuments(ctx, bson.M{"status": model.OrderStatusInProgress})
	if err != nil {
		return err
	}
	stats.InProgressCount = inProgressCount

	completedToday, err := collection.CountDocuments(ctx, bson.M{
		"status":     model.OrderStatusCompleted,
		"created_at": bson.M{"$gte": dayStart, "$lt": dayEnd},
	})
	if err != nil {
		return err
	}
	stats.CompletedToday = completedToday

	return nil
}

func (s *DashboardService) fetchAllOrders(ctx context.Context) ([]*model.Order, error) {
	collection := s.mongoDB.GetCollection("orders")
	cursor, err := collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("查詢訂單失敗 (Failed to query orders): %w", err)
	}
	defer cursor.Close(ctx)

	orders := make([]*model.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// computeRevenueStats 計算已完成訂單的總營收與平均客單價
func computeRevenueStats(orders []*model.Order) (totalRevenue, avgOrderValue float64) {
	var completedCount int
	for _, order := range orders {
		if order.Status != model.OrderStatusCompleted {
			continue
		}
		totalRevenue += order.Total
		completedCount++
	}
	totalRevenue = utils.RoundToCents(totalRevenue)
	if completedCount > 0 {
		avgOrderValue = utils.RoundToCents(totalRevenue / float64(completedCount))
	}
	return totalRevenue, avgOrderValue
}

// computeRevenueToday 計算今日（門市時區）已完成訂單的營收
func computeRevenueToday(orders []*model.Order, now time.Time) float64 {
	dayStart, dayEnd := utils.StoreDayBounds(now)
	var revenue float64
	for _, order := range orders {
		if order.Status != model.OrderStatusCompleted || order.CreatedAt == nil {
			continue
		}
		createdAt := *order.CreatedAt
		if createdAt.Before(dayStart) || !createdAt.Before(dayEnd) {
			continue
		}
		revenue += order.Total
	}
	return utils.RoundToCents(revenue)
}

// computeTopItems 統計熱銷品項，key 為 name 或 name (size)，取前 limit 名
func computeTopItems(orders []*model.Order, limit int) []dashboard.TopItem {
	counts := make(map[string]int)
	for _, order := range orders {
		for _, item := range order.Items {
			key := item.Name
			if item.Size != "" {
				key = fmt.Sprintf("%s (%s)", item.Name, item.Size)
			}
			counts[key] += item.Quantity
		}
	}

	items := make([]dashboard.TopItem, 0, len(counts))
	for name, count := range counts {
		items = append(items, dashboard.TopItem{Name: name, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Name < items[j].Name
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// computeOrdersByHour 統計每小時（門市時區）訂單數，僅回傳有訂單的時段
func computeOrdersByHour(orders []*model.Order) []dashboard.HourBucket {
	counts := make(map[int]int)
	for _, order := range orders {
		if order.CreatedAt == nil {
			continue
		}
		counts[utils.StoreHour(*order.CreatedAt)]++
	}

	buckets := make([]dashboard.HourBucket, 0, len(counts))
	for hour, count := range counts {
		buckets = append(buckets, dashboard.HourBucket{Hour: hour, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Hour < buckets[j].Hour })
	return buckets
}

// computeAvgFulfillmentMinutes 計算已完成訂單的平均出餐時間（分鐘）
func computeAvgFulfillmentMinutes(orders []*model.Order) float64 {
	var totalMinutes float64
	var count int
	for _, order := range orders {
		if order.Status != model.OrderStatusCompleted || order.CreatedAt == nil || order.CompletedAt == nil {
			continue
		}
		minutes := order.CompletedAt.Sub(*order.CreatedAt).Minutes()
		if minutes < 0 {
			continue
		}
		totalMinutes += minutes
		count++
	}
	if count == 0 {
		return 0
	}
	return totalMinutes / float64(count)
}

// ExportOrdersCSV 匯出全部訂單為 CSV（RFC 4180 引號規則由 encoding/csv 處理）
func (s *DashboardService) ExportOrdersCSV(ctx context.Context) ([]byte, error) {
	startTime := time.Now()
	opStatus := metrics.StatusSuccess
	defer func() {
		metrics.RecordServiceOperation(metrics.ServiceTypeDashboard, metrics.OperationExport, opStatus, metrics.SourceAPI, time.Since(startTime))
	}()

	orders, err := s.fetchAllOrders(ctx)
	if err != nil {
		opStatus = metrics.StatusError
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"id", "status", "total", "created_at", "completed_at", "items_json"}); err != nil {
		opStatus = metrics.StatusError
		return nil, err
	}

	for _, order := range orders {
		itemsJSON, err := json.Marshal(order.Items)
		if err != nil {
			opStatus = metrics.StatusError
			return nil, fmt.Errorf("序列化訂單品項失敗 (Failed to marshal order items): %w", err)
		}

		createdAt := ""
		if order.CreatedAt != nil {
			createdAt = order.CreatedAt.UTC().Format(time.RFC3339)
		}
		completedAt := ""
		if order.CompletedAt != nil {
			completedAt = order.CompletedAt.UTC().Format(time.RFC3339)
		}

		record := []string{
			order.HexID(),
			string(order.Status),
			strconv.FormatFloat(order.Total, 'f', 2, 64),
			createdAt,
			completedAt,
			string(itemsJSON),
		}
		if err := writer.Write(record); err != nil {
			opStatus = metrics.StatusError
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		opStatus = metrics.StatusError
		return nil, err
	}

	s.logger.Info().Int("order_count", len(orders)).Msg("訂單 CSV 匯出完成")
	return buf.Bytes(), nil
}
