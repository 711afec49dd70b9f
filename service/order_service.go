package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cafe-backend/data-models/common"
	"cafe-backend/infra"
	"cafe-backend/metrics"
	"cafe-backend/model"
	"cafe-backend/utils"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrOrderNotFound 找不到訂單
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidOrderStatus 不合法的訂單狀態
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

type OrderService struct {
	logger       zerolog.Logger
	mongoDB      *infra.MongoDB
	rabbitMQ     *infra.RabbitMQ
	eventManager *infra.RedisEventManager
}

func NewOrderService(logger zerolog.Logger, mongoDB *infra.MongoDB, rabbitMQ *infra.RabbitMQ, eventManager *infra.RedisEventManager) *OrderService {
	return &OrderService{
		logger:       logger.With().Str("module", "order_service").Logger(),
		mongoDB:      mongoDB,
		rabbitMQ:     rabbitMQ,
		eventManager: eventManager,
	}
}

// CreateOrder 建立訂單：伺服器端依菜單重算金額、寫入 pending 狀態、發布建單事件。
// 金額不符只標記 price_verified=false 並記錄警告，不阻擋建單。
func (s *OrderService) CreateOrder(ctx context.Context, payload *model.OrderPayload, source metrics.OperationSource) (*model.Order, error) {
	startTime := time.Now()
	opStatus := metrics.StatusSuccess
	defer func() {
		metrics.RecordOrderOperation(metrics.OperationCreate, opStatus, source, time.Since(startTime))
	}()

	ctx, span := infra.StartOrderSpan(ctx, "create",
		infra.AttrInt("item_count", len(payload.Items)),
		infra.AttrString("source", string(source)),
	)
	defer span.End()

	verified, mismatches := utils.VerifyOrderPricing(payload.Items, payload.Total)
	if !verified {
		s.logger.Warn().
			Interface("mismatches", mismatches).
			Float64("claimed_total", payload.Total).
			Msg("訂單金額與菜單重算結果不符，仍接受建單")
	}

	now := utils.NowUTC()
	order := &model.Order{
		Items:         payload.Items,
		Status:        model.OrderStatusPending,
		Total:         utils.RoundToCents(payload.Total),
		PriceVerified: &verified,
		CreatedAt:     &now,
	}

	collection := s.mongoDB.GetCollection("orders")
	result, err := collection.InsertOne(ctx, order)
	if err != nil {
		opStatus = metrics.StatusError
		infra.RecordError(span, err, "建立訂單失敗")
		s.logger.Error().Err(err).Msg("建立訂單失敗 (Failed to insert order)")
		return nil, fmt.Errorf("建立訂單失敗 (Failed to insert order): %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = &oid
	}

	infra.MarkSuccess(span, infra.AttrString("order_id", order.HexID()))
	metrics.RecordOrderCreated(source, verified)
	s.logger.Info().
		Str("order_id", order.HexID()).
		Int("item_count", len(order.Items)).
		Float64("total", order.Total).
		Bool("price_verified", verified).
		Msg("訂單已建立")

	s.publishOrderEvent(infra.NewOrderEvent(model.OrderEventCreated, order, "", order.Status))

	return order, nil
}

// GetOrders 取得訂單列表，依建立時間由新到舊排序
func (s *OrderService) GetOrders(ctx context.Context, limit, skip int64) ([]*model.Order, error) {
	startTime := time.Now()
	opStatus := metrics.StatusSuccess
	defer func() {
		metrics.RecordOrderOperation(metrics.OperationList, opStatus, metrics.SourceAPI, time.Since(startTime))
	}()

	window := common.NewListWindow(limit, skip)

	collection := s.mongoDB.GetCollection("orders")
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(window.Limit).
		SetSkip(window.Skip)

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		opStatus = metrics.StatusError
		return nil, fmt.Errorf("查詢訂單失敗 (Failed to query orders): %w", err)
	}
	defer cursor.Close(ctx)

	orders := make([]*model.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		opStatus = metrics.StatusError
		return nil, err
	}

	return orders, nil
}

// GetOrderByID 依ID取得單筆訂單
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	collection := s.mongoDB.GetCollection("orders")
	var order model.Order
	if err := collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	return &order, nil
}

// UpdateOrderStatus 更新訂單狀態。completed 時蓋上完成時間；
// 倒退轉換（人工修正）照常接受但記錄警告。
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, newStatus model.OrderStatus) (*model.Order, error) {
	startTime := time.Now()
	opStatus := metrics.StatusSuccess
	defer func() {
		metrics.RecordOrderOperation(metrics.OperationUpdateStatus, opStatus, metrics.SourceAPI, time.Since(startTime))
	}()

	if !newStatus.IsValid() {
		opStatus = metrics.StatusError
		return nil, ErrInvalidOrderStatus
	}

	existing, err := s.GetOrderByID(ctx, id)
	if err != nil {
		opStatus = metrics.StatusError
		return nil, err
	}
	oldStatus := existing.Status

	if oldStatus.IsBackwardTransition(newStatus) {
		s.logger.Warn().
			Str("order_id", id).
			Str("old_status", string(oldStatus)).
			Str("new_status", string(newStatus)).
			Msg("訂單狀態倒退轉換（人工修正）")
	}

	setFields := bson.M{"status": newStatus}
	update := bson.M{"$set": setFields}
	if newStatus == model.OrderStatusCompleted {
		setFields["completed_at"] = utils.NowUTC()
	} else if oldStatus == model.OrderStatusCompleted {
		// 從 completed 倒退時清除完成時間
		update["$unset"] = bson.M{"completed_at": ""}
	}

	objectID, _ := primitive.ObjectIDFromHex(id)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updatedOrder model.Order
	if err := s.mongoDB.GetCollection("orders").FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&updatedOrder); err != nil {
		opStatus = metrics.StatusError
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	s.logger.Info().
		Str("order_id", id).
		Str("old_status", string(oldStatus)).
		Str("new_status", string(newStatus)).
		Msg("訂單狀態已更新")

	s.publishOrderEvent(infra.NewOrderEvent(model.OrderEventStatusChanged, &updatedOrder, oldStatus, newStatus))

	return &updatedOrder, nil
}

// publishOrderEvent 推送訂單事件到隊列，盡力而為，broker 不可用時僅記錄
func (s *OrderService) publishOrderEvent(event *model.OrderEvent) {
	if s.rabbitMQ == nil || s.rabbitMQ.Channel == nil {
		s.logger.Debug().
			Str("event_id", event.EventID).
			Msg("RabbitMQ 未連線，略過訂單事件推送")
		return
	}

	b, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Msg("序列化訂單事件失敗 (Failed to marshal order event)")
		return
	}

	err = s.rabbitMQ.Channel.Publish(
		"", infra.QueueNameOrderEvents.String(), false, false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        b,
		},
	)
	if err != nil {
		s.logger.Error().Err(err).
			Str("event_id", event.EventID).
			Str("order_id", event.OrderID).
			Msg("推送訂單事件到隊列失敗 (Failed to push order event to queue)")
		return
	}

	s.logger.Debug().
		Str("event_id", event.EventID).
		Str("type", string(event.Type)).
		Str("order_id", event.OrderID).
		Msg("訂單事件已發送到隊列")
}
