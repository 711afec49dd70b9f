package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ServiceType 定義服務類型
type ServiceType string

const (
	ServiceTypeOrder     ServiceType = "order"
	ServiceTypeChat      ServiceType = "chat"
	ServiceTypeSpeech    ServiceType = "speech"
	ServiceTypeDashboard ServiceType = "dashboard"
)

// OperationType 定義操作類型
type OperationType string

const (
	OperationCreate       OperationType = "create"
	OperationList         OperationType = "list"
	OperationUpdateStatus OperationType = "update_status"
	OperationExport       OperationType = "export"
	OperationStats        OperationType = "stats"
	OperationComplete     OperationType = "complete"
	OperationTranscribe   OperationType = "transcribe"
	OperationSynthesize   OperationType = "synthesize"
)

// OperationStatus 定義操作狀態
type OperationStatus string

const (
	StatusSuccess OperationStatus = "success"
	StatusError   OperationStatus = "error"
)

// OperationSource 定義操作來源
type OperationSource string

const (
	SourceChat OperationSource = "chat"
	SourceAPI  OperationSource = "api"
)

var (
	serviceOperationsTotal   *prometheus.CounterVec
	serviceOperationDuration *prometheus.HistogramVec
	ordersCreatedTotal       *prometheus.CounterVec
)

// InitServiceMetrics 初始化 Service 層 metrics
func InitServiceMetrics(registry *prometheus.Registry) error {
	serviceOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "service_operations_total",
			Help: "Total number of service layer operations",
		},
		[]string{"service", "operation", "status", "source"},
	)

	serviceOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "service_operation_duration_seconds",
			Help:    "Duration of service layer operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation", "source"},
	)

	ordersCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders created, by source and price verification result",
		},
		[]string{"source", "price_verified"},
	)

	if err := registry.Register(serviceOperationsTotal); err != nil {
		return err
	}

	if err := registry.Register(serviceOperationDuration); err != nil {
		return err
	}

	if err := registry.Register(ordersCreatedTotal); err != nil {
		return err
	}

	return nil
}

// RecordServiceOperation 記錄 Service 層操作 metrics
func RecordServiceOperation(service ServiceType, operation OperationType, status OperationStatus, source OperationSource, duration time.Duration) {
	if serviceOperationsTotal != nil && serviceOperationDuration != nil {
		serviceOperationsTotal.WithLabelValues(string(service), string(operation), string(status), string(source)).Inc()
		serviceOperationDuration.WithLabelValues(string(service), string(operation), string(source)).Observe(duration.Seconds())
	}
}

// RecordOrderOperation 記錄訂單操作的便利函數
func RecordOrderOperation(operation OperationType, status OperationStatus, source OperationSource, duration time.Duration) {
	RecordServiceOperation(ServiceTypeOrder, operation, status, source, duration)
}

// RecordChatOperation 記錄聊天操作的便利函數
func RecordChatOperation(status OperationStatus, duration time.Duration) {
	RecordServiceOperation(ServiceTypeChat, OperationComplete, status, SourceChat, duration)
}

// RecordSpeechOperation 記錄語音操作的便利函數
func RecordSpeechOperation(operation OperationType, status OperationStatus, duration time.Duration) {
	RecordServiceOperation(ServiceTypeSpeech, operation, status, SourceAPI, duration)
}

// RecordOrderCreated 記錄訂單建立，帶來源與價格驗證結果
func RecordOrderCreated(source OperationSource, priceVerified bool) {
	if ordersCreatedTotal != nil {
		verified := "true"
		if !priceVerified {
			verified = "false"
		}
		ordersCreatedTotal.WithLabelValues(string(source), verified).Inc()
	}
}
