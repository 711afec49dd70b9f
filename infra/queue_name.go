package infra

// QueueName 定義 RabbitMQ 隊列名稱的枚舉類型
type QueueName string

const (
	// QueueNameOrderEvents 訂單事件隊列，派送器消費後推送到 SSE / Discord
	QueueNameOrderEvents QueueName = "order_events_queue"
)

// String 實現 Stringer 接口，返回隊列名稱字符串
func (qn QueueName) String() string {
	return string(qn)
}

// GetAllQueueNames 返回所有定義的隊列名稱
func GetAllQueueNames() []QueueName {
	return []QueueName{
		QueueNameOrderEvents,
	}
}
