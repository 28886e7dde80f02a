package kafka

const (
	TopicOrderPlaced = "marketplace.order.placed"

	HeaderTimestamp = "timestamp"
	HeaderEventType = "event_type"

	EventTypeOrderPlaced = "ORDER_PLACED"
)
