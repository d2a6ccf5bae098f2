package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderFulfilled = "OrderFulfilled"
	EventOrderRejected  = "OrderRejected"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "canals-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

type ItemQty struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type OrderFulfilledPayload struct {
	OrderID       string    `json:"order_id"`
	WarehouseID   string    `json:"warehouse_id"`
	CustomerEmail string    `json:"customer_email"`
	Items         []ItemQty `json:"items"`
	TotalCents    int64     `json:"total_cents"`
	TransactionID string    `json:"transaction_id"`
}

type OrderRejectedPayload struct {
	Reason string `json:"reason"` // e.g., NO_ELIGIBLE_WAREHOUSE
	Detail string `json:"detail,omitempty"`
}
