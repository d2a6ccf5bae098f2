package redisx

import "time"

const (
	// Idempotency fast path for order creation: idem:order:create:{key} -> order_id.
	// Best effort only; postgres stays the source of truth.
	KeyIdemOrderCreate = "idem:order:create:%s"

	// Cached GET /orders response: order:{order_id} -> response body JSON.
	KeyOrderCache = "order:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLOrderCache  = 5 * time.Minute
)
