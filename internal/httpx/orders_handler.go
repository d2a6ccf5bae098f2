package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/navidnahidi/canals/internal/geocode"
	kafkax "github.com/navidnahidi/canals/internal/kafka"
	"github.com/navidnahidi/canals/internal/money"
	"github.com/navidnahidi/canals/internal/orders"
	"github.com/navidnahidi/canals/internal/redisx"
)

type Service interface {
	CreateOrder(ctx context.Context, in orders.CreateOrderInput) (*orders.Order, error)
	GetOrder(ctx context.Context, id string) (*orders.Order, error)
	ListProducts(ctx context.Context) ([]orders.Product, error)
}

type OrdersHandler struct {
	Service        Service
	Redis          *redis.Client
	ProducerOK     *kafkax.Producer // order.fulfilled
	ProducerReject *kafkax.Producer // order.rejected
	Log            *zap.Logger
	ServiceName    string
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.createOrder)
	r.Get("/orders/{id}", h.getOrder)
	r.Get("/products", h.listProducts)
}

type createOrderRequest struct {
	Customer struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"customer"`
	ShippingAddress geocode.Address `json:"shippingAddress"`
	Items           []struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
	CreditCardNumber string `json:"creditCardNumber"`
}

type customerJSON struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type orderItemJSON struct {
	ProductID   string  `json:"productId"`
	Quantity    int     `json:"quantity"`
	ProductName string  `json:"productName"`
	ProductSKU  string  `json:"productSku"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

type orderJSON struct {
	ID              string          `json:"id"`
	Customer        customerJSON    `json:"customer"`
	ShippingAddress geocode.Address `json:"shippingAddress"`
	Items           []orderItemJSON `json:"items"`
	WarehouseID     string          `json:"warehouseId"`
	Status          orders.Status   `json:"status"`
	TotalAmount     float64         `json:"totalAmount"`
	TransactionID   string          `json:"transactionId"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func toOrderJSON(o *orders.Order) orderJSON {
	out := orderJSON{
		ID:              o.ID,
		Customer:        customerJSON{ID: o.CustomerID, Name: o.CustomerName, Email: o.CustomerEmail},
		ShippingAddress: o.Shipping,
		WarehouseID:     o.WarehouseID,
		Status:          o.Status,
		TotalAmount:     money.FromCents(o.TotalCents).InexactFloat64(),
		TransactionID:   o.TransactionID,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, orderItemJSON{
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			ProductName: it.ProductName,
			ProductSKU:  it.ProductSKU,
			UnitPrice:   money.FromCents(it.UnitPriceCents).InexactFloat64(),
			TotalPrice:  money.FromCents(it.TotalPriceCents).InexactFloat64(),
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if errs := validateCreateOrder(req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Validation failed",
			"message": "Invalid request data",
			"details": errs,
		})
		return
	}

	// bounds the whole attempt, including lock waits inside the
	// reservation transaction
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// fast-path idempotency via Redis; best effort, DB stays the truth
	idemKey := ""
	if key := r.Header.Get("Idempotency-Key"); key != "" && h.Redis != nil {
		idemKey = fmt.Sprintf(redisx.KeyIdemOrderCreate, key)
		if orderID, err := h.Redis.Get(ctx, idemKey).Result(); err == nil && orderID != "" {
			if existing, err := h.Service.GetOrder(ctx, orderID); err == nil {
				writeJSON(w, http.StatusOK, map[string]any{
					"message": "Order already created",
					"order":   toOrderJSON(existing),
				})
				return
			}
		}
	}

	in := orders.CreateOrderInput{
		Customer: orders.CustomerInput{
			ID:    req.Customer.ID,
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
		},
		Shipping:   req.ShippingAddress,
		CardNumber: req.CreditCardNumber,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, orders.LineItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := h.Service.CreateOrder(ctx, in)
	if err != nil {
		h.writeCreateError(ctx, w, r, err)
		return
	}

	if idemKey != "" {
		_ = h.Redis.Set(ctx, idemKey, order.ID, redisx.TTLIdempotency).Err()
	}
	h.cacheOrder(ctx, order)
	h.publishFulfilled(order, r.Header.Get("X-Request-Id"))

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Order created successfully",
		"order":   toOrderJSON(order),
	})
}

func (h *OrdersHandler) writeCreateError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
	trace := r.Header.Get("X-Request-Id")

	var (
		notFound     *orders.ProductNotFoundError
		insufficient *orders.InsufficientInventoryError
		declined     *orders.PaymentDeclinedError
		invalidPay   *orders.InvalidPaymentInputError
	)
	switch {
	case errors.Is(err, orders.ErrNoEligibleWarehouse):
		h.publishRejected("NO_ELIGIBLE_WAREHOUSE", err.Error(), trace)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Order creation failed", "message": err.Error()})
	case errors.As(err, &notFound):
		h.publishRejected("PRODUCT_NOT_FOUND", err.Error(), trace)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Order creation failed", "message": err.Error()})
	case errors.As(err, &insufficient):
		h.publishRejected("OUT_OF_STOCK", err.Error(), trace)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Order creation failed", "message": err.Error()})
	case errors.As(err, &declined):
		h.publishRejected("PAYMENT_DECLINED", err.Error(), trace)
		writeJSON(w, http.StatusPaymentRequired, map[string]string{"error": "Payment failed", "message": err.Error()})
	case errors.As(err, &invalidPay):
		h.publishRejected("INVALID_PAYMENT_INPUT", err.Error(), trace)
		writeJSON(w, http.StatusPaymentRequired, map[string]string{"error": "Payment failed", "message": err.Error()})
	default:
		h.Log.Error("create order failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyOrderCache, orderID)
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	order, err := h.Service.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		h.Log.Error("get order failed", zap.String("order_id", orderID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	h.cacheOrder(ctx, order)
	writeJSON(w, http.StatusOK, toOrderJSON(order))
}

func (h *OrdersHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Service.ListProducts(ctx)
	if err != nil {
		h.Log.Error("list products failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	type productJSON struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		SKU         string  `json:"sku"`
		Description string  `json:"description,omitempty"`
		Price       float64 `json:"price"`
	}
	out := make([]productJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, productJSON{
			ID:          p.ID,
			Name:        p.Name,
			SKU:         p.SKU,
			Description: p.Description,
			Price:       money.FromCents(p.PriceCents).InexactFloat64(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) cacheOrder(ctx context.Context, order *orders.Order) {
	if h.Redis == nil {
		return
	}
	b, err := json.Marshal(toOrderJSON(order))
	if err != nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyOrderCache, order.ID)
	_ = h.Redis.Set(ctx, key, b, redisx.TTLOrderCache).Err()
}

func (h *OrdersHandler) publishFulfilled(order *orders.Order, trace string) {
	if h.ProducerOK == nil {
		return
	}
	items := make([]orders.ItemQty, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, orders.ItemQty{ProductID: it.ProductID, Qty: it.Quantity})
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderFulfilled,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.ServiceName,
		TraceID:       trace,
		CorrelationID: order.ID,
		Payload: kafkax.MustMarshal(orders.OrderFulfilledPayload{
			OrderID:       order.ID,
			WarehouseID:   order.WarehouseID,
			CustomerEmail: order.CustomerEmail,
			Items:         items,
			TotalCents:    order.TotalCents,
			TransactionID: order.TransactionID,
		}),
	}
	h.ProducerOK.Publish(orders.PartitionKey(order.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderFulfilled)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) publishRejected(reason, detail, trace string) {
	if h.ProducerReject == nil {
		return
	}
	ev := orders.Envelope{
		EventID:      uuid.NewString(),
		EventType:    orders.EventOrderRejected,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     h.ServiceName,
		TraceID:      trace,
		Payload: kafkax.MustMarshal(orders.OrderRejectedPayload{
			Reason: reason,
			Detail: detail,
		}),
	}
	h.ProducerReject.Publish([]byte(reason), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderRejected)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
