package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/navidnahidi/canals/internal/geocode"
	"github.com/navidnahidi/canals/internal/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubService struct {
	createOrder  *orders.Order
	createErr    error
	getOrder     *orders.Order
	getErr       error
	products     []orders.Product
	createCalled int
}

func (s *stubService) CreateOrder(ctx context.Context, in orders.CreateOrderInput) (*orders.Order, error) {
	s.createCalled++
	return s.createOrder, s.createErr
}

func (s *stubService) GetOrder(ctx context.Context, id string) (*orders.Order, error) {
	return s.getOrder, s.getErr
}

func (s *stubService) ListProducts(ctx context.Context) ([]orders.Product, error) {
	return s.products, nil
}

func newHandler(svc *stubService) (*OrdersHandler, http.Handler) {
	h := &OrdersHandler{Service: svc, Log: zap.NewNop(), ServiceName: "canals-api-test"}
	r := NewRouter()
	h.Register(r)
	return h, r
}

func testOrder() *orders.Order {
	return &orders.Order{
		ID:            uuid.NewString(),
		CustomerID:    uuid.NewString(),
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Shipping:      geocode.Address{Street: "1 Main St", City: "Oakland", State: "CA", ZipCode: "94607", Country: "USA"},
		WarehouseID:   uuid.NewString(),
		Status:        orders.StatusProcessing,
		TotalCents:    135997,
		TransactionID: "txn_1_abc",
		Items: []orders.OrderItem{{
			ProductID: uuid.NewString(), Quantity: 2, ProductName: "Wireless Mouse",
			ProductSKU: "MSE-001", UnitPriceCents: 2999, TotalPriceCents: 5998,
		}},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func createOrderBody(t *testing.T) []byte {
	t.Helper()
	body := map[string]any{
		"customer": map[string]string{"name": "Jane Doe", "email": "jane@example.com"},
		"shippingAddress": map[string]string{
			"street": "1 Main St", "city": "Oakland", "state": "CA",
			"zipCode": "94607", "country": "USA",
		},
		"items":            []map[string]any{{"productId": uuid.NewString(), "quantity": 2}},
		"creditCardNumber": "4242424242424242",
	}
	b, err := json.Marshal(body)
	require.NoError(t, err)
	return b
}

func postOrder(t *testing.T, router http.Handler, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrder_Created(t *testing.T) {
	order := testOrder()
	svc := &stubService{createOrder: order}
	_, router := newHandler(svc)

	rec := postOrder(t, router, createOrderBody(t))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message string `json:"message"`
		Order   struct {
			ID          string  `json:"id"`
			TotalAmount float64 `json:"totalAmount"`
			Status      string  `json:"status"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Order created successfully", resp.Message)
	assert.Equal(t, order.ID, resp.Order.ID)
	assert.Equal(t, 1359.97, resp.Order.TotalAmount)
	assert.Equal(t, "processing", resp.Order.Status)
}

func TestCreateOrder_InvalidJSON(t *testing.T) {
	svc := &stubService{}
	_, router := newHandler(svc)

	rec := postOrder(t, router, []byte("{nope"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.createCalled)
}

func TestCreateOrder_ValidationFailureHasDetails(t *testing.T) {
	svc := &stubService{}
	_, router := newHandler(svc)

	body := createOrderBody(t)
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	delete(m, "creditCardNumber")
	b, _ := json.Marshal(m)

	rec := postOrder(t, router, b)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.createCalled)

	var resp struct {
		Error   string       `json:"error"`
		Details []FieldError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)
	assert.NotEmpty(t, resp.Details)
}

func TestCreateOrder_FulfillmentFailuresAre400(t *testing.T) {
	for _, err := range []error{
		orders.ErrNoEligibleWarehouse,
		&orders.ProductNotFoundError{ProductID: "p1"},
		&orders.InsufficientInventoryError{ProductID: "p1", WarehouseID: "wh", Required: 2, Available: 1},
	} {
		svc := &stubService{createErr: err}
		_, router := newHandler(svc)

		rec := postOrder(t, router, createOrderBody(t))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "error %v", err)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Order creation failed", resp["error"])
	}
}

func TestCreateOrder_PaymentFailuresAre402(t *testing.T) {
	for _, err := range []error{
		&orders.PaymentDeclinedError{Reason: "card declined"},
		&orders.InvalidPaymentInputError{Reason: "invalid credit card number"},
	} {
		svc := &stubService{createErr: err}
		_, router := newHandler(svc)

		rec := postOrder(t, router, createOrderBody(t))
		assert.Equal(t, http.StatusPaymentRequired, rec.Code, "error %v", err)
	}
}

func TestCreateOrder_UnknownErrorIs500(t *testing.T) {
	svc := &stubService{createErr: fmt.Errorf("db on fire")}
	_, router := newHandler(svc)

	rec := postOrder(t, router, createOrderBody(t))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetOrder_OK(t *testing.T) {
	order := testOrder()
	svc := &stubService{getOrder: order}
	_, router := newHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+order.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp orderJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, order.ID, resp.ID)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 29.99, resp.Items[0].UnitPrice)
}

func TestGetOrder_NotFound(t *testing.T) {
	svc := &stubService{getErr: pgx.ErrNoRows}
	_, router := newHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProducts(t *testing.T) {
	svc := &stubService{products: []orders.Product{
		{ID: uuid.NewString(), Name: "Laptop", SKU: "LAP-001", PriceCents: 129999},
	}}
	_, router := newHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []struct {
		SKU   string  `json:"sku"`
		Price float64 `json:"price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "LAP-001", resp[0].SKU)
	assert.Equal(t, 1299.99, resp[0].Price)
}

func TestHealthz(t *testing.T) {
	_, router := newHandler(&stubService{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
