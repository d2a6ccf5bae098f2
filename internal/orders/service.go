package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/navidnahidi/canals/internal/geo"
	"github.com/navidnahidi/canals/internal/geocode"
	"github.com/navidnahidi/canals/internal/money"
	"github.com/navidnahidi/canals/internal/payment"
	"github.com/navidnahidi/canals/internal/warehouse"
)

type WarehousePicker interface {
	Pick(ctx context.Context, required map[string]int, dest geo.Coordinates) (*warehouse.Warehouse, error)
}

type Catalog interface {
	ProductsByIDs(ctx context.Context, ids []string) (map[string]Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
}

type Reserver interface {
	Reserve(ctx context.Context, cust CustomerInput, draft OrderDraft) (*Order, error)
}

type OrderStore interface {
	GetOrder(ctx context.Context, id string) (*Order, error)
}

type CreateOrderInput struct {
	Customer   CustomerInput
	Shipping   geocode.Address
	Items      []LineItem
	CardNumber string
}

// Service sequences fulfillment: geocode -> catalog -> warehouse selection
// -> payment -> reservation. Every failure is terminal for the attempt; the
// caller maps the typed errors to its own surface.
type Service struct {
	Geocoder     geocode.Geocoder
	Picker       WarehousePicker
	Catalog      Catalog
	Gateway      payment.Gateway
	Reservations Reserver
	Orders       OrderStore
}

func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error) {
	required := mergeQuantities(in.Items)
	productIDs := make([]string, 0, len(required))
	for id := range required {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	// 1) shipping address -> coordinates
	geocoded, err := s.Geocoder.Geocode(ctx, in.Shipping)
	if err != nil {
		return nil, fmt.Errorf("geocode shipping address: %w", err)
	}

	// 2) catalog fetch; an uncatalogued id fails here, before any payment
	// or lock attempt
	products, err := s.Catalog.ProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range productIDs {
		if _, ok := products[id]; !ok {
			return nil, &ProductNotFoundError{ProductID: id}
		}
	}

	// 3) advisory selection; may go stale before the reservation locks
	target, err := s.Picker.Pick(ctx, required, geocoded.Coordinates)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNoEligibleWarehouse
	}

	// 4) price once, outside any lock
	var totalCents int64
	for id, qty := range required {
		totalCents += products[id].PriceCents * int64(qty)
	}

	// 5) charge before touching storage; a declined payment needs no
	// compensating rollback
	res, err := s.Gateway.Charge(ctx, payment.Request{
		CardNumber:  in.CardNumber,
		Amount:      money.FromCents(totalCents),
		Description: fmt.Sprintf("Order for %s", in.Customer.Name),
	})
	if err != nil {
		if errors.Is(err, payment.ErrInvalidCardNumber) || errors.Is(err, payment.ErrInvalidAmount) {
			return nil, &InvalidPaymentInputError{Reason: err.Error()}
		}
		return nil, fmt.Errorf("charge payment: %w", err)
	}
	if !res.Approved {
		return nil, &PaymentDeclinedError{Reason: res.Reason}
	}

	// 6) atomic reservation + order write
	draft := OrderDraft{
		Shipping:      in.Shipping,
		Coordinates:   geocoded.Coordinates,
		WarehouseID:   target.ID,
		TotalCents:    totalCents,
		TransactionID: res.TransactionID,
	}
	for _, id := range productIDs {
		p := products[id]
		draft.Items = append(draft.Items, DraftItem{
			ProductID:      p.ID,
			ProductName:    p.Name,
			ProductSKU:     p.SKU,
			Quantity:       required[id],
			UnitPriceCents: p.PriceCents,
		})
	}
	return s.Reservations.Reserve(ctx, in.Customer, draft)
}

func (s *Service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.Orders.GetOrder(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	return s.Catalog.ListProducts(ctx)
}

// mergeQuantities collapses duplicate product ids so one lock row covers
// the summed quantity.
func mergeQuantities(items []LineItem) map[string]int {
	required := make(map[string]int, len(items))
	for _, it := range items {
		required[it.ProductID] += it.Quantity
	}
	return required
}
