package orders

import (
	"errors"
	"fmt"
)

// ErrNoEligibleWarehouse: no single warehouse covers every line item.
var ErrNoEligibleWarehouse = errors.New("no warehouse found with all requested products in sufficient quantities")

type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

// InsufficientInventoryError is raised by the locked re-check when stock was
// consumed between selection and lock acquisition. The whole transaction has
// already been rolled back by the time the caller sees it.
type InsufficientInventoryError struct {
	ProductID   string
	WarehouseID string
	Required    int
	Available   int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for product %s in warehouse %s (required %d, available %d)",
		e.ProductID, e.WarehouseID, e.Required, e.Available)
}

type PaymentDeclinedError struct {
	Reason string
}

func (e *PaymentDeclinedError) Error() string {
	return fmt.Sprintf("payment declined: %s", e.Reason)
}

type InvalidPaymentInputError struct {
	Reason string
}

func (e *InvalidPaymentInputError) Error() string {
	return fmt.Sprintf("invalid payment input: %s", e.Reason)
}
