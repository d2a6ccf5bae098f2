package httpx

import (
	"fmt"
	"net/mail"

	"github.com/google/uuid"
)

type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// validateCreateOrder mirrors the request schema: reject malformed input
// before the fulfillment core is invoked.
func validateCreateOrder(req createOrderRequest) []FieldError {
	var errs []FieldError
	add := func(path, msg string) { errs = append(errs, FieldError{Path: path, Message: msg}) }

	if req.Customer.Name == "" {
		add("customer.name", "Customer name is required")
	}
	if req.Customer.Email == "" {
		add("customer.email", "Customer email is required")
	} else if _, err := mail.ParseAddress(req.Customer.Email); err != nil {
		add("customer.email", "Invalid email address")
	}
	if req.Customer.ID != "" {
		if _, err := uuid.Parse(req.Customer.ID); err != nil {
			add("customer.id", "Invalid customer ID")
		}
	}

	for path, v := range map[string]string{
		"shippingAddress.street":  req.ShippingAddress.Street,
		"shippingAddress.city":    req.ShippingAddress.City,
		"shippingAddress.state":   req.ShippingAddress.State,
		"shippingAddress.zipCode": req.ShippingAddress.ZipCode,
		"shippingAddress.country": req.ShippingAddress.Country,
	} {
		if v == "" {
			add(path, "Required")
		}
	}

	if len(req.Items) == 0 {
		add("items", "Order must include at least one item")
	}
	for i, it := range req.Items {
		if _, err := uuid.Parse(it.ProductID); err != nil {
			add(fmt.Sprintf("items.%d.productId", i), "Invalid product ID")
		}
		if it.Quantity <= 0 {
			add(fmt.Sprintf("items.%d.quantity", i), "Quantity must be a positive integer")
		}
	}

	if !validCardShape(req.CreditCardNumber) {
		add("creditCardNumber", "Credit card number must be 13-19 digits")
	}

	return errs
}

// validCardShape checks length and digits only; the Luhn checksum belongs
// to the payment gateway.
func validCardShape(card string) bool {
	if len(card) < 13 || len(card) > 19 {
		return false
	}
	for _, r := range card {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
