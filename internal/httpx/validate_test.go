package httpx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validRequest() createOrderRequest {
	var req createOrderRequest
	req.Customer.Name = "Jane Doe"
	req.Customer.Email = "jane@example.com"
	req.ShippingAddress.Street = "1 Main St"
	req.ShippingAddress.City = "Oakland"
	req.ShippingAddress.State = "CA"
	req.ShippingAddress.ZipCode = "94607"
	req.ShippingAddress.Country = "USA"
	req.Items = []struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}{{ProductID: uuid.NewString(), Quantity: 2}}
	req.CreditCardNumber = "4242424242424242"
	return req
}

func fieldPaths(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Path)
	}
	return out
}

func TestValidateCreateOrder_Valid(t *testing.T) {
	assert.Empty(t, validateCreateOrder(validRequest()))
}

func TestValidateCreateOrder_MissingCustomer(t *testing.T) {
	req := validRequest()
	req.Customer.Name = ""
	req.Customer.Email = ""
	paths := fieldPaths(validateCreateOrder(req))
	assert.Contains(t, paths, "customer.name")
	assert.Contains(t, paths, "customer.email")
}

func TestValidateCreateOrder_BadEmail(t *testing.T) {
	req := validRequest()
	req.Customer.Email = "not-an-email"
	assert.Contains(t, fieldPaths(validateCreateOrder(req)), "customer.email")
}

func TestValidateCreateOrder_BadCustomerID(t *testing.T) {
	req := validRequest()
	req.Customer.ID = "42"
	assert.Contains(t, fieldPaths(validateCreateOrder(req)), "customer.id")
}

func TestValidateCreateOrder_MissingAddressFields(t *testing.T) {
	req := validRequest()
	req.ShippingAddress.City = ""
	req.ShippingAddress.Country = ""
	paths := fieldPaths(validateCreateOrder(req))
	assert.Contains(t, paths, "shippingAddress.city")
	assert.Contains(t, paths, "shippingAddress.country")
}

func TestValidateCreateOrder_Items(t *testing.T) {
	req := validRequest()
	req.Items = nil
	assert.Contains(t, fieldPaths(validateCreateOrder(req)), "items")

	req = validRequest()
	req.Items[0].ProductID = "nope"
	req.Items[0].Quantity = 0
	paths := fieldPaths(validateCreateOrder(req))
	assert.Contains(t, paths, "items.0.productId")
	assert.Contains(t, paths, "items.0.quantity")
}

func TestValidateCreateOrder_CardShape(t *testing.T) {
	for _, card := range []string{"", "1234", "4242 4242 4242 4242", "42424242424242424242", "4242abcd42424242"} {
		req := validRequest()
		req.CreditCardNumber = card
		assert.Contains(t, fieldPaths(validateCreateOrder(req)), "creditCardNumber", "card %q", card)
	}
}
