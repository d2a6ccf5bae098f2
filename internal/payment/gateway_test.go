package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidCardNumber(t *testing.T) {
	cases := []struct {
		card string
		ok   bool
	}{
		{"4242424242424242", true},
		{"4242 4242 4242 4242", true},
		{"4242-4242-4242-4242", true},
		{DeclineTestCard, true}, // Luhn-valid, declined later
		{"4242424242424241", false},
		{"1234", false},
		{"42424242424242424242", false},
		{"4242abcd42424242", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, ValidCardNumber(c.card), "card %q", c.card)
	}
}

func TestSandbox_ApprovesValidCard(t *testing.T) {
	g := NewSandbox()
	res, err := g.Charge(context.Background(), Request{
		CardNumber:  "4242424242424242",
		Amount:      decimal.NewFromInt(100),
		Description: "Order for Jane",
	})
	require.NoError(t, err)
	assert.True(t, res.Approved)
	assert.True(t, strings.HasPrefix(res.TransactionID, "txn_"))
}

func TestSandbox_DeclinesTestCard(t *testing.T) {
	g := NewSandbox()
	res, err := g.Charge(context.Background(), Request{
		CardNumber: DeclineTestCard,
		Amount:     decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.False(t, res.Approved)
	assert.Equal(t, "card declined", res.Reason)
}

func TestSandbox_RejectsInvalidCard(t *testing.T) {
	g := NewSandbox()
	_, err := g.Charge(context.Background(), Request{
		CardNumber: "4242424242424241",
		Amount:     decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, ErrInvalidCardNumber)
}

func TestSandbox_RejectsNonPositiveAmount(t *testing.T) {
	g := NewSandbox()
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := g.Charge(context.Background(), Request{
			CardNumber: "4242424242424242",
			Amount:     amount,
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}
