package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCents(t *testing.T) {
	assert.Equal(t, "1299.99", FromCents(129999).StringFixed(2))
	assert.Equal(t, "0.00", FromCents(0).StringFixed(2))
	assert.Equal(t, "0.05", FromCents(5).StringFixed(2))
}

func TestToCents_RoundTrip(t *testing.T) {
	for _, c := range []int64{0, 1, 99, 2999, 129999} {
		assert.Equal(t, c, ToCents(FromCents(c)))
	}
}

func TestToCents(t *testing.T) {
	d, err := decimal.NewFromString("29.99")
	require.NoError(t, err)
	assert.Equal(t, int64(2999), ToCents(d))
}

func TestParseCents(t *testing.T) {
	c, err := ParseCents("1299.99")
	require.NoError(t, err)
	assert.Equal(t, int64(129999), c)

	c, err = ParseCents("20")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), c)

	_, err = ParseCents("19.999")
	assert.Error(t, err)

	_, err = ParseCents("not-a-number")
	assert.Error(t, err)
}
