package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCardNumber = errors.New("invalid credit card number")
	ErrInvalidAmount     = errors.New("amount must be greater than 0")
)

type Request struct {
	CardNumber  string
	Amount      decimal.Decimal
	Description string
}

type Result struct {
	Approved      bool
	TransactionID string
	Reason        string
}

// Gateway charges a card. A nil error with Approved=false is a decline;
// errors are reserved for invalid input and transport failures.
type Gateway interface {
	Charge(ctx context.Context, req Request) (Result, error)
}

// DeclineTestCard is a Luhn-valid number the sandbox always declines, so the
// decline path stays reachable without randomness.
const DeclineTestCard = "4000000000000002"

// Sandbox is the gateway stand-in used outside production. Deterministic:
// same request, same outcome.
type Sandbox struct {
	now func() time.Time
}

func NewSandbox() *Sandbox {
	return &Sandbox{now: time.Now}
}

func (s *Sandbox) Charge(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	cleaned := normalizeCardNumber(req.CardNumber)
	if !ValidCardNumber(cleaned) {
		return Result{}, ErrInvalidCardNumber
	}
	if !req.Amount.IsPositive() {
		return Result{}, ErrInvalidAmount
	}

	if cleaned == DeclineTestCard {
		return Result{Approved: false, Reason: "card declined"}, nil
	}

	return Result{
		Approved:      true,
		TransactionID: s.transactionID(),
	}, nil
}

func (s *Sandbox) transactionID() string {
	return fmt.Sprintf("txn_%d_%s", s.now().UnixMilli(), uuid.NewString()[:8])
}

func normalizeCardNumber(card string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(card)
}

// ValidCardNumber checks digits-only, 13-19 length, and the Luhn checksum.
func ValidCardNumber(card string) bool {
	cleaned := normalizeCardNumber(card)
	if len(cleaned) < 13 || len(cleaned) > 19 {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return luhn(cleaned)
}

func luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
