package checkout

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// CartLine is one requested purchase. Clients send it in a few historical
// shapes, so decoding is deliberately lenient: the product id is accepted
// under several field names and the quantity is clamped rather than rejected.
// Any client-asserted price is discarded; pricing is always recomputed
// server-side.
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// productIDKeys lists the accepted spellings of the product reference, in
// lookup order.
var productIDKeys = []string{"productId", "product_id", "productID", "_id", "id"}

func (l *CartLine) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	l.ProductID = uuid.Nil
	for _, key := range productIDKeys {
		value, ok := raw[key]
		if !ok {
			continue
		}
		var id string
		if err := json.Unmarshal(value, &id); err != nil {
			continue
		}
		parsed, err := uuid.Parse(strings.TrimSpace(id))
		if err != nil {
			continue
		}
		l.ProductID = parsed
		break
	}

	l.Quantity = normalizeQuantity(raw["quantity"])
	return nil
}

// normalizeQuantity coerces whatever the client sent into a positive integer.
// Absent, unparsable, fractional, or non-positive quantities become 1.
func normalizeQuantity(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 1
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err != nil {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return 1
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return 1
		}
		number = parsed
	}

	qty := int(number)
	if qty < 1 {
		return 1
	}
	return qty
}

// Customer identifies who the invoice is billed to.
type Customer struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// CheckoutInput is the request body for a checkout call.
type CheckoutInput struct {
	Cart     []CartLine `json:"cart" validate:"required,min=1"`
	Customer Customer   `json:"customer"`
}
