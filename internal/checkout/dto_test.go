package checkout

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestCartLineAcceptsAlternateProductIDKeys(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	for _, key := range []string{"productId", "product_id", "productID", "_id", "id"} {
		body := `{"` + key + `":"` + id.String() + `","quantity":2}`
		var line CartLine
		if err := json.Unmarshal([]byte(body), &line); err != nil {
			t.Fatalf("decode with key %q: %v", key, err)
		}
		if line.ProductID != id {
			t.Fatalf("key %q: expected product id %s, got %s", key, id, line.ProductID)
		}
		if line.Quantity != 2 {
			t.Fatalf("key %q: expected quantity 2, got %d", key, line.Quantity)
		}
	}
}

func TestCartLineQuantityNormalization(t *testing.T) {
	t.Parallel()

	id := uuid.NewString()
	cases := []struct {
		name string
		body string
		want int
	}{
		{"absent defaults to one", `{"productId":"` + id + `"}`, 1},
		{"numeric string", `{"productId":"` + id + `","quantity":"3"}`, 3},
		{"unparsable string", `{"productId":"` + id + `","quantity":"lots"}`, 1},
		{"zero clamps to one", `{"productId":"` + id + `","quantity":0}`, 1},
		{"negative clamps to one", `{"productId":"` + id + `","quantity":-4}`, 1},
		{"fractional truncates", `{"productId":"` + id + `","quantity":2.9}`, 2},
		{"null defaults to one", `{"productId":"` + id + `","quantity":null}`, 1},
		{"boolean defaults to one", `{"productId":"` + id + `","quantity":true}`, 1},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var line CartLine
			if err := json.Unmarshal([]byte(tc.body), &line); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if line.Quantity != tc.want {
				t.Fatalf("expected quantity %d, got %d", tc.want, line.Quantity)
			}
		})
	}
}

func TestCartLineUnknownIDShapesLeaveNilProduct(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		`{"quantity":1}`,
		`{"productId":"not-a-uuid","quantity":1}`,
		`{"productId":42,"quantity":1}`,
	} {
		var line CartLine
		if err := json.Unmarshal([]byte(body), &line); err != nil {
			t.Fatalf("decode %s: %v", body, err)
		}
		if line.ProductID != uuid.Nil {
			t.Fatalf("expected nil product id for %s, got %s", body, line.ProductID)
		}
	}
}
