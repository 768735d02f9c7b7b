package types

import (
	"time"

	"github.com/google/uuid"
)

// AppliedOffer is the immutable snapshot of an offer's pricing terms taken at
// the moment the offer was attached to a product or frozen into an invoice
// line. The offer_id is a back-reference only; once embedded in an invoice the
// snapshot never changes, no matter what happens to the source offer.
type AppliedOffer struct {
	OfferID         uuid.UUID  `json:"offer_id"`
	Name            string     `json:"name"`
	DiscountPercent float64    `json:"discount_percent"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Active          bool       `json:"active"`
}

// AppliedOffers preserves insertion order, which is the application order.
type AppliedOffers []AppliedOffer

// Without returns a copy with every snapshot for the given offer removed.
func (a AppliedOffers) Without(offerID uuid.UUID) AppliedOffers {
	out := make(AppliedOffers, 0, len(a))
	for _, snap := range a {
		if snap.OfferID == offerID {
			continue
		}
		out = append(out, snap)
	}
	return out
}

// Contains reports whether a snapshot for the given offer is present.
func (a AppliedOffers) Contains(offerID uuid.UUID) bool {
	for _, snap := range a {
		if snap.OfferID == offerID {
			return true
		}
	}
	return false
}

// Deactivate marks every snapshot for the given offer inactive in place and
// reports whether anything changed.
func (a AppliedOffers) Deactivate(offerID uuid.UUID) bool {
	changed := false
	for i := range a {
		if a[i].OfferID == offerID && a[i].Active {
			a[i].Active = false
			changed = true
		}
	}
	return changed
}

// Clone returns a deep copy so invoice snapshots never share backing arrays
// with the product they were taken from.
func (a AppliedOffers) Clone() AppliedOffers {
	if a == nil {
		return nil
	}
	out := make(AppliedOffers, len(a))
	copy(out, a)
	return out
}
