// Package pricing computes effective product prices from applied offer
// snapshots. It is pure: the same inputs produce the same price whether the
// caller is rendering a catalog page or locking a price inside a checkout
// transaction.
package pricing

import (
	"math"
	"time"

	"github.com/shreemobiles/storefront-backend/pkg/types"
)

// minMultiplier caps stacked discounts: no combination of offers may price a
// product below 10% of its base price.
const minMultiplier = 0.1

// epsilon is the machine epsilon for float64, added before rounding so values
// sitting just under a half-cent boundary round up instead of truncating.
var epsilon = math.Nextafter(1, 2) - 1

// Round2 rounds to 2 decimal places, half away from zero, on the
// epsilon-corrected value. It is idempotent.
func Round2(x float64) float64 {
	return math.Round((x+epsilon)*100) / 100
}

// ValidOffers returns the subset of offers that discount the price at asOf:
// active, a positive finite percentage, and inside the inclusive date bounds.
// Malformed entries are dropped, never rejected.
func ValidOffers(offers types.AppliedOffers, asOf time.Time) types.AppliedOffers {
	var valid types.AppliedOffers
	for _, offer := range offers {
		if !offer.Active {
			continue
		}
		if offer.DiscountPercent <= 0 || math.IsNaN(offer.DiscountPercent) || math.IsInf(offer.DiscountPercent, 0) {
			continue
		}
		if offer.StartDate != nil && asOf.Before(*offer.StartDate) {
			continue
		}
		if offer.EndDate != nil && asOf.After(*offer.EndDate) {
			continue
		}
		valid = append(valid, offer)
	}
	return valid
}

// EffectivePrice applies the valid subset of offers to basePrice at asOf.
// Discounts stack multiplicatively in stored order; the combined multiplier is
// clamped to minMultiplier. With no valid offers the base price is returned
// unchanged, without rounding. This function never fails.
func EffectivePrice(basePrice float64, offers types.AppliedOffers, asOf time.Time) float64 {
	valid := ValidOffers(offers, asOf)
	if len(valid) == 0 {
		return basePrice
	}

	multiplier := 1.0
	for _, offer := range valid {
		multiplier *= 1 - offer.DiscountPercent/100
	}
	if multiplier < minMultiplier {
		multiplier = minMultiplier
	}

	return Round2(basePrice * multiplier)
}
