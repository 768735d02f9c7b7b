package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shreemobiles/storefront-backend/pkg/types"
)

var asOf = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func offer(percent float64, active bool) types.AppliedOffer {
	return types.AppliedOffer{
		OfferID:         uuid.New(),
		Name:            "test offer",
		DiscountPercent: percent,
		Active:          active,
	}
}

func TestEffectivePriceSingleOffer(t *testing.T) {
	offers := types.AppliedOffers{offer(20, true)}
	if got := EffectivePrice(1000, offers, asOf); got != 800.00 {
		t.Fatalf("expected 800.00, got %v", got)
	}
}

func TestEffectivePriceStacksMultiplicatively(t *testing.T) {
	offers := types.AppliedOffers{offer(50, true), offer(50, true)}
	if got := EffectivePrice(1000, offers, asOf); got != 250.00 {
		t.Fatalf("expected 250.00, got %v", got)
	}
}

func TestEffectivePriceClampsAtNinetyPercent(t *testing.T) {
	offers := types.AppliedOffers{offer(95, true)}
	if got := EffectivePrice(1000, offers, asOf); got != 100.00 {
		t.Fatalf("expected clamp to 100.00, got %v", got)
	}

	offers = types.AppliedOffers{offer(100, true)}
	if got := EffectivePrice(1000, offers, asOf); got != 100.00 {
		t.Fatalf("expected 100%% discount clamped to 100.00, got %v", got)
	}

	// Many stacked offers can never price below 10% of base.
	offers = types.AppliedOffers{offer(60, true), offer(60, true), offer(60, true)}
	if got := EffectivePrice(500, offers, asOf); got != 50.00 {
		t.Fatalf("expected floor 50.00, got %v", got)
	}
}

func TestEffectivePriceIdentity(t *testing.T) {
	if got := EffectivePrice(999.99, nil, asOf); got != 999.99 {
		t.Fatalf("expected base unchanged, got %v", got)
	}

	// No valid offers means no rounding either.
	odd := 123.456789
	if got := EffectivePrice(odd, types.AppliedOffers{offer(25, false)}, asOf); got != odd {
		t.Fatalf("expected untouched base, got %v", got)
	}
}

func TestValidOffersFiltering(t *testing.T) {
	past := asOf.Add(-24 * time.Hour)
	future := asOf.Add(24 * time.Hour)

	cases := []struct {
		name  string
		offer types.AppliedOffer
		valid bool
	}{
		{"active in range", types.AppliedOffer{Active: true, DiscountPercent: 10, StartDate: &past, EndDate: &future}, true},
		{"inactive", types.AppliedOffer{Active: false, DiscountPercent: 10}, false},
		{"zero percent", types.AppliedOffer{Active: true, DiscountPercent: 0}, false},
		{"negative percent", types.AppliedOffer{Active: true, DiscountPercent: -5}, false},
		{"nan percent", types.AppliedOffer{Active: true, DiscountPercent: math.NaN()}, false},
		{"not started yet", types.AppliedOffer{Active: true, DiscountPercent: 10, StartDate: &future}, false},
		{"already ended", types.AppliedOffer{Active: true, DiscountPercent: 10, EndDate: &past}, false},
		{"no dates", types.AppliedOffer{Active: true, DiscountPercent: 10}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidOffers(types.AppliedOffers{tc.offer}, asOf)
			if tc.valid && len(got) != 1 {
				t.Fatalf("expected offer to be valid")
			}
			if !tc.valid && len(got) != 0 {
				t.Fatalf("expected offer to be excluded")
			}
		})
	}
}

func TestDateBoundsAreInclusive(t *testing.T) {
	endsNow := asOf
	o := types.AppliedOffer{Active: true, DiscountPercent: 10, EndDate: &endsNow}
	if got := EffectivePrice(100, types.AppliedOffers{o}, asOf); got != 90.00 {
		t.Fatalf("offer ending exactly at asOf must still apply, got %v", got)
	}

	justEnded := asOf.Add(-time.Millisecond)
	o.EndDate = &justEnded
	if got := EffectivePrice(100, types.AppliedOffers{o}, asOf); got != 100 {
		t.Fatalf("offer ended one ms earlier must not apply, got %v", got)
	}

	startsNow := asOf
	o = types.AppliedOffer{Active: true, DiscountPercent: 10, StartDate: &startsNow}
	if got := EffectivePrice(100, types.AppliedOffers{o}, asOf); got != 90.00 {
		t.Fatalf("offer starting exactly at asOf must apply, got %v", got)
	}
}

func TestStackingInvariantNeverBelowTenPercent(t *testing.T) {
	bases := []float64{0.01, 1, 99.99, 1000, 123456.78}
	sets := []types.AppliedOffers{
		{offer(10, true)},
		{offer(50, true), offer(50, true), offer(50, true)},
		{offer(99, true)},
		{offer(33.3, true), offer(66.6, true)},
	}
	for _, base := range bases {
		for _, offers := range sets {
			got := EffectivePrice(base, offers, asOf)
			floor := Round2(minMultiplier * base)
			if got < floor {
				t.Fatalf("price %v below floor %v for base %v", got, floor, base)
			}
		}
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01}, // the classic truncation artifact
		{800, 800},
		{249.999999999, 250.00},
		{0.1 + 0.2, 0.30},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Fatalf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRound2Idempotent(t *testing.T) {
	values := []float64{1.005, 2.675, 0.1 + 0.2, 99.994999, 1234.5678}
	for _, v := range values {
		once := Round2(v)
		if twice := Round2(once); twice != once {
			t.Fatalf("Round2 not idempotent for %v: %v vs %v", v, once, twice)
		}
	}
}
