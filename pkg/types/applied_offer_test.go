package types

import (
	"testing"

	"github.com/google/uuid"
)

func TestWithoutRemovesAllMatches(t *testing.T) {
	target := uuid.New()
	offers := AppliedOffers{
		{OfferID: target, Name: "summer"},
		{OfferID: uuid.New(), Name: "clearance"},
		{OfferID: target, Name: "summer-dup"},
	}
	got := offers.Without(target)
	if len(got) != 1 || got[0].Name != "clearance" {
		t.Fatalf("expected only unrelated snapshot to remain, got %+v", got)
	}
}

func TestDeactivateKeepsSnapshot(t *testing.T) {
	target := uuid.New()
	offers := AppliedOffers{
		{OfferID: target, Name: "summer", Active: true},
		{OfferID: uuid.New(), Name: "other", Active: true},
	}
	if !offers.Deactivate(target) {
		t.Fatal("expected deactivation to report a change")
	}
	if offers[0].Active {
		t.Fatal("target snapshot should be inactive")
	}
	if !offers[1].Active {
		t.Fatal("unrelated snapshot must stay active")
	}
	if len(offers) != 2 {
		t.Fatal("stop must never remove snapshots")
	}
	if offers.Deactivate(target) {
		t.Fatal("second deactivation should be a no-op")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	offers := AppliedOffers{{OfferID: uuid.New(), Active: true}}
	clone := offers.Clone()
	clone[0].Active = false
	if !offers[0].Active {
		t.Fatal("mutating the clone must not touch the source")
	}
}
