package service

import (
	"context"
	"errors"
	"testing"

	"github.com/eventops/api/internal/autospec"
	"github.com/eventops/api/internal/enum"
	"github.com/eventops/api/internal/store"
)

func TestBEOBuild(t *testing.T) {
	ev := &store.Event{
		ID:         "recEvt1",
		Name:       "Gala Dinner",
		StartTime:  "18:30",
		EndTime:    "10:00 PM",
		GuestCount: 100,
		PaperType:  enum.PaperTypeChina,
		PlatesText: "• Dinner Plates (FoodWerx China) – 115",
		MenuItems: []store.MenuItem{
			{ID: "m1", Name: "Beef Crostini\nHorseradish cream", Category: enum.FoodCategoryPassed},
			{ID: "m2", Name: "Roasted Vegetables", Category: enum.FoodCategoryBuffet},
			{ID: "m3", Name: "Rice Pilaf", Category: enum.FoodCategoryBuffet},
			{ID: "m4", Name: "Green Salad", Category: enum.FoodCategoryBuffet},
			{ID: "m5", Name: "Mini Tarts", Category: enum.FoodCategoryDessert},
		},
	}
	svc := NewBEOService(memoryStore(ev))

	beo, err := svc.Build(context.Background(), "recEvt1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if beo.StartTime != "6:30 PM" || beo.EndTime != "10:00 PM" {
		t.Errorf("times = %q / %q", beo.StartTime, beo.EndTime)
	}
	if len(beo.Menu) != 5 {
		t.Fatalf("menu = %+v", beo.Menu)
	}
	first := beo.Menu[0]
	if first.Name != "Beef Crostini" || first.Sauce == nil || *first.Sauce != "Horseradish cream" {
		t.Errorf("first item = %+v", first)
	}
	if first.Spec.Quantity != "135 PC" {
		t.Errorf("passed spec = %q, want 135 PC", first.Spec.Quantity)
	}
	if beo.Menu[1].Spec.Quantity != "3 HOTEL" || beo.Menu[1].Spec.Notes != autospec.BuffetReviewNote {
		t.Errorf("buffet spec = %+v", beo.Menu[1].Spec)
	}
	if !beo.NeedsReview {
		t.Error("buffet verification notes should mark the BEO for review")
	}
	if len(beo.Buffet.MetalIDs) != 2 || beo.Buffet.MetalIDs[0] != "m2" || len(beo.Buffet.ChinaIDs) != 1 || beo.Buffet.ChinaIDs[0] != "m4" {
		t.Errorf("buffet split = %+v", beo.Buffet)
	}
	if len(beo.Serviceware.Plates) != 1 {
		t.Errorf("serviceware = %+v", beo.Serviceware)
	}
}

func TestBEOBuild_NoReviewWithoutFlags(t *testing.T) {
	ev := &store.Event{
		ID:         "recEvt2",
		GuestCount: 40,
		MenuItems:  []store.MenuItem{{ID: "m1", Name: "Cookies", Category: enum.FoodCategoryDessert}},
	}
	beo, err := NewBEOService(memoryStore(ev)).Build(context.Background(), "recEvt2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if beo.NeedsReview {
		t.Error("dessert-only menu should not need review")
	}
	if beo.Menu[0].Spec != (autospec.Spec{Quantity: "40 PC"}) {
		t.Errorf("spec = %+v", beo.Menu[0].Spec)
	}
	if beo.Buffet.MetalIDs == nil || beo.Buffet.ChinaIDs == nil {
		t.Error("buffet split lists should be non-nil")
	}
}

func TestBEOBuild_UnknownCategoryNeedsReview(t *testing.T) {
	ev := &store.Event{
		ID:         "recEvt3",
		GuestCount: 40,
		MenuItems:  []store.MenuItem{{ID: "m1", Name: "Mystery", Category: "entree"}},
	}
	beo, err := NewBEOService(memoryStore(ev)).Build(context.Background(), "recEvt3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !beo.NeedsReview || beo.Menu[0].Spec.Quantity != autospec.NotComputable {
		t.Errorf("got %+v", beo.Menu[0].Spec)
	}
}

func TestBEOBuild_NotFound(t *testing.T) {
	_, err := NewBEOService(memoryStore(&store.Event{ID: "x"})).Build(context.Background(), "missing")
	if !errors.Is(err, store.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
