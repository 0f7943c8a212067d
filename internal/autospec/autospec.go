// Package autospec sizes menu items for a prep sheet from the guest count.
//
// The food category alone selects the rule. Item names are never inspected:
// a wrong category is a data-entry problem to fix upstream.
package autospec

import (
	"fmt"

	"github.com/eventops/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Spec is the computed quantity for a single menu item.
type Spec struct {
	Quantity      string `json:"quantity"`
	Notes         string `json:"notes,omitempty"`
	FlagForReview bool   `json:"flag_for_review,omitempty"`
}

// NeedsReview reports whether a person must check the quantity before it is
// used: it could not be computed, or it carries a verification note.
func (s Spec) NeedsReview() bool {
	return s.FlagForReview || s.Notes != ""
}

// Calculate returns the prep quantity for one menu item. It is defined for
// every input: an empty guest count or an unknown category yields the
// NotComputable sentinel flagged for review. Guest counts above
// enum.MaxGuestCount are sized as enum.MaxGuestCount.
func Calculate(itemName, category string, guestCount int) Spec {
	if guestCount <= 0 {
		return reviewSpec()
	}
	guests := decimal.NewFromInt(int64(min(guestCount, enum.MaxGuestCount)))

	switch category {
	case enum.FoodCategoryPassed, enum.FoodCategoryPresented:
		pieces := RoundToNearest5(guests.Mul(appetizerPiecesPerGuest))
		return Spec{Quantity: formatQuantity(pieces, unitPieces)}

	case enum.FoodCategoryBuffet:
		pans := guests.Div(guestsPerHotelPan).Ceil().IntPart()
		return Spec{
			Quantity: formatQuantity(pans, unitHotel),
			Notes:    BuffetReviewNote,
		}

	case enum.FoodCategoryDessert:
		pieces := RoundToNearest5(guests.Mul(dessertPiecesPerGuest))
		return Spec{Quantity: formatQuantity(pieces, unitPieces)}
	}

	return reviewSpec()
}

// RoundToNearest5 rounds x to the nearest multiple of five. Halves round
// away from zero, so 12.5 becomes 15.
func RoundToNearest5(x decimal.Decimal) int64 {
	return x.Div(roundingStep).Round(0).Mul(roundingStep).IntPart()
}

// IsKnownCategory reports whether category drives a calculation rule.
func IsKnownCategory(category string) bool {
	switch category {
	case enum.FoodCategoryPassed, enum.FoodCategoryPresented,
		enum.FoodCategoryBuffet, enum.FoodCategoryDessert:
		return true
	}
	return false
}

func reviewSpec() Spec {
	return Spec{Quantity: NotComputable, FlagForReview: true}
}

func formatQuantity(n int64, unit string) string {
	return fmt.Sprintf("%d %s", n, unit)
}
