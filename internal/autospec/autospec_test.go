package autospec

import (
	"math"
	"testing"

	"github.com/eventops/api/internal/enum"
	"github.com/shopspring/decimal"
)

func TestCalculate_NoGuests(t *testing.T) {
	categories := []string{
		enum.FoodCategoryPassed,
		enum.FoodCategoryPresented,
		enum.FoodCategoryBuffet,
		enum.FoodCategoryDessert,
		"entree",
		"",
	}
	for _, guests := range []int{0, -1, -40} {
		for _, cat := range categories {
			got := Calculate("Crab Cakes", cat, guests)
			if got.Quantity != NotComputable {
				t.Errorf("Calculate(%q, %d): quantity = %q, want %q", cat, guests, got.Quantity, NotComputable)
			}
			if !got.FlagForReview {
				t.Errorf("Calculate(%q, %d): expected flag for review", cat, guests)
			}
		}
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		category string
		guests   int
		quantity string
		notes    string
		flagged  bool
	}{
		{"passed 33 guests", enum.FoodCategoryPassed, 33, "45 PC", "", false},
		{"presented 33 guests", enum.FoodCategoryPresented, 33, "45 PC", "", false},
		{"passed 100 guests", enum.FoodCategoryPassed, 100, "135 PC", "", false},
		{"passed tie rounds up", enum.FoodCategoryPassed, 50, "70 PC", "", false},
		{"passed single guest", enum.FoodCategoryPassed, 1, "0 PC", "", false},
		{"passed two guests", enum.FoodCategoryPassed, 2, "5 PC", "", false},
		{"buffet 81 guests", enum.FoodCategoryBuffet, 81, "3 HOTEL", BuffetReviewNote, false},
		{"buffet 40 guests", enum.FoodCategoryBuffet, 40, "1 HOTEL", BuffetReviewNote, false},
		{"buffet 1 guest", enum.FoodCategoryBuffet, 1, "1 HOTEL", BuffetReviewNote, false},
		{"dessert 52 guests", enum.FoodCategoryDessert, 52, "50 PC", "", false},
		{"dessert 53 guests", enum.FoodCategoryDessert, 53, "55 PC", "", false},
		{"dessert rounds down", enum.FoodCategoryDessert, 12, "10 PC", "", false},
		{"unknown category", "entree", 50, NotComputable, "", true},
		{"empty category", "", 50, NotComputable, "", true},
		{"category is case sensitive", "Passed", 50, NotComputable, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate("Any Item", tt.category, tt.guests)
			if got.Quantity != tt.quantity {
				t.Errorf("quantity: got %q, want %q", got.Quantity, tt.quantity)
			}
			if got.Notes != tt.notes {
				t.Errorf("notes: got %q, want %q", got.Notes, tt.notes)
			}
			if got.FlagForReview != tt.flagged {
				t.Errorf("flag for review: got %v, want %v", got.FlagForReview, tt.flagged)
			}
		})
	}
}

func TestCalculate_IgnoresItemName(t *testing.T) {
	// A protein filed under buffet still gets the side-dish formula.
	a := Calculate("Beef Tenderloin", enum.FoodCategoryBuffet, 120)
	b := Calculate("Roasted Vegetables", enum.FoodCategoryBuffet, 120)
	if a != b {
		t.Errorf("results differ by item name: %+v vs %+v", a, b)
	}
	if a.Quantity != "3 HOTEL" {
		t.Errorf("quantity: got %q, want %q", a.Quantity, "3 HOTEL")
	}
}

func TestCalculate_PassedMatchesFormula(t *testing.T) {
	for guests := 1; guests <= 500; guests++ {
		raw := decimal.NewFromInt(int64(guests)).Mul(decimal.RequireFromString("1.35"))
		want := RoundToNearest5(raw)
		got := Calculate("", enum.FoodCategoryPassed, guests)
		if got.Quantity != formatQuantity(want, unitPieces) {
			t.Fatalf("guests=%d: got %q, want %d PC", guests, got.Quantity, want)
		}
		if want%5 != 0 {
			t.Fatalf("guests=%d: %d is not a multiple of 5", guests, want)
		}
	}
}

func TestRoundToNearest5(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"2.4", 0},
		{"2.5", 5},
		{"44.55", 45},
		{"47.5", 50},
		{"52", 50},
		{"67.5", 70},
		{"72.4", 70},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := RoundToNearest5(decimal.RequireFromString(tt.input))
			if got != tt.want {
				t.Errorf("RoundToNearest5(%s) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsKnownCategory(t *testing.T) {
	for _, c := range []string{"passed", "presented", "buffet", "dessert"} {
		if !IsKnownCategory(c) {
			t.Errorf("IsKnownCategory(%q) = false", c)
		}
	}
	for _, c := range []string{"", "entree", "Dessert"} {
		if IsKnownCategory(c) {
			t.Errorf("IsKnownCategory(%q) = true", c)
		}
	}
}

func TestCalculate_HugeGuestCountSaturates(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{enum.FoodCategoryPassed, "135000 PC"},
		{enum.FoodCategoryBuffet, "2500 HOTEL"},
		{enum.FoodCategoryDessert, "100000 PC"},
	}
	for _, tt := range tests {
		if got := Calculate("Item", tt.category, math.MaxInt); got.Quantity != tt.want {
			t.Errorf("%s: got %q, want %q", tt.category, got.Quantity, tt.want)
		}
	}
}

func TestSpecNeedsReview(t *testing.T) {
	tests := []struct {
		category string
		guests   int
		want     bool
	}{
		{enum.FoodCategoryPassed, 50, false},
		{enum.FoodCategoryDessert, 50, false},
		{enum.FoodCategoryBuffet, 50, true},
		{"entree", 50, true},
		{enum.FoodCategoryPassed, 0, true},
	}
	for _, tt := range tests {
		if got := Calculate("Item", tt.category, tt.guests).NeedsReview(); got != tt.want {
			t.Errorf("%s/%d: got %v, want %v", tt.category, tt.guests, got, tt.want)
		}
	}
}
