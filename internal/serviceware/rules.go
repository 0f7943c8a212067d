package serviceware

import (
	"github.com/eventops/api/internal/enum"
	"github.com/shopspring/decimal"
)

const (
	// SafetyBuffer is added to every guest count before sizing.
	SafetyBuffer = 15

	// GuestsPerTable is the fixed seating assumption used for per-table items.
	GuestsPerTable = 8

	// GuestsPerShakerSet sizes salt-and-pepper shakers on china events.
	GuestsPerShakerSet = 10

	// GuestsPerBreadBasket sizes bread baskets on china events.
	GuestsPerBreadBasket = 8
)

// Champagne flutes cover a toast for roughly a third of the room.
var champagneFluteRatio = decimal.RequireFromString("0.3")

// ProvidedByHost replaces the quantity of client-supplied rows.
const ProvidedByHost = "Provided by host"

const (
	lineBullet = "•"
	lineDash   = "–"
)

// Tier is a serviceware quality level.
type Tier string

const (
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
	TierChina    Tier = "china"
)

// ResolveTier maps a paper type selection, including its short synonyms, to
// a Tier.
func ResolveTier(paperType string) (Tier, bool) {
	switch paperType {
	case enum.PaperTypeStandard, enum.PaperTypeStandardShort:
		return TierStandard, true
	case enum.PaperTypePremium, enum.PaperTypePremiumShort:
		return TierPremium, true
	case enum.PaperTypeChina:
		return TierChina, true
	}
	return "", false
}

// Supplier returns the supplier tag written on rows generated for the tier.
func (t Tier) Supplier() string {
	switch t {
	case TierStandard:
		return enum.SupplierStandard
	case TierPremium:
		return enum.SupplierPremium
	case TierChina:
		return enum.SupplierChina
	}
	return ""
}

// Row names generated by AutoFill.
const (
	NameSmallPlates     = "Small Plates"
	NameLargePlates     = "Large Plates"
	NameForks           = "Forks"
	NameKnives          = "Knives"
	NameSpoons          = "Spoons"
	NameCocktailNapkins = "Cocktail Napkins"
	NameDinnerNapkins   = "Dinner Napkins"
	NameCups            = "Cups"
	NameCoffeeCups      = "Coffee Cups"
	NameBreadButter     = "B&B Plates"
	NameSaladPlates     = "Salad Plates"
	NameDinnerPlates    = "Dinner Plates"
	NameSaltPepper      = "S&P Shakers"
	NameBreadBaskets    = "Bread Baskets"
	NameDinnerForks     = "Dinner Forks"
	NameSaladForks      = "Salad Forks"
	NameDinnerKnives    = "Dinner Knives"
	NameTeaspoons       = "Teaspoons"
	NameAllPurposeGlass = "All-Purpose Glasses"
	NameWineGlasses     = "Wine Glasses"
	NameChampagneFlutes = "Champagne Flutes"
)
