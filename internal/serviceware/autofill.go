package serviceware

import (
	"github.com/eventops/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Counts are the per-table China rows that staff may override after
// generation.
type Counts struct {
	SaltPepperShakers int `json:"salt_pepper_shakers"`
	BreadBaskets      int `json:"bread_baskets"`
}

// AutoFill regenerates all three lists from the tier template.
//
// Sizing always starts from guestCount plus SafetyBuffer. Small plates are
// doubled when the event serves both appetizers and desserts. On China
// events the B&B plates also sit under carafes, one per carafe per table.
// An unrecognized paperType yields empty lists. Guest and carafe counts
// saturate at enum.MaxGuestCount.
func AutoFill(paperType string, guestCount int, hasAppetizersAndDesserts bool, carafesPerTable int) Collections {
	tier, ok := ResolveTier(paperType)
	if !ok {
		return EmptyCollections()
	}

	count := guestsWithBuffer(guestCount)
	appetizerQty := count
	if hasAppetizersAndDesserts {
		appetizerQty = count * 2
	}
	tables := max(1, ceilDiv(count, GuestsPerTable))
	carafePlates := saturate(carafesPerTable) * tables

	supplier := tier.Supplier()
	row := func(name string, qty int) Item {
		return NewItem(name, supplier, Qty(qty))
	}

	if tier == TierChina {
		counts := chinaCounts(count)
		return Collections{
			Plates: []Item{
				row(NameBreadButter, appetizerQty+carafePlates),
				row(NameSaladPlates, count),
				row(NameDinnerPlates, count),
				row(NameSaltPepper, counts.SaltPepperShakers),
				row(NameBreadBaskets, counts.BreadBaskets),
			},
			Cutlery: []Item{
				row(NameDinnerForks, count),
				row(NameSaladForks, count),
				row(NameDinnerKnives, count),
				row(NameTeaspoons, count),
			},
			Glassware: []Item{
				row(NameAllPurposeGlass, count),
				row(NameWineGlasses, count),
				row(NameChampagneFlutes, champagneFlutes(count)),
			},
		}
	}

	return Collections{
		Plates: []Item{
			row(NameSmallPlates, appetizerQty),
			row(NameLargePlates, count),
		},
		Cutlery: []Item{
			row(NameForks, count),
			row(NameKnives, count),
			row(NameSpoons, count),
			row(NameCocktailNapkins, count),
			row(NameDinnerNapkins, count),
		},
		Glassware: []Item{
			row(NameCups, count),
			row(NameCoffeeCups, count),
		},
	}
}

// ChinaCounts returns the default shaker and bread basket counts for
// guestCount, buffer included.
func ChinaCounts(guestCount int) Counts {
	return chinaCounts(guestsWithBuffer(guestCount))
}

func guestsWithBuffer(guestCount int) int {
	return saturate(guestCount) + SafetyBuffer
}

// saturate clamps n to [0, enum.MaxGuestCount].
func saturate(n int) int {
	return min(max(0, n), enum.MaxGuestCount)
}

func chinaCounts(count int) Counts {
	return Counts{
		SaltPepperShakers: ceilDiv(count, GuestsPerShakerSet),
		BreadBaskets:      ceilDiv(count, GuestsPerBreadBasket),
	}
}

func champagneFlutes(count int) int {
	return int(decimal.NewFromInt(int64(count)).Mul(champagneFluteRatio).Ceil().IntPart())
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
