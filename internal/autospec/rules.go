package autospec

import "github.com/shopspring/decimal"

// NotComputable is the quantity shown when no rule applies.
const NotComputable = "—"

// BuffetReviewNote accompanies every buffet quantity. The hotel-pan formula
// assumes a side dish; proteins and sauces are sized by hand.
const BuffetReviewNote = "⚠️ Verify if protein or sauce (default assumes side dish)"

const (
	unitPieces = "PC"
	unitHotel  = "HOTEL"
)

var (
	// Passed and presented appetizers are provisioned above one piece per
	// guest to cover repeat takes.
	appetizerPiecesPerGuest = decimal.RequireFromString("1.35")

	// Desserts start at one piece per guest before rounding.
	dessertPiecesPerGuest = decimal.NewFromInt(1)

	guestsPerHotelPan = decimal.NewFromInt(40)

	// Prep sheets are written in multiples of five.
	roundingStep = decimal.NewFromInt(5)
)
