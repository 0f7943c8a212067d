package enum

// ── Group A: Calculation drivers (closed sets, unknown values are flagged) ──

const (
	FoodCategoryPassed    = "passed"
	FoodCategoryPresented = "presented"
	FoodCategoryBuffet    = "buffet"
	FoodCategoryDessert   = "dessert"
)

// MaxGuestCount bounds every guest count accepted for sizing. Larger
// values are treated as this many guests.
const MaxGuestCount = 100000

const (
	PaperTypeStandard      = "Standard Paper"
	PaperTypeStandardShort = "Standard"
	PaperTypePremium       = "Premium Paper"
	PaperTypePremiumShort  = "Premium"
	PaperTypeChina         = "China"
)

const (
	ServicewareKindPlates    = "plates"
	ServicewareKindCutlery   = "cutlery"
	ServicewareKindGlassware = "glassware"
)

// ── Group B: Configurable labels (stored as free text) ──

const (
	ServicewareSourceFoodWerx = "FoodWerx"
	ServicewareSourceClient   = "Client"
	ServicewareSourceRentals  = "Rentals"
)

const (
	SupplierStandard = "FoodWerx Standard"
	SupplierPremium  = "FoodWerx Premium"
	SupplierChina    = "FoodWerx China"
	SupplierClient   = "Client"
	SupplierRentals  = "Rentals"
	SupplierVenue    = "Venue"
)

// ── Group C: Access control ──

const (
	UserRoleAdmin       = "ADMIN"
	UserRoleCoordinator = "COORDINATOR"
	UserRoleKitchen     = "KITCHEN"
)

const (
	StoreBackendAirtable = "airtable"
	StoreBackendPostgres = "postgres"
)

// WebSocket event types
const (
	EventSubscribed         = "subscribed"
	EventServicewareUpdated = "serviceware.updated"
)
