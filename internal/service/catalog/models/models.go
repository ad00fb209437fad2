package models

// CatalogResponse describes what can be booked and what it costs
type CatalogResponse struct {
	Currency        string            `json:"currency"`
	Timezone        string            `json:"timezone"`
	DurationMinutes int               `json:"durationMinutes"`
	LookaheadDays   int               `json:"lookaheadDays"`
	TermsRequired   bool              `json:"termsRequired"`
	Windows         []WindowResponse  `json:"windows"`
	Packages        []PackageResponse `json:"packages"`
	Deposit         DepositResponse   `json:"deposit"`
	BridalDiscount  string            `json:"bridalDiscount"`
	GuestHourlyRate string            `json:"guestHourlyRate"`
	MaxAdditional   int               `json:"maxAdditionalPeople"`
	GuestHours      HoursRange        `json:"guestHours"`
}

type WindowResponse struct {
	Slot string `json:"slot"`
	From string `json:"from"`
	To   string `json:"to"`
}

// PackageResponse is one row of the price table. Amounts are in pence
// with a formatted copy for display.
type PackageResponse struct {
	Name       string `json:"name"`
	PricePence int64  `json:"pricePence"`
	Price      string `json:"price"`
	Bridal     bool   `json:"bridal"`
	// DurationMinutes is set only when it differs from the default
	DurationMinutes int `json:"durationMinutes,omitempty"`
}

type DepositResponse struct {
	Package          string `json:"package"`
	PerPerson        string `json:"perAdditionalPerson"`
	GuestBooking     string `json:"guestBooking"`
	AdditionalPeople string `json:"additionalPersonPricing"`
}

type HoursRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}
