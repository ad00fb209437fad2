package pricing

import "github.com/m04kA/mehndi-booking-service/internal/domain"

// AdditionalPricing selects how additional people are charged
type AdditionalPricing string

const (
	// AdditionalByPackage charges each additional person their package price
	AdditionalByPackage AdditionalPricing = "package"
	// AdditionalNone leaves additional people out of the up-front price
	AdditionalNone AdditionalPricing = "none"
)

// GuestPackage is the hourly guest/party option
const GuestPackage = "Guest/party booking"

// Package is a row of the price table
type Package struct {
	Name   string
	Price  domain.Money
	Bridal bool
}

// Rules parameterize the calculator
type Rules struct {
	Packages          []Package
	GuestHourlyRate   domain.Money
	BridalDiscount    domain.Money
	PackageDeposit    domain.Money
	PerPersonDeposit  domain.Money
	GuestDeposit      domain.Money
	AdditionalPricing AdditionalPricing
}

// Selection is what the customer picked
type Selection struct {
	Package            string
	AdditionalPackages []string
	GuestHours         int // 0 = no guest/party booking
}

// DefaultPackages is the published price list
func DefaultPackages() []Package {
	return []Package{
		{Name: "Classic", Price: domain.Pounds(175), Bridal: true},
		{Name: "Classic hands only", Price: domain.Pounds(125), Bridal: true},
		{Name: "Elegance", Price: domain.Pounds(200), Bridal: true},
		{Name: "Elegance hands only", Price: domain.Pounds(150), Bridal: true},
		{Name: "Picturesque", Price: domain.Pounds(250), Bridal: true},
		{Name: "Picturesque hands only", Price: domain.Pounds(200), Bridal: true},
		{Name: "Diamond", Price: domain.Pounds(300), Bridal: true},
		{Name: "Diamond hands only", Price: domain.Pounds(250), Bridal: true},
		{Name: "Showstopper", Price: domain.Pounds(350), Bridal: true},
		{Name: "Showstopper hands only", Price: domain.Pounds(300), Bridal: true},
		{Name: GuestPackage, Price: domain.Pounds(60)},
	}
}

// DefaultRules returns the published prices and deposits
func DefaultRules() Rules {
	return Rules{
		Packages:          DefaultPackages(),
		GuestHourlyRate:   domain.Pounds(60),
		BridalDiscount:    domain.Pounds(10),
		PackageDeposit:    domain.Pounds(50),
		PerPersonDeposit:  domain.Pounds(20),
		GuestDeposit:      domain.Pounds(20),
		AdditionalPricing: AdditionalByPackage,
	}
}
