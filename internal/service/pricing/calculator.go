package pricing

import (
	"fmt"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

// Calculator computes prices and deposits. It is safe for concurrent use.
type Calculator struct {
	rules    Rules
	packages map[string]Package
}

// NewCalculator validates rules and builds a calculator
func NewCalculator(rules Rules) (*Calculator, error) {
	if len(rules.Packages) == 0 {
		return nil, fmt.Errorf("%w: empty price table", ErrInvalidRules)
	}
	switch rules.AdditionalPricing {
	case AdditionalByPackage, AdditionalNone:
	case "":
		rules.AdditionalPricing = AdditionalByPackage
	default:
		return nil, fmt.Errorf("%w: additional pricing %q", ErrInvalidRules, rules.AdditionalPricing)
	}

	packages := make(map[string]Package, len(rules.Packages))
	for _, p := range rules.Packages {
		if p.Name == "" || p.Price < 0 {
			return nil, fmt.Errorf("%w: package %q priced %s", ErrInvalidRules, p.Name, p.Price)
		}
		if _, dup := packages[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate package %q", ErrInvalidRules, p.Name)
		}
		packages[p.Name] = p
	}
	if rules.GuestHourlyRate < 0 || rules.BridalDiscount < 0 || rules.PackageDeposit < 0 ||
		rules.PerPersonDeposit < 0 || rules.GuestDeposit < 0 {
		return nil, fmt.Errorf("%w: negative amount", ErrInvalidRules)
	}

	return &Calculator{rules: rules, packages: packages}, nil
}

// Known reports whether name is in the price table
func (c *Calculator) Known(name string) bool {
	_, ok := c.packages[name]
	return ok
}

// Packages returns the price table in display order
func (c *Calculator) Packages() []Package {
	out := make([]Package, len(c.rules.Packages))
	copy(out, c.rules.Packages)
	return out
}

// Rules returns the rules the calculator was built with
func (c *Calculator) Rules() Rules {
	r := c.rules
	r.Packages = c.Packages()
	return r
}

// Quote prices a selection.
//
// total   = base + additional + guest hours * hourly rate - discount
// deposit = package deposit + per-person deposit * additional + guest deposit
//
// The discount applies once, only when the primary package is bridal and at
// least one additional person picked a package. The deposit is never discounted.
func (c *Calculator) Quote(sel Selection) (domain.PriceQuote, error) {
	var q domain.PriceQuote

	primary, ok := c.packages[sel.Package]
	if !ok {
		return q, fmt.Errorf("%w: %q", ErrUnknownPackage, sel.Package)
	}
	if sel.GuestHours < 0 {
		return q, fmt.Errorf("%w: negative guest hours", ErrInvalidSelection)
	}
	q.Base = primary.Price

	anyAdditional := false
	for i, name := range sel.AdditionalPackages {
		if name == "" {
			return q, fmt.Errorf("%w: additional person %d has no package", ErrInvalidSelection, i+1)
		}
		p, ok := c.packages[name]
		if !ok {
			return q, fmt.Errorf("%w: %q", ErrUnknownPackage, name)
		}
		anyAdditional = true
		if c.rules.AdditionalPricing == AdditionalByPackage {
			q.Additional += p.Price
		}
	}

	if sel.GuestHours > 0 {
		q.Guest = c.rules.GuestHourlyRate * domain.Money(sel.GuestHours)
	}

	if primary.Bridal && anyAdditional && c.rules.AdditionalPricing == AdditionalByPackage {
		q.Discount = c.rules.BridalDiscount
		q.DiscountApplied = true
	}

	q.Total = q.Base + q.Additional + q.Guest - q.Discount
	if q.Total < 0 {
		q.Total = 0
	}

	q.Deposit = c.rules.PackageDeposit + c.rules.PerPersonDeposit*domain.Money(len(sel.AdditionalPackages))
	if sel.GuestHours > 0 {
		q.Deposit += c.rules.GuestDeposit
	}

	return q, nil
}
