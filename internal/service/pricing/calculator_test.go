package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

func newCalculator(t *testing.T, mutate ...func(*Rules)) *Calculator {
	t.Helper()
	rules := DefaultRules()
	for _, m := range mutate {
		m(&rules)
	}
	c, err := NewCalculator(rules)
	require.NoError(t, err)
	return c
}

func TestQuote_BridalWithAdditionalPerson(t *testing.T) {
	c := newCalculator(t)

	q, err := c.Quote(Selection{Package: "Classic", AdditionalPackages: []string{"Elegance"}})
	require.NoError(t, err)

	assert.Equal(t, domain.Pounds(365), q.Total)
	assert.Equal(t, domain.Pounds(70), q.Deposit)
	assert.True(t, q.DiscountApplied)
	assert.Equal(t, domain.Pounds(10), q.Discount)
}

func TestQuote_DiscountAppliedOnce(t *testing.T) {
	c := newCalculator(t)

	q, err := c.Quote(Selection{
		Package:            "Diamond",
		AdditionalPackages: []string{"Classic", "Classic hands only", "Elegance"},
	})
	require.NoError(t, err)

	// 300 + 175 + 125 + 200 - 10
	assert.Equal(t, domain.Pounds(790), q.Total)
	// 50 + 3 * 20
	assert.Equal(t, domain.Pounds(110), q.Deposit)
}

func TestQuote_NoDiscountWithoutAdditional(t *testing.T) {
	c := newCalculator(t)

	q, err := c.Quote(Selection{Package: "Showstopper"})
	require.NoError(t, err)
	assert.Equal(t, domain.Pounds(350), q.Total)
	assert.Equal(t, domain.Pounds(50), q.Deposit)
	assert.False(t, q.DiscountApplied)
}

func TestQuote_NoDiscountForNonBridalPrimary(t *testing.T) {
	c := newCalculator(t)

	q, err := c.Quote(Selection{Package: GuestPackage, AdditionalPackages: []string{"Classic"}})
	require.NoError(t, err)
	assert.Equal(t, domain.Pounds(235), q.Total)
	assert.False(t, q.DiscountApplied)
}

func TestQuote_GuestBooking(t *testing.T) {
	c := newCalculator(t)

	q, err := c.Quote(Selection{Package: "Elegance", GuestHours: 3})
	require.NoError(t, err)
	assert.Equal(t, domain.Pounds(200+180), q.Total)
	assert.Equal(t, domain.Pounds(50+20), q.Deposit)
	assert.Equal(t, domain.Pounds(180), q.Guest)
}

func TestQuote_AdditionalPricingNone(t *testing.T) {
	c := newCalculator(t, func(r *Rules) { r.AdditionalPricing = AdditionalNone })

	q, err := c.Quote(Selection{Package: "Classic", AdditionalPackages: []string{"Elegance"}})
	require.NoError(t, err)
	assert.Equal(t, domain.Pounds(175), q.Total)
	assert.Equal(t, domain.Pounds(70), q.Deposit)
	assert.False(t, q.DiscountApplied)
}

func TestQuote_Errors(t *testing.T) {
	c := newCalculator(t)

	_, err := c.Quote(Selection{Package: "Gold"})
	assert.ErrorIs(t, err, ErrUnknownPackage)

	_, err = c.Quote(Selection{Package: "Classic", AdditionalPackages: []string{""}})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = c.Quote(Selection{Package: "Classic", AdditionalPackages: []string{"Platinum"}})
	assert.ErrorIs(t, err, ErrUnknownPackage)
}

func TestNewCalculator_RejectsBadRules(t *testing.T) {
	_, err := NewCalculator(Rules{})
	assert.ErrorIs(t, err, ErrInvalidRules)

	rules := DefaultRules()
	rules.AdditionalPricing = "percent"
	_, err = NewCalculator(rules)
	assert.ErrorIs(t, err, ErrInvalidRules)

	rules = DefaultRules()
	rules.Packages = append(rules.Packages, Package{Name: "Classic", Price: domain.Pounds(1)})
	_, err = NewCalculator(rules)
	assert.ErrorIs(t, err, ErrInvalidRules)
}
