package domain

import "fmt"

// Money is an amount in pence
type Money int64

// Pounds converts whole pounds to Money
func Pounds(p int64) Money {
	return Money(p * 100)
}

// Pence returns the minor-unit amount
func (m Money) Pence() int64 {
	return int64(m)
}

// String formats as £175.00
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s£%d.%02d", sign, v/100, v%100)
}

// PriceQuote is the server-side price for a booking
type PriceQuote struct {
	Base            Money
	Additional      Money
	Guest           Money
	Discount        Money
	Total           Money
	Deposit         Money
	DiscountApplied bool
}
