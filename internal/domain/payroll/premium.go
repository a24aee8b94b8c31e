package payroll

import "fmt"

// CappedPremium is a flat percentage of gross capped at a dollar maximum.
type CappedPremium struct {
	name string
	rate float64
	cap  float64
}

func NewCappedPremium(name string, rate, maximum float64) (CappedPremium, error) {
	if !validFinite(rate, maximum) {
		return CappedPremium{}, fmt.Errorf("%w: %s: rate and cap must be finite", ErrInvalidParameter, name)
	}
	if rate <= 0 || rate > 1 {
		return CappedPremium{}, fmt.Errorf("%w: %s: rate %v must be in (0,1]", ErrInvalidParameter, name, rate)
	}
	if maximum <= 0 {
		return CappedPremium{}, fmt.Errorf("%w: %s: cap %v must be positive", ErrInvalidParameter, name, maximum)
	}
	return CappedPremium{name: name, rate: rate, cap: maximum}, nil
}

func (p CappedPremium) Name() string  { return p.name }
func (p CappedPremium) Kind() Kind    { return KindCapped }
func (p CappedPremium) Rate() float64 { return p.rate }
func (p CappedPremium) Cap() float64  { return p.cap }

// Tax applies the rate below the break-even gross cap/rate and the cap at or above it.
// The quotient is compared unrounded.
func (p CappedPremium) Tax(gross float64) float64 {
	if gross < p.cap/p.rate {
		return gross * p.rate
	}
	return p.cap
}

func (CappedPremium) deduction() {}
