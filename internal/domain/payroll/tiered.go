package payroll

import "fmt"

// TieredTax is a four-bracket progressive tax separated by three thresholds.
type TieredTax struct {
	name       string
	thresholds [3]float64
	rates      [4]float64
}

func NewTieredTax(name string, thresholds [3]float64, rates [4]float64) (TieredTax, error) {
	if !validFinite(thresholds[:]...) || !validFinite(rates[:]...) {
		return TieredTax{}, fmt.Errorf("%w: %s: thresholds and rates must be finite", ErrInvalidParameter, name)
	}
	t1, t2, t3 := thresholds[0], thresholds[1], thresholds[2]
	if !(0 < t1 && t1 < t2 && t2 < t3) {
		return TieredTax{}, fmt.Errorf("%w: %s: thresholds %v must satisfy 0 < t1 < t2 < t3", ErrInvalidParameter, name, thresholds)
	}
	for i, r := range rates {
		if r < 0 || r > 1 {
			return TieredTax{}, fmt.Errorf("%w: %s: rate r%d=%v must be in [0,1]", ErrInvalidParameter, name, i+1, r)
		}
	}
	return TieredTax{name: name, thresholds: thresholds, rates: rates}, nil
}

func (t TieredTax) Name() string           { return t.name }
func (t TieredTax) Kind() Kind             { return KindTiered }
func (t TieredTax) Thresholds() [3]float64 { return t.thresholds }
func (t TieredTax) Rates() [4]float64      { return t.rates }

func (t TieredTax) Tax(gross float64) float64 {
	t1, t2, t3 := t.thresholds[0], t.thresholds[1], t.thresholds[2]
	r1, r2, r3, r4 := t.rates[0], t.rates[1], t.rates[2], t.rates[3]
	switch {
	case gross <= t1:
		return gross * r1
	case gross <= t2:
		return t1*r1 + (gross-t1)*r2
	case gross <= t3:
		return t1*r1 + (t2-t1)*r2 + (gross-t2)*r3
	default:
		return t1*r1 + (t2-t1)*r2 + (t3-t2)*r3 + (gross-t3)*r4
	}
}

func (TieredTax) deduction() {}
