package payroll

import "math"

// Kind names one of the two deduction shapes.
type Kind string

// Deduction computes the amount owed for an annual gross salary.
// Implementations are pure; the set is closed to CappedPremium and TieredTax.
type Deduction interface {
	Name() string
	Kind() Kind
	Tax(gross float64) float64
	deduction()
}

type Line struct {
	Name   string  `json:"name"`
	Kind   Kind    `json:"kind"`
	Amount float64 `json:"amount"`
}

func validFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
