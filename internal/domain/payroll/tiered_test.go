package payroll

import (
	"errors"
	"math"
	"testing"
)

func provincialTax(t *testing.T) TieredTax {
	t.Helper()
	tax, err := NewTieredTax("provincial_tax", [3]float64{41495, 82985, 100970}, [4]float64{0.16, 0.20, 0.24, 0.2575})
	if err != nil {
		t.Fatalf("tiered tax error: %v", err)
	}
	return tax
}

func TestTieredTaxSecondBracket(t *testing.T) {
	tax := provincialTax(t)
	got := tax.Tax(50000)
	if math.Abs(got-8340.20) > 1e-6 {
		t.Fatalf("expected 8340.20, got %v", got)
	}
	if Amount(got) != "8340.20" {
		t.Fatalf("expected formatted 8340.20, got %s", Amount(got))
	}
}

func TestTieredTaxBrackets(t *testing.T) {
	tax := provincialTax(t)
	cases := []struct {
		gross float64
		want  float64
	}{
		{gross: 0, want: 0},
		{gross: 10000, want: 1600},
		{gross: 41495, want: 6639.2},
		{gross: 82985, want: 6639.2 + 8298},
		{gross: 100970, want: 6639.2 + 8298 + 4316.4},
		{gross: 120970, want: 6639.2 + 8298 + 4316.4 + 5150},
	}
	for _, tc := range cases {
		if got := tax.Tax(tc.gross); math.Abs(got-tc.want) > 1e-6 {
			t.Fatalf("gross %v: expected %v, got %v", tc.gross, tc.want, got)
		}
	}
}

func TestTieredTaxContinuousAtThresholds(t *testing.T) {
	tax := provincialTax(t)
	r := tax.Rates()
	for i, edge := range tax.Thresholds() {
		at := tax.Tax(edge)
		above := tax.Tax(math.Nextafter(edge, math.Inf(1)))
		if math.Abs(above-at) > 1e-6 {
			t.Fatalf("discontinuity at t%d=%v: %v vs %v", i+1, edge, at, above)
		}
		// the upper branch evaluated exactly at the edge
		upper := tax.Tax(edge+1) - r[i+1]
		if math.Abs(upper-at) > 1e-6 {
			t.Fatalf("upper branch mismatch at t%d: %v vs %v", i+1, upper, at)
		}
	}
}

func TestTieredTaxMonotonic(t *testing.T) {
	tax := provincialTax(t)
	prev := tax.Tax(0)
	for g := 0.0; g <= 250000; g += 123.25 {
		got := tax.Tax(g)
		if got+1e-9 < prev {
			t.Fatalf("tax decreased at gross %v", g)
		}
		prev = got
	}
}

func TestNewTieredTaxRejectsInvalidParameters(t *testing.T) {
	rates := [4]float64{0.1, 0.2, 0.3, 0.4}
	cases := []struct {
		name       string
		thresholds [3]float64
		rates      [4]float64
	}{
		{name: "zero first threshold", thresholds: [3]float64{0, 10, 20}, rates: rates},
		{name: "equal thresholds", thresholds: [3]float64{10, 10, 20}, rates: rates},
		{name: "descending thresholds", thresholds: [3]float64{30, 20, 10}, rates: rates},
		{name: "negative rate", thresholds: [3]float64{10, 20, 30}, rates: [4]float64{-0.1, 0.2, 0.3, 0.4}},
		{name: "rate above one", thresholds: [3]float64{10, 20, 30}, rates: [4]float64{0.1, 0.2, 0.3, 1.4}},
		{name: "nan threshold", thresholds: [3]float64{10, math.NaN(), 30}, rates: rates},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTieredTax("t", tc.thresholds, tc.rates)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}
