package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"payroll/internal/domain/payroll"
)

func TestDefaultPolicyBuilds(t *testing.T) {
	policy := DefaultPolicy()
	deductions, err := policy.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deductions) != 5 {
		t.Fatalf("expected 5 deductions, got %d", len(deductions))
	}
	if policy.MinimumWage != 10.35 {
		t.Fatalf("unexpected minimum wage %v", policy.MinimumWage)
	}
	wantKinds := []payroll.Kind{payroll.KindTiered, payroll.KindTiered, payroll.KindCapped, payroll.KindCapped, payroll.KindCapped}
	for i, d := range deductions {
		if d.Kind() != wantKinds[i] {
			t.Fatalf("deduction %d: expected %s, got %s", i, wantKinds[i], d.Kind())
		}
	}
}

func TestLoadPolicyEmptyPathUsesDefaults(t *testing.T) {
	policy, err := LoadPolicy("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(policy.Deductions) != 5 {
		t.Fatalf("expected default deductions, got %d", len(policy.Deductions))
	}
}

func TestLoadPolicyFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	content := []byte(`minimumWage: 15.5
deductions:
  - name: flat_tax
    kind: tiered
    thresholds: [10000, 20000, 30000]
    rates: [0.1, 0.1, 0.1, 0.1]
  - name: health_premium
    kind: capped
    rate: 0.01
    cap: 100
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}

	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy returned error: %v", err)
	}
	if policy.MinimumWage != 15.5 {
		t.Errorf("unexpected minimum wage %v", policy.MinimumWage)
	}
	deductions, err := policy.Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(deductions) != 2 || deductions[0].Name() != "flat_tax" || deductions[1].Name() != "health_premium" {
		t.Fatalf("unexpected deductions %+v", deductions)
	}
	if got := deductions[1].Tax(50000); got != 100 {
		t.Errorf("expected capped premium 100, got %v", got)
	}
}

func TestLoadPolicyKeepsDefaultDeductionsWhenOmitted(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("minimumWage: 12\n"), 0o600); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}
	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if policy.MinimumWage != 12 || len(policy.Deductions) != 5 {
		t.Fatalf("unexpected merge result %+v", policy)
	}
}

func TestLoadPolicyRespectsExplicitZeroValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("minimumWage: 0\ndeductions: []\n"), 0o600); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}
	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if policy.MinimumWage != 0 || len(policy.Deductions) != 0 {
		t.Fatalf("expected explicit zero values to win, got %+v", policy)
	}
	deductions, err := policy.Build()
	if err != nil || len(deductions) != 0 {
		t.Fatalf("expected an empty deduction list, got %v, %v", deductions, err)
	}
}

func TestLoadPolicyErrors(t *testing.T) {
	t.Parallel()

	if _, err := LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("deductions: [::"), 0o600); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}
	if _, err := LoadPolicy(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestPolicyBuildRejectsBadDeductions(t *testing.T) {
	cases := map[string]Policy{
		"unknown kind":      {Deductions: []DeductionConfig{{Name: "x", Kind: "flat"}}},
		"missing name":      {Deductions: []DeductionConfig{{Kind: payroll.KindCapped, Rate: 0.1, Cap: 1}}},
		"duplicate name":    {Deductions: []DeductionConfig{{Name: "x", Kind: payroll.KindCapped, Rate: 0.1, Cap: 1}, {Name: "x", Kind: payroll.KindCapped, Rate: 0.1, Cap: 1}}},
		"zero rate":         {Deductions: []DeductionConfig{{Name: "x", Kind: payroll.KindCapped, Rate: 0, Cap: 1}}},
		"short thresholds":  {Deductions: []DeductionConfig{{Name: "x", Kind: payroll.KindTiered, Thresholds: []float64{1, 2}, Rates: []float64{0, 0, 0, 0}}}},
		"unordered tiers":   {Deductions: []DeductionConfig{{Name: "x", Kind: payroll.KindTiered, Thresholds: []float64{3, 2, 1}, Rates: []float64{0, 0, 0, 0}}}},
		"negative min wage": {MinimumWage: -1},
	}
	for name, policy := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := policy.Build(); !errors.Is(err, payroll.ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestDescribeRoundTripsDefaults(t *testing.T) {
	deductions, err := DefaultPolicy().Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	described := Describe(deductions)
	rebuilt, err := Policy{MinimumWage: 10.35, Deductions: described}.Build()
	if err != nil {
		t.Fatalf("described policy does not build: %v", err)
	}
	for _, gross := range []float64{0, 25000, 41600, 90000, 150000} {
		a, _ := payroll.ComputePayroll(gross, deductions)
		b, _ := payroll.ComputePayroll(gross, rebuilt)
		if a != b {
			t.Fatalf("gross %v: %v != %v", gross, a, b)
		}
	}
}

func TestPolicyYAML(t *testing.T) {
	raw, err := DefaultPolicy().YAML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}
	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("rendered policy does not load: %v", err)
	}
	if len(policy.Deductions) != 5 || policy.Deductions[4].Cap != 2535.75 {
		t.Fatalf("unexpected policy %+v", policy)
	}
}
