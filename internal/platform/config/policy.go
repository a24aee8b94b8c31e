package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"payroll/internal/domain/payroll"
)

// Policy is the tax policy applied to every employee: the minimum wage floor
// and the ordered list of deductions.
type Policy struct {
	MinimumWage float64           `yaml:"minimumWage"`
	Deductions  []DeductionConfig `yaml:"deductions"`
}

// DeductionConfig describes one deduction. Capped premiums use Rate and Cap;
// tiered taxes use Thresholds and Rates.
type DeductionConfig struct {
	Name       string       `yaml:"name" json:"name"`
	Kind       payroll.Kind `yaml:"kind" json:"kind"`
	Rate       float64      `yaml:"rate,omitempty" json:"rate,omitempty"`
	Cap        float64      `yaml:"cap,omitempty" json:"cap,omitempty"`
	Thresholds []float64    `yaml:"thresholds,omitempty,flow" json:"thresholds,omitempty"`
	Rates      []float64    `yaml:"rates,omitempty,flow" json:"rates,omitempty"`
}

func DefaultPolicy() Policy {
	return Policy{
		MinimumWage: payroll.DefaultMinimumWage,
		Deductions: []DeductionConfig{
			{Name: "provincial_tax", Kind: payroll.KindTiered, Thresholds: []float64{41495, 82985, 100970}, Rates: []float64{0.16, 0.20, 0.24, 0.2575}},
			{Name: "federal_tax", Kind: payroll.KindTiered, Thresholds: []float64{43953, 87907, 136270}, Rates: []float64{0.15, 0.22, 0.26, 0.29}},
			{Name: "employment_insurance", Kind: payroll.KindCapped, Rate: 0.0153, Cap: 743.58},
			{Name: "parental_insurance", Kind: payroll.KindCapped, Rate: 0.00559, Cap: 385.71},
			{Name: "pension_plan", Kind: payroll.KindCapped, Rate: 0.05175, Cap: 2535.75},
		},
	}
}

// policyFile mirrors Policy with optional fields so that a key present in the
// file, even as 0 or [], replaces the default while an absent key keeps it.
type policyFile struct {
	MinimumWage *float64           `yaml:"minimumWage"`
	Deductions  *[]DeductionConfig `yaml:"deductions"`
}

// LoadPolicy reads a YAML policy file over the defaults. An empty path
// returns DefaultPolicy. Keys set in the file win, including explicit zero
// and empty values.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("config: read policy %s: %w", path, err)
	}
	var fileCfg policyFile
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return Policy{}, fmt.Errorf("config: parse policy %s: %w", path, err)
	}
	return mergePolicy(policy, fileCfg), nil
}

func mergePolicy(base Policy, override policyFile) Policy {
	if override.MinimumWage != nil {
		base.MinimumWage = *override.MinimumWage
	}
	if override.Deductions != nil {
		base.Deductions = *override.Deductions
	}
	return base
}

// Build constructs the validated deductions. Any error wraps
// payroll.ErrInvalidParameter and is fatal for the caller.
func (p Policy) Build() ([]payroll.Deduction, error) {
	if p.MinimumWage < 0 {
		return nil, fmt.Errorf("%w: minimumWage %v must not be negative", payroll.ErrInvalidParameter, p.MinimumWage)
	}
	seen := make(map[string]struct{}, len(p.Deductions))
	out := make([]payroll.Deduction, 0, len(p.Deductions))
	for i, d := range p.Deductions {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: deductions[%d]: name is required", payroll.ErrInvalidParameter, i)
		}
		if _, dup := seen[d.Name]; dup {
			return nil, fmt.Errorf("%w: deductions[%d]: duplicate name %q", payroll.ErrInvalidParameter, i, d.Name)
		}
		seen[d.Name] = struct{}{}

		deduction, err := d.build()
		if err != nil {
			return nil, fmt.Errorf("deductions[%d]: %w", i, err)
		}
		out = append(out, deduction)
	}
	return out, nil
}

func (d DeductionConfig) build() (payroll.Deduction, error) {
	switch d.Kind {
	case payroll.KindCapped:
		premium, err := payroll.NewCappedPremium(d.Name, d.Rate, d.Cap)
		if err != nil {
			return nil, err
		}
		return premium, nil
	case payroll.KindTiered:
		if len(d.Thresholds) != 3 || len(d.Rates) != 4 {
			return nil, fmt.Errorf("%w: %s: tiered tax needs 3 thresholds and 4 rates, got %d and %d",
				payroll.ErrInvalidParameter, d.Name, len(d.Thresholds), len(d.Rates))
		}
		tax, err := payroll.NewTieredTax(d.Name,
			[3]float64{d.Thresholds[0], d.Thresholds[1], d.Thresholds[2]},
			[4]float64{d.Rates[0], d.Rates[1], d.Rates[2], d.Rates[3]})
		if err != nil {
			return nil, err
		}
		return tax, nil
	default:
		return nil, fmt.Errorf("%w: %s: unknown kind %q", payroll.ErrInvalidParameter, d.Name, d.Kind)
	}
}

// Describe converts built deductions back to their configuration form.
func Describe(deductions []payroll.Deduction) []DeductionConfig {
	out := make([]DeductionConfig, 0, len(deductions))
	for _, d := range deductions {
		switch v := d.(type) {
		case payroll.CappedPremium:
			out = append(out, DeductionConfig{Name: v.Name(), Kind: v.Kind(), Rate: v.Rate(), Cap: v.Cap()})
		case payroll.TieredTax:
			th, r := v.Thresholds(), v.Rates()
			out = append(out, DeductionConfig{Name: v.Name(), Kind: v.Kind(), Thresholds: th[:], Rates: r[:]})
		}
	}
	return out
}

// YAML renders the policy in the same shape LoadPolicy reads.
func (p Policy) YAML() ([]byte, error) {
	return yaml.Marshal(p)
}
