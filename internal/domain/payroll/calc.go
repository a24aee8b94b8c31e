package payroll

// ComputePayroll folds gross through every deduction and returns the summed
// deduction and the resulting net.
func ComputePayroll(gross float64, deductions []Deduction) (total, net float64) {
	for _, d := range deductions {
		total += d.Tax(gross)
	}
	net = gross - total
	return total, net
}

type Calculator struct {
	deductions []Deduction
}

func NewCalculator(deductions ...Deduction) *Calculator {
	out := make([]Deduction, len(deductions))
	copy(out, deductions)
	return &Calculator{deductions: out}
}

func (c *Calculator) Deductions() []Deduction {
	out := make([]Deduction, len(c.deductions))
	copy(out, c.deductions)
	return out
}

// Gross evaluates every deduction for one annual gross salary.
func (c *Calculator) Gross(gross float64) Result {
	res := Result{Gross: gross, Breakdown: make([]Line, 0, len(c.deductions))}
	for _, d := range c.deductions {
		amount := d.Tax(gross)
		res.Breakdown = append(res.Breakdown, Line{Name: d.Name(), Kind: d.Kind(), Amount: amount})
		res.Deductions += amount
	}
	res.Net = gross - res.Deductions
	return res
}

func (c *Calculator) Compute(e Employee) Result {
	res := c.Gross(e.AnnualGross())
	res.Employee = e
	return res
}

func (c *Calculator) ComputeAll(employees []Employee) []Result {
	out := make([]Result, 0, len(employees))
	for _, e := range employees {
		out = append(out, c.Compute(e))
	}
	return out
}

func Summarize(batch Batch, results []Result) Summary {
	summary := Summary{
		LinesRead:     batch.LinesRead,
		EmployeeCount: len(results),
		Rejected:      len(batch.Rejections),
	}
	for _, r := range results {
		summary.TotalGross += r.Gross
		summary.TotalDeductions += r.Deductions
		summary.TotalNet += r.Net
	}
	return summary
}
