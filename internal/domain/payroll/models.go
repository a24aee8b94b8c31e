package payroll

import "fmt"

type Reason int

const (
	ReasonFormat Reason = iota + 1
	ReasonBelowMinimumWage
)

func (r Reason) String() string {
	switch r {
	case ReasonBelowMinimumWage:
		return "below_minimum_wage"
	case ReasonFormat:
		return "format_error"
	default:
		return "unknown"
	}
}

// Suffix is appended to the rejected line in the error file.
func (r Reason) Suffix() string {
	switch r {
	case ReasonBelowMinimumWage:
		return " - under minimum wage."
	default:
		return " - format error."
	}
}

func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Reason) UnmarshalText(text []byte) error {
	switch string(text) {
	case "format_error":
		*r = ReasonFormat
	case "below_minimum_wage":
		*r = ReasonBelowMinimumWage
	default:
		return fmt.Errorf("payroll: unknown rejection reason %q", text)
	}
	return nil
}

type Rejection struct {
	LineNumber int    `json:"lineNumber"`
	Line       string `json:"line"`
	Reason     Reason `json:"reason"`
	Detail     string `json:"detail,omitempty"`
}

func (r Rejection) String() string {
	return r.Line + r.Reason.Suffix()
}

type Batch struct {
	LinesRead  int
	Employees  []Employee
	Rejections []Rejection
}

type Result struct {
	Employee   Employee `json:"-"`
	Gross      float64  `json:"gross"`
	Deductions float64  `json:"deductions"`
	Net        float64  `json:"net"`
	Breakdown  []Line   `json:"breakdown"`
}

type Summary struct {
	LinesRead       int     `json:"linesRead"`
	EmployeeCount   int     `json:"employeeCount"`
	Rejected        int     `json:"rejected"`
	TotalGross      float64 `json:"totalGross"`
	TotalDeductions float64 `json:"totalDeductions"`
	TotalNet        float64 `json:"totalNet"`
}
