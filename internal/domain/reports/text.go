package reports

import (
	"payroll/internal/domain/payroll"
)

const separator = "------------------------------------------------------------------------------------------"

// Header returns the fixed four-line report header.
func Header(company string) []string {
	return []string{
		"\t\t\t\t<< " + company + " >>",
		separator,
		"Employee #\tFirst Name\tLast Name\tGross Salary\tDeductions\tNet Salary",
		separator,
	}
}

// Row renders one employee line of the payroll report.
func Row(r payroll.Result) string {
	return r.Employee.String() + "$" + payroll.Money(r.Deductions) + "$" + payroll.Money(r.Net)
}

// ReportLines is the full payroll report: header then one row per result in
// the order given.
func ReportLines(company string, results []payroll.Result) []string {
	lines := Header(company)
	for _, r := range results {
		lines = append(lines, Row(r))
	}
	return lines
}

// ErrorLines is the error log: each rejected line verbatim plus its reason.
func ErrorLines(rejections []payroll.Rejection) []string {
	lines := make([]string, 0, len(rejections))
	for _, r := range rejections {
		lines = append(lines, r.String())
	}
	return lines
}
