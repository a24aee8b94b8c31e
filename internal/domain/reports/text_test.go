package reports

import (
	"strings"
	"testing"

	"payroll/internal/domain/payroll"
)

func TestHeader(t *testing.T) {
	lines := Header("Harbour Industries")
	if len(lines) != 4 {
		t.Fatalf("expected 4 header lines, got %d", len(lines))
	}
	if lines[0] != "\t\t\t\t<< Harbour Industries >>" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if lines[1] != strings.Repeat("-", 90) || lines[3] != lines[1] {
		t.Fatalf("unexpected separators %q / %q", lines[1], lines[3])
	}
	if lines[2] != "Employee #\tFirst Name\tLast Name\tGross Salary\tDeductions\tNet Salary" {
		t.Fatalf("unexpected column header %q", lines[2])
	}
}

func TestRow(t *testing.T) {
	res := payroll.Result{
		Employee:   payroll.Employee{Number: 124, FirstName: "John", LastName: "Smith", HoursWorked: 40, HourlyWage: 20},
		Gross:      41600,
		Deductions: 15922.024,
		Net:        25677.976,
	}
	want := "00124\t\tJohn            Smith           $41600.00       $15922.02       $25677.98       "
	if got := Row(res); got != want {
		t.Fatalf("unexpected row:\n got %q\nwant %q", got, want)
	}
}

func TestReportLinesKeepOrder(t *testing.T) {
	results := []payroll.Result{
		{Employee: payroll.Employee{Number: 9, FirstName: "Z", LastName: "Z", HoursWorked: 1, HourlyWage: 11}},
		{Employee: payroll.Employee{Number: 1, FirstName: "A", LastName: "A", HoursWorked: 1, HourlyWage: 11}},
	}
	lines := ReportLines("Acme", results)
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[4], "00009") || !strings.HasPrefix(lines[5], "00001") {
		t.Fatalf("rows reordered: %q %q", lines[4], lines[5])
	}
}

func TestErrorLines(t *testing.T) {
	lines := ErrorLines([]payroll.Rejection{
		{Line: "00123 Jane Doe 40 9.00", Reason: payroll.ReasonBelowMinimumWage},
		{Line: "garbage", Reason: payroll.ReasonFormat},
	})
	if lines[0] != "00123 Jane Doe 40 9.00 - under minimum wage." || lines[1] != "garbage - format error." {
		t.Fatalf("unexpected error lines %q", lines)
	}
	if got := ErrorLines(nil); len(got) != 0 {
		t.Fatalf("expected no lines, got %q", got)
	}
}
