package reports

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"payroll/internal/domain/payroll"
)

type RegisterRow struct {
	EmployeeNumber string `csv:"employee_number"`
	FirstName      string `csv:"first_name"`
	LastName       string `csv:"last_name"`
	HoursWorked    string `csv:"hours_worked"`
	HourlyWage     string `csv:"hourly_wage"`
	Gross          string `csv:"gross"`
	Deductions     string `csv:"deductions"`
	Net            string `csv:"net"`
}

func RegisterRows(results []payroll.Result) []RegisterRow {
	rows := make([]RegisterRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, RegisterRow{
			EmployeeNumber: fmt.Sprintf("%05d", r.Employee.Number),
			FirstName:      r.Employee.FirstName,
			LastName:       r.Employee.LastName,
			HoursWorked:    payroll.Amount(r.Employee.HoursWorked),
			HourlyWage:     payroll.Amount(r.Employee.HourlyWage),
			Gross:          payroll.Amount(r.Gross),
			Deductions:     payroll.Amount(r.Deductions),
			Net:            payroll.Amount(r.Net),
		})
	}
	return rows
}

// WriteRegister writes the payroll register as CSV with a header row.
func WriteRegister(w io.Writer, results []payroll.Result) error {
	rows := RegisterRows(results)
	if len(rows) == 0 {
		_, err := io.WriteString(w, "employee_number,first_name,last_name,hours_worked,hourly_wage,gross,deductions,net\n")
		return err
	}
	return gocsv.Marshal(rows, w)
}
