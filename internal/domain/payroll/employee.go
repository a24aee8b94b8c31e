package payroll

import "fmt"

type Employee struct {
	Number      int64
	FirstName   string
	LastName    string
	HoursWorked float64
	HourlyWage  float64
}

func (e Employee) WeeklyGross() float64 {
	return e.HoursWorked * e.HourlyWage
}

func (e Employee) AnnualGross() float64 {
	return e.WeeklyGross() * WeeksPerYear
}

// String renders the employee the way the payroll report lists it: padded
// identity, two 16-wide name columns and the dollar-prefixed annual gross.
func (e Employee) String() string {
	return fmt.Sprintf("%05d\t\t%-16s%-16s$%s", e.Number, e.FirstName, e.LastName, Money(e.AnnualGross()))
}
