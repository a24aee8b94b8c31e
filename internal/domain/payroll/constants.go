package payroll

const (
	WeeksPerYear = 52

	DefaultMinimumWage = 10.35

	DefaultInputFile  = "payroll.txt"
	DefaultErrorFile  = "payrollError.txt"
	DefaultReportFile = "payrollReport.txt"

	DefaultCompany = "Harbour Industries"

	KindCapped Kind = "capped"
	KindTiered Kind = "tiered"
)
