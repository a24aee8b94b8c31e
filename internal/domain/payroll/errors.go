package payroll

import "errors"

var (
	ErrBelowMinimumWage = errors.New("payroll: wage below minimum")
	ErrFormat           = errors.New("payroll: malformed record")
	ErrInvalidParameter = errors.New("payroll: invalid deduction parameter")
	ErrInputNotFound    = errors.New("payroll: input file not found")
	ErrOutputWrite      = errors.New("payroll: unable to write output file")
)
