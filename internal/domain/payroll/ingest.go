package payroll

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const recordFields = 5

// ParseLine turns one input line into an Employee. The returned error wraps
// ErrFormat when the tokens are missing or not numeric and ErrBelowMinimumWage
// when the record parses but pays under the floor.
func ParseLine(line string, minimumWage float64) (Employee, error) {
	fields := strings.Fields(line)
	if len(fields) != recordFields {
		return Employee{}, fmt.Errorf("%w: expected %d fields, got %d", ErrFormat, recordFields, len(fields))
	}

	number, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Employee{}, fmt.Errorf("%w: employee number %q", ErrFormat, fields[0])
	}
	if number < 0 {
		return Employee{}, fmt.Errorf("%w: employee number %d is negative", ErrFormat, number)
	}
	hours, err := parseAmount(fields[3])
	if err != nil {
		return Employee{}, fmt.Errorf("%w: hours worked %q", ErrFormat, fields[3])
	}
	if hours < 0 {
		return Employee{}, fmt.Errorf("%w: hours worked %v is negative", ErrFormat, hours)
	}
	wage, err := parseAmount(fields[4])
	if err != nil {
		return Employee{}, fmt.Errorf("%w: hourly wage %q", ErrFormat, fields[4])
	}

	if wage < minimumWage {
		return Employee{}, fmt.Errorf("%w: %v < %v", ErrBelowMinimumWage, wage, minimumWage)
	}

	return Employee{
		Number:      number,
		FirstName:   fields[1],
		LastName:    fields[2],
		HoursWorked: hours,
		HourlyWage:  wage,
	}, nil
}

// parseAmount accepts plain decimal notation only. strconv also takes Go
// literal forms such as 1_000 and 0x1p4, which are not valid input.
func parseAmount(raw string) (float64, error) {
	if strings.Contains(raw, "_") {
		return 0, errors.New("digit separators are not allowed")
	}
	unsigned := strings.TrimLeft(raw, "+-")
	if len(unsigned) >= 2 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X') {
		return 0, errors.New("hexadecimal notation is not allowed")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	return v, nil
}

// Ingest reads every line of r, admitting valid records and routing the rest
// to Rejections. Lines have no length limit. Only read failures are returned
// as errors.
func Ingest(ctx context.Context, r io.Reader, minimumWage float64) (Batch, error) {
	var batch Batch
	reader := bufio.NewReader(r)
	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return batch, fmt.Errorf("read payroll input: %w", readErr)
		}
		if raw == "" && readErr == io.EOF {
			return batch, nil
		}
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		batch.LinesRead++

		employee, err := ParseLine(line, minimumWage)
		if err != nil {
			batch.Rejections = append(batch.Rejections, Rejection{
				LineNumber: batch.LinesRead,
				Line:       line,
				Reason:     reasonFor(err),
				Detail:     err.Error(),
			})
		} else {
			batch.Employees = append(batch.Employees, employee)
		}
		if readErr == io.EOF {
			return batch, nil
		}
	}
}

func reasonFor(err error) Reason {
	if errors.Is(err, ErrBelowMinimumWage) {
		return ReasonBelowMinimumWage
	}
	return ReasonFormat
}
