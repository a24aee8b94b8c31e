package payroll

import (
	"context"
	"io"
)

// Service runs the payroll pipeline for one deduction policy.
type Service struct {
	calc        *Calculator
	minimumWage float64
}

func NewService(minimumWage float64, deductions []Deduction) *Service {
	return &Service{calc: NewCalculator(deductions...), minimumWage: minimumWage}
}

func (s *Service) MinimumWage() float64 {
	return s.minimumWage
}

func (s *Service) Deductions() []Deduction {
	return s.calc.Deductions()
}

func (s *Service) Ingest(ctx context.Context, r io.Reader) (Batch, error) {
	return Ingest(ctx, r, s.minimumWage)
}

func (s *Service) Compute(batch Batch) ([]Result, Summary) {
	results := s.calc.ComputeAll(batch.Employees)
	return results, Summarize(batch, results)
}

func (s *Service) Quote(gross float64) Result {
	return s.calc.Gross(gross)
}

// Run ingests r and computes deductions for every admitted employee.
func (s *Service) Run(ctx context.Context, r io.Reader) (Batch, []Result, Summary, error) {
	batch, err := s.Ingest(ctx, r)
	if err != nil {
		return Batch{}, nil, Summary{}, err
	}
	results, summary := s.Compute(batch)
	return batch, results, summary, nil
}
