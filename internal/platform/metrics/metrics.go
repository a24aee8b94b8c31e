package metrics

import (
	"sync/atomic"
	"time"
)

// Collector counts HTTP traffic and payroll runs served by the API.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64
	payrollRuns     uint64
	linesRead       uint64
	employees       uint64
	rejected        uint64
	quotes          uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordRun(linesRead, employees, rejected int) {
	atomic.AddUint64(&c.payrollRuns, 1)
	atomic.AddUint64(&c.linesRead, uint64(linesRead))
	atomic.AddUint64(&c.employees, uint64(employees))
	atomic.AddUint64(&c.rejected, uint64(rejected))
}

func (c *Collector) RecordQuote() {
	atomic.AddUint64(&c.quotes, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":    total,
		"errorsTotal":      errs,
		"rateLimitedTotal": limited,
		"avgDurationMs":    avg,
		"totalDurationMs":  totalMs,
		"payrollRunsTotal": atomic.LoadUint64(&c.payrollRuns),
		"linesReadTotal":   atomic.LoadUint64(&c.linesRead),
		"employeesTotal":   atomic.LoadUint64(&c.employees),
		"rejectedTotal":    atomic.LoadUint64(&c.rejected),
		"deductionQuotes":  atomic.LoadUint64(&c.quotes),
	}
}
