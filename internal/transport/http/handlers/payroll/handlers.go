package payrollhandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"payroll/internal/auth"
	"payroll/internal/domain/payroll"
	"payroll/internal/domain/reports"
	"payroll/internal/platform/config"
	"payroll/internal/platform/files"
	"payroll/internal/platform/metrics"
	"payroll/internal/transport/http/api"
	"payroll/internal/transport/http/middleware"
	"payroll/internal/transport/http/shared"
)

type Handler struct {
	Service     *payroll.Service
	Company     string
	Metrics     *metrics.Collector
	AuthEnabled bool
}

func NewHandler(service *payroll.Service, company string, collector *metrics.Collector, authEnabled bool) *Handler {
	return &Handler{Service: service, Company: company, Metrics: collector, AuthEnabled: authEnabled}
}

type PolicyResponse struct {
	MinimumWage  float64                  `json:"minimumWage"`
	WeeksPerYear int                      `json:"weeksPerYear"`
	Deductions   []config.DeductionConfig `json:"deductions"`
}

type quotePayload struct {
	GrossSalary *float64 `json:"grossSalary"`
	HoursWorked *float64 `json:"hoursWorked"`
	HourlyWage  *float64 `json:"hourlyWage"`
}

type QuoteResponse struct {
	GrossSalary     float64        `json:"grossSalary"`
	Breakdown       []payroll.Line `json:"breakdown"`
	TotalDeductions float64        `json:"totalDeductions"`
	NetSalary       float64        `json:"netSalary"`
}

type RunRow struct {
	EmployeeNumber int64          `json:"employeeNumber"`
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	GrossSalary    float64        `json:"grossSalary"`
	Deductions     float64        `json:"deductions"`
	NetSalary      float64        `json:"netSalary"`
	Breakdown      []payroll.Line `json:"breakdown"`
}

type RunResponse struct {
	Rows         []RunRow            `json:"rows"`
	Rejections   []payroll.Rejection `json:"rejections"`
	Summary      payroll.Summary     `json:"summary"`
	ReportDigest string              `json:"reportDigest"`
	ErrorDigest  string              `json:"errorDigest"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleViewer, h.AuthEnabled)).Get("/policy", h.handlePolicy)
		r.With(middleware.RequireRole(auth.RoleViewer, h.AuthEnabled)).Post("/deductions", h.handleDeductions)
		r.With(middleware.RequireRole(auth.RoleOperator, h.AuthEnabled)).Post("/run", h.handleRun)
	})
}

func (h *Handler) handlePolicy(w http.ResponseWriter, r *http.Request) {
	api.Success(w, PolicyResponse{
		MinimumWage:  h.Service.MinimumWage(),
		WeeksPerYear: payroll.WeeksPerYear,
		Deductions:   config.Describe(h.Service.Deductions()),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeductions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload quotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		if tooLarge(err) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", reqID)
			return
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	validator := shared.NewValidator()
	var gross float64
	if payload.GrossSalary != nil {
		validator.NonNegative("grossSalary", payload.GrossSalary)
		gross = *payload.GrossSalary
	} else {
		validator.Required("hoursWorked", payload.HoursWorked, "required when grossSalary is absent")
		validator.Required("hourlyWage", payload.HourlyWage, "required when grossSalary is absent")
		validator.NonNegative("hoursWorked", payload.HoursWorked)
		validator.NonNegative("hourlyWage", payload.HourlyWage)
		validator.Min("hourlyWage", payload.HourlyWage, h.Service.MinimumWage(), "below minimum wage")
		if !validator.HasIssues() {
			employee := payroll.Employee{HoursWorked: *payload.HoursWorked, HourlyWage: *payload.HourlyWage}
			gross = employee.AnnualGross()
		}
	}
	if validator.Reject(w, reqID) {
		return
	}

	result := h.Service.Quote(gross)
	if h.Metrics != nil {
		h.Metrics.RecordQuote()
	}
	api.Success(w, QuoteResponse{
		GrossSalary:     result.Gross,
		Breakdown:       result.Breakdown,
		TotalDeductions: result.Deductions,
		NetSalary:       result.Net,
	}, reqID)
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	body, err := io.ReadAll(r.Body)
	if err != nil {
		if tooLarge(err) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", reqID)
			return
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "unable to read payroll input", reqID)
		return
	}

	batch, results, summary, err := h.Service.Run(r.Context(), bytes.NewReader(body))
	if err != nil {
		slog.Warn("payroll run failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusBadRequest, "payroll_run_failed", "unable to process payroll input", reqID)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordRun(summary.LinesRead, summary.EmployeeCount, summary.Rejected)
	}

	report := files.JoinLines(reports.ReportLines(h.Company, results))
	errorLog := files.JoinLines(reports.ErrorLines(batch.Rejections))

	switch r.URL.Query().Get("format") {
	case "text":
		w.Header().Set("X-Report-Digest", files.Digest(report))
		api.WriteText(w, http.StatusOK, report)
		return
	case "csv":
		var buf bytes.Buffer
		if err := reports.WriteRegister(&buf, results); err != nil {
			api.Fail(w, http.StatusInternalServerError, "payroll_register_failed", "failed to build register", reqID)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=payroll_register.csv")
		if _, err := w.Write(buf.Bytes()); err != nil {
			slog.Warn("write register failed", "err", err, "requestId", reqID)
		}
		return
	case "", "json":
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_format", "format must be json, text or csv", reqID)
		return
	}

	rows := make([]RunRow, 0, len(results))
	for _, res := range results {
		rows = append(rows, RunRow{
			EmployeeNumber: res.Employee.Number,
			FirstName:      res.Employee.FirstName,
			LastName:       res.Employee.LastName,
			GrossSalary:    res.Gross,
			Deductions:     res.Deductions,
			NetSalary:      res.Net,
			Breakdown:      res.Breakdown,
		})
	}
	rejections := batch.Rejections
	if rejections == nil {
		rejections = []payroll.Rejection{}
	}
	api.Success(w, RunResponse{
		Rows:         rows,
		Rejections:   rejections,
		Summary:      summary,
		ReportDigest: files.Digest(report),
		ErrorDigest:  files.Digest(errorLog),
	}, reqID)
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
