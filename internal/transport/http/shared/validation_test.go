package shared

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestValidatorCollectsSortedIssues(t *testing.T) {
	v := NewValidator()
	v.Required("hourlyWage", nil, "is required")
	v.NonNegative("hoursWorked", ptr(-1))
	v.NonNegative("grossSalary", ptr(math.NaN()))
	v.NonNegative("ok", ptr(0))
	v.Min("wage", ptr(9), 10.35, "must be at least the minimum wage")

	issues := v.Issues()
	if len(issues) != 4 {
		t.Fatalf("expected 4 issues, got %+v", issues)
	}
	if issues[0].Field != "grossSalary" || issues[1].Field != "hourlyWage" || issues[3].Field != "wage" {
		t.Fatalf("issues not sorted: %+v", issues)
	}
}

func TestValidatorReject(t *testing.T) {
	rec := httptest.NewRecorder()
	v := NewValidator()
	if v.Reject(rec, "req-1") {
		t.Fatal("did not expect rejection without issues")
	}
	v.Add("grossSalary", "is required")
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected rejection")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Fields []ValidationIssue `json:"fields"`
			} `json:"details"`
		} `json:"error"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body.Error.Code != "validation_error" || len(body.Error.Details.Fields) != 1 || body.RequestID != "req-1" {
		t.Fatalf("unexpected body %+v", body)
	}
}
