package catalog

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mesh-intelligence/loantrack/pkg/tableview"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// indian is the locale whose digit grouping amounts follow (1,50,000).
var indian = language.Make("en-IN")

// Printers and casers keep per-call state, so each render makes its own.
func inr() *message.Printer { return message.NewPrinter(indian) }

func titleCase(s string) string { return cases.Title(language.English).String(s) }

var statusLabels = map[string]string{
	types.SubmissionPending:    "Pending",
	types.SubmissionAIReview:   "AI Review",
	types.SubmissionFlagged:    "Flagged",
	types.SubmissionApproved:   "Approved",
	types.SubmissionRejected:   "Rejected",
	types.SubmissionFieldVisit: "Field Visit",
}

var riskLabels = map[string]string{
	types.RiskGreen: "Low Risk",
	types.RiskAmber: "Medium Risk",
	types.RiskRed:   "High Risk",
}

// Currency renders a rupee amount such as ₹1,50,000. Fractional amounts keep
// two decimals. Non-numeric values render as their plain text.
func Currency(v any) string {
	f, ok := number(v)
	if !ok {
		s, _ := tableview.Stringify(v)
		return s
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return inr().Sprintf("₹%d", int64(f))
	}
	return inr().Sprintf("₹%.2f", f)
}

// Count renders an integer with digit grouping.
func Count(v any) string {
	f, ok := number(v)
	if !ok {
		s, _ := tableview.Stringify(v)
		return s
	}
	return inr().Sprintf("%d", int64(f))
}

// StatusLabel returns the display label of a submission review state.
// Unknown states are title-cased.
func StatusLabel(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return titleCase(status)
}

// RiskLabel returns the display label of a risk level, with the score when
// one is known.
func RiskLabel(level string, score float64) string {
	l, ok := riskLabels[level]
	if !ok {
		return titleCase(level)
	}
	if score > 0 {
		return fmt.Sprintf("%s (%.2f)", l, score)
	}
	return l
}

// Timestamp renders RFC 3339 values as "2006-01-02 15:04" in UTC. Plain
// dates and other text pass through.
func Timestamp(v any) string {
	s, _ := tableview.Stringify(v)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format("2006-01-02 15:04")
	}
	return s
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}

func currencyRender(v any, _ tableview.Record) string { return Currency(v) }

func countRender(v any, _ tableview.Record) string { return Count(v) }

func timestampRender(v any, _ tableview.Record) string { return Timestamp(v) }

func titleRender(v any, _ tableview.Record) string {
	s, _ := tableview.Stringify(v)
	return titleCase(s)
}

func statusRender(v any, _ tableview.Record) string {
	s, _ := tableview.Stringify(v)
	return StatusLabel(s)
}

func riskRender(v any, row tableview.Record) string {
	s, _ := tableview.Stringify(v)
	if s == "" {
		return ""
	}
	score, _ := number(row["riskScore"])
	return RiskLabel(s, score)
}
