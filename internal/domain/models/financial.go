package models

import "time"

// FinancialRecord is one normalized month of financial history.
// NetCash is derived as Revenue + Receivables - (Expenses + Payables).
// A zero Month marks a row whose date could not be parsed; such rows are
// kept by the normalizer and filtered by the forecast engine.
type FinancialRecord struct {
	Month       time.Time
	Revenue     float64
	Expenses    float64
	Receivables float64
	Payables    float64
	NetCash     float64
}

// HasMonth reports whether the row carries a usable month.
func (r FinancialRecord) HasMonth() bool { return !r.Month.IsZero() }

// CashPoint is the (month, net cash) pair handed to a forecasting model.
type CashPoint struct {
	Month   time.Time
	NetCash float64
}

// ForecastPoint is one forecasted month with its uncertainty interval.
// Invariant: Lower <= Predicted <= Upper.
type ForecastPoint struct {
	Month     time.Time
	Predicted float64
	Lower     float64
	Upper     float64
}

// RiskTier classifies a forecasted month, ordered by severity.
type RiskTier int

const (
	RiskSafe RiskTier = iota
	RiskWarning
	RiskCritical
)

// Label returns the wire representation of the tier.
func (t RiskTier) Label() string {
	switch t {
	case RiskCritical:
		return "🔴 Critical"
	case RiskWarning:
		return "🟠 Warning"
	default:
		return "🟢 Safe"
	}
}

func (t RiskTier) String() string {
	switch t {
	case RiskCritical:
		return "critical"
	case RiskWarning:
		return "warning"
	default:
		return "safe"
	}
}

// ClassifiedPoint is a forecast point with its risk tier and reason attached.
type ClassifiedPoint struct {
	ForecastPoint
	Risk   RiskTier
	Reason string
}
