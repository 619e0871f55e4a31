package models

import "time"

// MonthLayout is the wire format for forecast months.
const MonthLayout = "2006-01-02"

// ForecastRecord is the field-exact external shape of one forecasted month.
// Field names are a compatibility contract with existing consumers.
type ForecastRecord struct {
	Month     string  `json:"Month"`
	Predicted float64 `json:"Predicted_Net_Cash"`
	Lower     float64 `json:"Lower_Bound"`
	Upper     float64 `json:"Upper_Bound"`
	Risk      string  `json:"Risk"`
	Reason    string  `json:"Reason"`
}

// ForecastReport is the terminal artifact returned to callers.
type ForecastReport struct {
	Message   string           `json:"message"`
	Forecast  []ForecastRecord `json:"forecast"`
	AISummary *string          `json:"ai_summary"`
}

// ReportEvent is published when a forecast report has been generated.
type ReportEvent struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Horizon     int       `json:"horizon"`
	Months      []string  `json:"months"`
	WorstRisk   string    `json:"worst_risk"`
}
