package report

import (
	"fmt"
	"strings"

	"CashCast/internal/domain/models"
)

// Assembler builds the external forecast report from classified points.
type Assembler struct{}

// NewAssembler creates a report assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// BuildRecords maps classified points to their wire shape in order.
func (a *Assembler) BuildRecords(points []models.ClassifiedPoint) []models.ForecastRecord {
	records := make([]models.ForecastRecord, 0, len(points))
	for _, p := range points {
		records = append(records, models.ForecastRecord{
			Month:     p.Month.Format(models.MonthLayout),
			Predicted: p.Predicted,
			Lower:     p.Lower,
			Upper:     p.Upper,
			Risk:      p.Risk.Label(),
			Reason:    p.Reason,
		})
	}
	return records
}

// BuildTable renders the classified points as a markdown table, the context
// handed to the narrative summarizer.
func (a *Assembler) BuildTable(points []models.ClassifiedPoint) string {
	var b strings.Builder
	b.WriteString("| Month | Predicted_Net_Cash | Lower_Bound | Upper_Bound | Risk | Reason |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, p := range points {
		fmt.Fprintf(&b, "| %s | %.2f | %.2f | %.2f | %s | %s |\n",
			p.Month.Format(models.MonthLayout), p.Predicted, p.Lower, p.Upper, p.Risk.Label(), p.Reason)
	}
	return b.String()
}

// Assemble builds the terminal report. summary may be nil when no narrative
// is attached.
func (a *Assembler) Assemble(points []models.ClassifiedPoint, horizon int, summary *string) models.ForecastReport {
	return models.ForecastReport{
		Message:   fmt.Sprintf("%d-month forecast generated successfully.", horizon),
		Forecast:  a.BuildRecords(points),
		AISummary: summary,
	}
}
