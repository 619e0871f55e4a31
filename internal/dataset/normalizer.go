package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"CashCast/internal/domain/models"
	"CashCast/pkg/util"
)

// Dataset is the normalized output handed to the forecast engine.
type Dataset struct {
	Records     []models.FinancialRecord
	AvgExpenses float64
}

// Financial columns that are zero-filled when absent. Dataset validity does
// not require any of them to be present.
var financialColumns = []string{"Revenue", "Expenses", "Receivables", "Payables"}

// Normalize parses a raw CSV table into an ordered sequence of
// FinancialRecord plus the average of the Expenses column.
//
// Column names are case/whitespace-normalized before lookup; rows whose
// Month cell fails to parse are kept with a zero Month so the forecast
// engine can surface the data-quality condition instead of hiding it.
func Normalize(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, models.NewValidationError("unparsable dataset: %v", err)
	}
	if len(rows) == 0 {
		return nil, models.NewValidationError("dataset is empty")
	}

	header := rows[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[canonicalColumn(name)] = i
	}
	if _, ok := index["Month"]; !ok {
		return nil, models.NewValidationError("dataset has no resolvable Month column")
	}

	dataRows := rows[1:]
	if len(dataRows) == 0 {
		return nil, models.NewValidationError("dataset has zero rows")
	}

	records := make([]models.FinancialRecord, 0, len(dataRows))
	var expensesSum float64
	for _, row := range dataRows {
		rec := models.FinancialRecord{}
		if m, ok := util.ParseMonth(cell(row, index["Month"])); ok {
			rec.Month = m
		}
		rec.Revenue = amount(row, index, "Revenue")
		rec.Expenses = amount(row, index, "Expenses")
		rec.Receivables = amount(row, index, "Receivables")
		rec.Payables = amount(row, index, "Payables")
		rec.NetCash = rec.Revenue + rec.Receivables - (rec.Expenses + rec.Payables)

		expensesSum += rec.Expenses
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Month.Before(records[j].Month)
	})

	return &Dataset{
		Records:     records,
		AvgExpenses: expensesSum / float64(len(records)),
	}, nil
}

// canonicalColumn normalizes a raw header cell: whitespace trimmed, first
// letter upper-cased, the rest lowered ("REVENUE " -> "Revenue").
func canonicalColumn(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func amount(row []string, index map[string]int, col string) float64 {
	i, ok := index[col]
	if !ok {
		return 0
	}
	v, _ := util.ParseAmount(cell(row, i))
	return v
}

// Describe is a debugging aid used in log fields.
func (d *Dataset) Describe() string {
	return fmt.Sprintf("%d rows, avg expenses %.2f", len(d.Records), d.AvgExpenses)
}
