package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CashCast/internal/domain/models"
)

func TestNormalizeHeaderCanonicalization(t *testing.T) {
	csv := " month ,REVENUE, expenses \n2024-01-01,1000,400\n2024-02-01,1200,500\n"

	ds, err := Normalize(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)

	assert.Equal(t, 1000.0, ds.Records[0].Revenue)
	assert.Equal(t, 400.0, ds.Records[0].Expenses)
}

func TestNormalizeZeroFillsMissingColumns(t *testing.T) {
	csv := "Month,Revenue\n2024-01-01,1000\n"

	ds, err := Normalize(strings.NewReader(csv))
	require.NoError(t, err)

	rec := ds.Records[0]
	assert.Zero(t, rec.Expenses)
	assert.Zero(t, rec.Receivables)
	assert.Zero(t, rec.Payables)
	assert.Equal(t, 1000.0, rec.NetCash)
}

func TestNormalizeNetCashDerivation(t *testing.T) {
	csv := "Month,Revenue,Expenses,Receivables,Payables\n2024-01-01,1000,400,200,100\n"

	ds, err := Normalize(strings.NewReader(csv))
	require.NoError(t, err)

	// 1000 + 200 - (400 + 100)
	assert.Equal(t, 700.0, ds.Records[0].NetCash)
}

func TestNormalizeSortsByMonth(t *testing.T) {
	csv := "Month,Revenue\n2024-03-01,3\n2024-01-01,1\n2024-02-01,2\n"

	ds, err := Normalize(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1.0, ds.Records[0].Revenue)
	assert.Equal(t, 2.0, ds.Records[1].Revenue)
	assert.Equal(t, 3.0, ds.Records[2].Revenue)
}

func TestNormalizeAvgExpensesOverAllRows(t *testing.T) {
	csv := "Month,Expenses\n2024-01-01,100\nnot-a-month,300\n"

	ds, err := Normalize(strings.NewReader(csv))
	require.NoError(t, err)

	// Undated rows still count toward the average.
	assert.Equal(t, 200.0, ds.AvgExpenses)
}

func TestNormalizeKeepsUnparsableMonthAsSentinel(t *testing.T) {
	csv := "Month,Revenue\ngarbage,50\n2024-01-01,100\n"

	ds, err := Normalize(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)

	assert.False(t, ds.Records[0].HasMonth())
	assert.True(t, ds.Records[1].HasMonth())
}

func TestNormalizeRejectsEmptyDataset(t *testing.T) {
	_, err := Normalize(strings.NewReader(""))
	assert.True(t, models.IsValidation(err))

	_, err = Normalize(strings.NewReader("Month,Revenue\n"))
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
	assert.Contains(t, err.Error(), "zero rows")
}

func TestNormalizeRequiresMonthColumn(t *testing.T) {
	_, err := Normalize(strings.NewReader("Revenue,Expenses\n100,50\n"))
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
}

func TestNormalizeParsesCommaGroupedAmounts(t *testing.T) {
	csv := "Month,Revenue\n2024-01-01,\"1,234,567\"\n"

	ds, err := Normalize(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1234567.0, ds.Records[0].Revenue)
}
