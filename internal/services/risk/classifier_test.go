package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CashCast/internal/domain/models"
)

func point(lower, predicted, upper float64) models.ForecastPoint {
	return models.ForecastPoint{
		Month:     time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		Predicted: predicted,
		Lower:     lower,
		Upper:     upper,
	}
}

func TestClassifyTiers(t *testing.T) {
	c := NewClassifier("₹")
	avg := 1000.0 // warning at 100, critical at -250

	out := c.Classify([]models.ForecastPoint{
		point(500, 600, 700),   // safe
		point(50, 200, 350),    // warning: lower below 100
		point(-400, -100, 200), // critical: lower at or below -250
	}, avg)

	require.Len(t, out, 3)
	assert.Equal(t, models.RiskSafe, out[0].Risk)
	assert.Equal(t, models.RiskWarning, out[1].Risk)
	assert.Equal(t, models.RiskCritical, out[2].Risk)
}

func TestClassifyThresholdBoundaries(t *testing.T) {
	c := NewClassifier("₹")
	avg := 1000.0

	// Exactly on the warning line stays safe; the comparison is strict.
	out := c.Classify([]models.ForecastPoint{point(100, 300, 500)}, avg)
	assert.Equal(t, models.RiskSafe, out[0].Risk)

	// Exactly on the critical line is critical; the comparison is inclusive.
	out = c.Classify([]models.ForecastPoint{point(-250, 0, 250)}, avg)
	assert.Equal(t, models.RiskCritical, out[0].Risk)

	// Just above critical but below warning is a warning.
	out = c.Classify([]models.ForecastPoint{point(-249.99, 0, 250)}, avg)
	assert.Equal(t, models.RiskWarning, out[0].Risk)
}

func TestClassifyReasons(t *testing.T) {
	c := NewClassifier("₹")
	avg := 1000.0

	out := c.Classify([]models.ForecastPoint{
		point(500, 1234567.4, 1300000),
		point(-1234.6, 0, 100),
		point(-400000, -100, 200),
	}, avg)

	assert.Equal(t, "No deficit expected; projected ₹1,234,567.", out[0].Reason)
	assert.Equal(t, "Cash position tight (lower bound ₹-1,235).", out[1].Reason)
	assert.Equal(t, "Large shortfall likely (lower bound ₹-400,000).", out[2].Reason)
}

func TestClassifyCustomCurrency(t *testing.T) {
	c := NewClassifier("$")
	out := c.Classify([]models.ForecastPoint{point(500, 600, 700)}, 1000)
	assert.Equal(t, "No deficit expected; projected $600.", out[0].Reason)
}

func TestClassifyZeroAvgExpenses(t *testing.T) {
	c := NewClassifier("₹")

	// With zero expenses both thresholds collapse to zero: a positive lower
	// bound is safe, anything at or below zero is critical.
	out := c.Classify([]models.ForecastPoint{
		point(1, 100, 200),
		point(0, 100, 200),
		point(-1, 100, 200),
	}, 0)

	assert.Equal(t, models.RiskSafe, out[0].Risk)
	assert.Equal(t, models.RiskCritical, out[1].Risk)
	assert.Equal(t, models.RiskCritical, out[2].Risk)
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier("₹")
	points := []models.ForecastPoint{
		point(500, 600, 700),
		point(-400, -100, 200),
	}

	first := c.Classify(points, 1000)
	second := c.Classify(points, 1000)
	assert.Equal(t, first, second)
}

func TestClassifyPreservesOrder(t *testing.T) {
	c := NewClassifier("₹")
	points := []models.ForecastPoint{
		point(500, 600, 700),
		point(-400, -100, 200),
		point(50, 200, 350),
	}

	out := c.Classify(points, 1000)
	require.Len(t, out, 3)
	for i := range points {
		assert.Equal(t, points[i], out[i].ForecastPoint)
	}
}
