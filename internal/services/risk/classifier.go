package risk

import (
	"fmt"
	"math"
	"strconv"

	"CashCast/internal/domain/models"
)

// Threshold fractions of average monthly expenses.
const (
	warningFraction  = 0.10
	criticalFraction = -0.25
)

// Classifier assigns a risk tier to every forecast point based on the
// dataset's average monthly expenses.
type Classifier struct {
	currency string
}

// NewClassifier creates a classifier that renders amounts with the given
// currency symbol.
func NewClassifier(currency string) *Classifier {
	if currency == "" {
		currency = "₹"
	}
	return &Classifier{currency: currency}
}

// Classify maps forecast points to classified points in input order. The
// critical threshold is inclusive while the warning threshold is strict, so
// a lower bound sitting exactly on the warning line stays safe.
func (c *Classifier) Classify(points []models.ForecastPoint, avgExpenses float64) []models.ClassifiedPoint {
	warning := warningFraction * avgExpenses
	critical := criticalFraction * avgExpenses

	out := make([]models.ClassifiedPoint, 0, len(points))
	for _, p := range points {
		cp := models.ClassifiedPoint{ForecastPoint: p}
		switch {
		case p.Lower <= critical:
			cp.Risk = models.RiskCritical
			cp.Reason = fmt.Sprintf("Large shortfall likely (lower bound %s).", c.amount(p.Lower))
		case p.Lower < warning:
			cp.Risk = models.RiskWarning
			cp.Reason = fmt.Sprintf("Cash position tight (lower bound %s).", c.amount(p.Lower))
		default:
			cp.Risk = models.RiskSafe
			cp.Reason = fmt.Sprintf("No deficit expected; projected %s.", c.amount(p.Predicted))
		}
		out = append(out, cp)
	}
	return out
}

// amount renders a rounded, comma-grouped amount with the currency symbol,
// e.g. -12345.6 -> "₹-12,346".
func (c *Classifier) amount(v float64) string {
	return c.currency + groupDigits(int64(math.Round(v)))
}

func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) > 3 {
		var b []byte
		lead := len(s) % 3
		if lead > 0 {
			b = append(b, s[:lead]...)
		}
		for i := lead; i < len(s); i += 3 {
			if len(b) > 0 {
				b = append(b, ',')
			}
			b = append(b, s[i:i+3]...)
		}
		s = string(b)
	}
	if neg {
		return "-" + s
	}
	return s
}
