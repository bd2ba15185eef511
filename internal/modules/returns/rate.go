package returns

import "github.com/shopspring/decimal"

const (
	ratePrecision    = 6
	percentPrecision = 2
)

var hundred = decimal.NewFromInt(100)

// rateOf computes (end - start) / start rounded half-up to six decimal
// places. The caller guarantees start > 0.
func rateOf(start, end float64) decimal.Decimal {
	s := decimal.NewFromFloat(start)
	e := decimal.NewFromFloat(end)
	return e.Sub(s).DivRound(s, ratePrecision)
}

// percentOf renders a rate as a percentage string, e.g. "5.00%".
func percentOf(rate decimal.Decimal) string {
	return rate.Mul(hundred).Round(percentPrecision).StringFixed(percentPrecision) + "%"
}

// meanOf averages a sum over n valid samples, rounded half-up to six
// decimal places. The caller guarantees n > 0.
func meanOf(sum decimal.Decimal, n int) decimal.Decimal {
	return sum.DivRound(decimal.NewFromInt(int64(n)), ratePrecision)
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
