package valuation

import (
	"time"

	"github.com/shopspring/decimal"

	"galangan-backend/internal/domain"
)

// Input carries the fields book value depends on. Missing numerics behave as
// zero and unparseable dates as "no elapsed time" so read-side reports degrade
// instead of failing.
type Input struct {
	Method           string
	PurchasePrice    float64
	ExpectedLifespan float64
	DepreciationRate float64
	PurchaseDate     string
	ActiveDate       string
}

// AssetInput maps an asset row to a valuation input.
func AssetInput(a domain.Asset) Input {
	return Input{
		Method:           a.DepreciationMethod,
		PurchasePrice:    a.PurchasePrice,
		ExpectedLifespan: a.ExpectedLifespan,
		DepreciationRate: a.DepreciationRate,
		PurchaseDate:     a.PurchaseDate,
		ActiveDate:       a.ActiveDate,
	}
}

// BookValue computes the current book value at the supplied instant. The
// formula is selected by depreciation method:
//
//   - Straight-Line: months elapsed since purchase_date;
//     price - (price / lifespan / 12) * months.
//   - Declining Balance: months elapsed since active_date;
//     price - trunc(rate/100 * months/12 * price).
//
// The result is not floored at zero: assets past their expected lifespan go
// negative, which the facility team reads as an overrun signal.
func BookValue(in Input, now time.Time) float64 {
	switch in.Method {
	case domain.MethodDecliningBalance:
		months := MonthsSince(in.ActiveDate, now)
		depreciated := decimal.NewFromFloat(in.DepreciationRate).
			Mul(decimal.NewFromInt(int64(months))).
			Mul(decimal.NewFromFloat(in.PurchasePrice)).
			Div(decimal.NewFromInt(1200)).
			Truncate(0)
		return decimal.NewFromFloat(in.PurchasePrice).Sub(depreciated).InexactFloat64()
	default:
		// Straight-Line, and the fallback for unrecognized methods.
		if in.ExpectedLifespan <= 0 {
			return in.PurchasePrice
		}
		months := MonthsSince(in.PurchaseDate, now)
		monthly := decimal.NewFromFloat(in.PurchasePrice).
			Div(decimal.NewFromFloat(in.ExpectedLifespan)).
			Div(decimal.NewFromInt(12))
		return decimal.NewFromFloat(in.PurchasePrice).
			Sub(monthly.Mul(decimal.NewFromInt(int64(months)))).
			InexactFloat64()
	}
}

// MonthsSince returns whole calendar months between a YYYY-MM-DD date and now,
// counting a month only once its day-of-month has been reached. Unknown or
// future dates yield zero.
func MonthsSince(date string, now time.Time) int {
	from, ok := ParseDate(date)
	if !ok {
		return 0
	}
	months := (now.Year()-from.Year())*12 + int(now.Month()) - int(from.Month())
	if now.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// ParseDate accepts the portal's YYYY-MM-DD form dates, tolerating a full
// RFC 3339 timestamp from older rows.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
