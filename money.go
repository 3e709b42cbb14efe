package pigro

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an amount in a currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns value in currency (ISO 4217 code).
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	var d decimal.Decimal
	switch v := any(value).(type) {
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case decimal.Decimal:
		d = v
	}
	return Money{value: d, cur: currency}
}

// currency returns the money's currency.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String formats m the way its currency is usually written (€1,234.50).
func (m Money) String() string {
	cur := m.currency()
	return cur.Formatter().Format(m.value.Shift(int32(cur.Fraction)).Round(0).IntPart())
}

func (m Money) Currency() string { return m.cur }
func (m Money) IsZero() bool     { return m.value.IsZero() }

// Index returns what m becomes when an index based 100 reaches index.
func (m Money) Index(index float64) Money {
	return Money{value: m.value.Mul(decimal.NewFromFloat(index)).Div(decimal.NewFromInt(100)), cur: m.cur}
}

// Sub returns m - n. Both must be in the same currency.
func (m Money) Sub(n Money) Money {
	if m.cur != n.cur {
		panic("currency mismatch " + m.cur + "!=" + n.cur)
	}
	return Money{value: m.value.Sub(n.value), cur: m.cur}
}

// SignedString is like String with an explicit + for positive amounts.
func (m Money) SignedString() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// ValidCurrency reports whether code is a currency known by go-money.
func ValidCurrency(code string) bool { return money.GetCurrency(code) != nil }
