package horizon

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency of every amount in the statements.
const Currency = money.ARS

// Money is an amount of pesos, for display.
type Money struct {
	value decimal.Decimal // as major unit value
}

// ARS returns f pesos.
func ARS(f float64) Money { return Money{value: dec(f)} }

// currency returns the pesos currency, never nil.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, Currency).Currency()
}

// String formats the amount with the peso grapheme and separators, rounded to
// the cent.
func (m Money) String() string {
	cur := m.currency()
	cents := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(cents.IntPart())
}

// SignedString is String with an explicit sign, and "-" for zero.
func (m Money) SignedString() string {
	if m.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) IsZero() bool       { return m.value.Round(2).IsZero() }
func (m Money) Float64() float64   { return m.value.InexactFloat64() }
func (m Money) Add(n Money) Money  { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money  { return Money{value: m.value.Sub(n.value)} }
func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) }

// printer formats plain numbers the Argentinian way.
var printer = message.NewPrinter(language.MustParse("es-AR"))

// Percent is a percentage, 12.5 meaning 12.5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// String formats the percentage with one decimal.
func (p Percent) String() string {
	return FormatNumber(float64(p), 1) + "%"
}

// SignedString is String with an explicit sign, and "-" for zero.
func (p Percent) SignedString() string {
	f := finite(float64(p))
	if Percent(f).Equal(0) {
		return "-"
	}
	if f > 0 {
		return "+" + p.String()
	}
	return p.String()
}

// FormatNumber formats a plain number with the Argentinian separators and
// the given number of decimals.
func FormatNumber(f float64, decimals int) string {
	return printer.Sprint(number.Decimal(finite(f), number.MinFractionDigits(decimals), number.MaxFractionDigits(decimals)))
}
