// Package money implements fixed-precision monetary values: a single amount
// (Money), a net/tax split with a derived gross (MoneyWithVAT) and a
// dimensionless scaling pair (MoneyWithVATRatio). All three are immutable
// values; every operation returns a new instance and the package is safe for
// concurrent use.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"vatmoney/decimals"
)

// MoneyPrecision is the canonical number of fractional digits used when
// serializing amounts. Round-tripping through the serialized form is lossy
// beyond this precision.
const MoneyPrecision = 12

var (
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrUnsupportedOperand    = errors.New("unsupported operand")
	ErrInsufficientArguments = errors.New("insufficient arguments")
	ErrInvalidStructure      = errors.New("invalid money structure")

	// ErrDivisionByZero is returned by every division whose divisor has zero
	// magnitude.
	ErrDivisionByZero = decimals.ErrDivisionByZero
)

// Money is a single monetary amount. It carries no currency tag. The zero
// value is a zero amount.
type Money struct {
	amount decimals.Decimal
}

func ZeroMoney() Money {
	return Money{}
}

func MoneyFromDecimal(d decimals.Decimal) Money {
	return Money{amount: d}
}

// MoneyFromString parses a decimal-formatted string. A leading minus sign is
// kept even on a zero magnitude, so "-0" yields a sign-negative zero amount.
func MoneyFromString(s string) (Money, error) {
	d, err := decimals.Parse(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Money{amount: d}, nil
}

func MoneyFromFloat64(f float64) Money {
	return Money{amount: decimals.FromFloat64(f)}
}

func MoneyFromInt(i int64) Money {
	return Money{amount: decimals.FromInt(i)}
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimals.Decimal {
	return m.amount
}

// Round rounds to scale fractional digits with ties going to even. Negative
// scales round to tens, hundreds and so on, with ties on the scaled-down
// quotient going away from zero.
func (m Money) Round(scale int) Money {
	return Money{amount: m.amount.Round(scale)}
}

// RoundUp rounds with ties going away from zero.
func (m Money) RoundUp(scale int) Money {
	return Money{amount: m.amount.RoundAway(scale)}
}

func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs()}
}

func (m Money) Add(o Money) Money {
	return Money{amount: m.amount.Add(o.amount)}
}

func (m Money) Sub(o Money) Money {
	return Money{amount: m.amount.Sub(o.amount)}
}

// AddDecimal adds a bare decimal operand.
func (m Money) AddDecimal(d decimals.Decimal) Money {
	return Money{amount: m.amount.Add(d)}
}

// SubDecimal subtracts a bare decimal operand.
func (m Money) SubDecimal(d decimals.Decimal) Money {
	return Money{amount: m.amount.Sub(d)}
}

// Mul scales the amount by a bare decimal. Multiplying two Money values is
// deliberately not provided; money times money is not money.
func (m Money) Mul(d decimals.Decimal) Money {
	return Money{amount: m.amount.Mul(d)}
}

// Div divides the amount by a bare decimal.
func (m Money) Div(d decimals.Decimal) (Money, error) {
	q, err := m.amount.Div(d)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: q}, nil
}

// Ratio divides money by money, yielding a dimensionless decimal.
func (m Money) Ratio(o Money) (decimals.Decimal, error) {
	return m.amount.Div(o.amount)
}

// Cmp compares amounts numerically; +0 and -0 are equal.
func (m Money) Cmp(o Money) int {
	return m.amount.Cmp(o.amount)
}

func (m Money) Equal(o Money) bool {
	return m.amount.Equal(o.amount)
}

func (m Money) LessThan(o Money) bool {
	return m.Cmp(o) < 0
}

func (m Money) GreaterThan(o Money) bool {
	return m.Cmp(o) > 0
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.Sign() > 0
}

func (m Money) IsNegative() bool {
	return m.amount.Sign() < 0
}

// Sum adds up a sequence of optional amounts, skipping nil entries. An empty
// or all-nil input sums to zero Money. The first present value seeds the
// accumulator so the signed-zero add rule applies across the actual operands.
func Sum(values []*Money) Money {
	var (
		total decimals.Decimal
		seen  bool
	)
	for _, v := range values {
		if v == nil {
			continue
		}
		if !seen {
			total = v.amount
			seen = true
			continue
		}
		total = total.Add(v.amount)
	}
	if !seen {
		return Money{}
	}
	return Money{amount: total}
}

// ForJSON renders the amount rounded half-to-even at MoneyPrecision, in
// fixed-point notation with exactly MoneyPrecision fractional digits. The
// sign is preserved, including on zero.
func (m Money) ForJSON() string {
	return m.amount.Round(MoneyPrecision).StringFixed(MoneyPrecision)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.ForJSON())), nil
}

// UnmarshalJSON accepts the serialized string form as well as a bare JSON
// number.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*m = Money{}
		return nil
	}
	var quoted string
	if err := json.Unmarshal(data, &quoted); err == nil {
		s = quoted
	}
	parsed, err := MoneyFromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) String() string {
	return fmt.Sprintf("Money('%s')", m.amount)
}
