// Package decimals provides the sign-aware decimal arithmetic underneath the
// money types. It wraps shopspring decimals with an explicit sign flag so that
// a negative zero survives construction and arithmetic; the flag is threaded
// through every operation instead of being recovered from the magnitude,
// which would lose it.
package decimals

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrInvalidDecimal = errors.New("invalid decimal")
)

// divisionScale is the number of fractional digits carried by Div. It matches
// the precision ceiling of the upstream amounts; quotients are rounded half
// away from zero at this scale.
const divisionScale = 28

// Decimal is a signed fixed-base-10 number. Unlike a bare shopspring decimal
// it distinguishes +0 from -0: the two compare equal but branch differently
// inside arithmetic. The zero value is +0.
type Decimal struct {
	abs decimal.Decimal // magnitude, never negative
	neg bool
}

// New builds a Decimal from a signed value. A zero input always yields +0
// because the underlying representation cannot carry a negative zero.
func New(d decimal.Decimal) Decimal {
	return Decimal{abs: d.Abs(), neg: d.IsNegative()}
}

// Zero returns +0.
func Zero() Decimal {
	return Decimal{}
}

// NegativeZero returns -0.
func NegativeZero() Decimal {
	return Decimal{neg: true}
}

// Parse reads a decimal from its string form. A leading minus sign is
// preserved even when the magnitude is zero, so "-0" and "-0.000" parse to a
// sign-negative zero.
func Parse(s string) (Decimal, error) {
	trimmed := strings.TrimSpace(s)
	v, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Decimal{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	d := New(v)
	if v.IsZero() && strings.HasPrefix(trimmed, "-") {
		d.neg = true
	}
	return d, nil
}

// FromFloat64 converts a float. The float's sign bit is kept for zero inputs.
func FromFloat64(f float64) Decimal {
	v := decimal.NewFromFloat(f)
	d := New(v)
	if v.IsZero() && strings.HasPrefix(fmt.Sprintf("%g", f), "-") {
		d.neg = true
	}
	return d
}

// FromInt converts an integer.
func FromInt(i int64) Decimal {
	return New(decimal.NewFromInt(i))
}

// Value returns the signed magnitude. A -0 collapses to plain 0 here; use
// IsSignNegative first if the sign of a zero matters.
func (d Decimal) Value() decimal.Decimal {
	if d.neg {
		return d.abs.Neg()
	}
	return d.abs
}

func (d Decimal) IsZero() bool {
	return d.abs.IsZero()
}

// IsSignNegative reports the sign bit, including for zero magnitudes.
func (d Decimal) IsSignNegative() bool {
	return d.neg
}

// Sign returns -1, 0 or 1. Both zeros report 0.
func (d Decimal) Sign() int {
	if d.abs.IsZero() {
		return 0
	}
	if d.neg {
		return -1
	}
	return 1
}

func (d Decimal) Abs() Decimal {
	return Decimal{abs: d.abs}
}

// Neg negates. Negating a zero of either sign canonicalizes to +0, so double
// negation of -0 lands on +0, not back on -0.
func (d Decimal) Neg() Decimal {
	if d.abs.IsZero() {
		return Zero()
	}
	return Decimal{abs: d.abs, neg: !d.neg}
}

// Add sums two decimals. When both magnitudes are zero the result is -0 only
// if both operands are sign-negative; every other zero sum is +0.
func (d Decimal) Add(o Decimal) Decimal {
	if d.abs.IsZero() && o.abs.IsZero() {
		if d.neg && o.neg {
			return NegativeZero()
		}
		return Zero()
	}
	return New(d.Value().Add(o.Value()))
}

// Sub returns d - o. The subtrahend's sign bit is flipped outright, so
// subtracting a positive zero behaves like adding a negative zero.
func (d Decimal) Sub(o Decimal) Decimal {
	return d.Add(Decimal{abs: o.abs, neg: !o.neg})
}

// Mul multiplies. A zero operand produces a zero whose sign is the XOR of the
// operand signs, the conventional sign rule even at zero magnitude.
func (d Decimal) Mul(o Decimal) Decimal {
	if d.abs.IsZero() || o.abs.IsZero() {
		if d.neg != o.neg {
			return NegativeZero()
		}
		return Zero()
	}
	return New(d.Value().Mul(o.Value()))
}

// Div divides, carrying divisionScale fractional digits. A zero-magnitude
// divisor fails with ErrDivisionByZero before any computation; a zero
// dividend short-circuits to an XOR-signed zero.
func (d Decimal) Div(o Decimal) (Decimal, error) {
	if o.abs.IsZero() {
		return Decimal{}, ErrDivisionByZero
	}
	if d.abs.IsZero() {
		if d.neg != o.neg {
			return NegativeZero(), nil
		}
		return Zero(), nil
	}
	return New(d.Value().DivRound(o.Value(), divisionScale)), nil
}

// Round rounds to scale fractional digits using round-half-to-even. A
// negative scale rounds to tens, hundreds and so on: the value is divided by
// 10^|scale|, the quotient rounded to the nearest integer with ties away from
// zero, and the result multiplied back. The tie-break happens on the
// quotient, so it must be rounded there and not after scaling back up.
func (d Decimal) Round(scale int) Decimal {
	return d.round(scale, false)
}

// RoundAway is Round with ties going away from zero instead of to even.
func (d Decimal) RoundAway(scale int) Decimal {
	return d.round(scale, true)
}

func (d Decimal) round(scale int, away bool) Decimal {
	if scale >= 0 {
		var abs decimal.Decimal
		if away {
			abs = d.abs.Round(int32(scale))
		} else {
			abs = d.abs.RoundBank(int32(scale))
		}
		return Decimal{abs: abs, neg: d.neg}
	}

	factor := New(decimal.New(1, int32(-scale)))
	q, _ := d.Div(factor) // factor is a power of ten, never zero
	q = Decimal{abs: q.abs.Round(0), neg: q.neg}
	return q.Mul(factor)
}

// Cmp compares numerically; +0 and -0 are equal.
func (d Decimal) Cmp(o Decimal) int {
	return d.Value().Cmp(o.Value())
}

func (d Decimal) Equal(o Decimal) bool {
	return d.Cmp(o) == 0
}

// String renders the value in plain fixed-point notation. A sign-negative
// zero keeps its minus sign.
func (d Decimal) String() string {
	if d.neg {
		return "-" + d.abs.String()
	}
	return d.abs.String()
}

// StringFixed renders the magnitude with exactly the given number of
// fractional digits, keeping the sign. No exponent form, ever.
func (d Decimal) StringFixed(places int32) string {
	s := d.abs.StringFixed(places)
	if d.neg {
		return "-" + s
	}
	return s
}
