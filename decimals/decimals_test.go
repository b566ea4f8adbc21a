package decimals

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Decimal {
	t.Helper()
	d, err := Parse(s)
	require.NoError(t, err)
	return d
}

func TestParse(t *testing.T) {
	t.Run("plain values", func(t *testing.T) {
		d := mustParse(t, "123.456")
		require.Equal(t, "123.456", d.String())
		require.False(t, d.IsSignNegative())

		d = mustParse(t, "-123.456")
		require.Equal(t, "-123.456", d.String())
		require.True(t, d.IsSignNegative())
	})

	t.Run("minus zero keeps its sign", func(t *testing.T) {
		for _, s := range []string{"-0", "-0.000", "-0.0000000000"} {
			d := mustParse(t, s)
			require.True(t, d.IsZero(), s)
			require.True(t, d.IsSignNegative(), s)
		}
	})

	t.Run("plus zero", func(t *testing.T) {
		for _, s := range []string{"0", "0.000", "+0"} {
			d := mustParse(t, s)
			require.True(t, d.IsZero(), s)
			require.False(t, d.IsSignNegative(), s)
		}
	})

	t.Run("scientific zero", func(t *testing.T) {
		d := mustParse(t, "0E-12")
		require.True(t, d.IsZero())
		require.True(t, d.Equal(Zero()))
	})

	t.Run("invalid input", func(t *testing.T) {
		for _, s := range []string{"", "abc", "1.2.3", "--1"} {
			_, err := Parse(s)
			require.ErrorIs(t, err, ErrInvalidDecimal, s)
		}
	})
}

func TestFromFloat64(t *testing.T) {
	require.True(t, FromFloat64(1.5).Equal(mustParse(t, "1.5")))
	require.True(t, FromFloat64(111.33).Equal(mustParse(t, "111.33")))

	negZero := FromFloat64(math.Copysign(0, -1))
	require.True(t, negZero.IsZero())
	require.True(t, negZero.IsSignNegative())

	posZero := FromFloat64(0)
	require.True(t, posZero.IsZero())
	require.False(t, posZero.IsSignNegative())
}

func TestNeg(t *testing.T) {
	t.Run("non-zero", func(t *testing.T) {
		d := mustParse(t, "1.5")
		require.Equal(t, "-1.5", d.Neg().String())
		require.Equal(t, "1.5", d.Neg().Neg().String())
	})

	t.Run("zero canonicalizes to plus zero", func(t *testing.T) {
		require.False(t, Zero().Neg().IsSignNegative())
		require.False(t, NegativeZero().Neg().IsSignNegative())

		// double negation of either zero still lands on +0
		require.False(t, Zero().Neg().Neg().IsSignNegative())
		require.False(t, NegativeZero().Neg().Neg().IsSignNegative())
	})

	t.Run("double negation keeps the sign of non-zero values", func(t *testing.T) {
		for _, s := range []string{"2", "-2", "0.001", "-0.001"} {
			d := mustParse(t, s)
			require.Equal(t, d.Sign(), d.Neg().Neg().Sign(), s)
		}
	})
}

func TestAdd(t *testing.T) {
	t.Run("ordinary", func(t *testing.T) {
		sum := mustParse(t, "1.25").Add(mustParse(t, "2.75"))
		require.True(t, sum.Equal(mustParse(t, "4")))

		sum = mustParse(t, "5").Add(mustParse(t, "-5"))
		require.True(t, sum.IsZero())
		require.False(t, sum.IsSignNegative())
	})

	t.Run("zero signs", func(t *testing.T) {
		cases := []struct {
			left, right Decimal
			negative    bool
		}{
			{NegativeZero(), NegativeZero(), true},
			{NegativeZero(), Zero(), false},
			{Zero(), NegativeZero(), false},
			{Zero(), Zero(), false},
		}
		for _, tc := range cases {
			sum := tc.left.Add(tc.right)
			require.True(t, sum.IsZero())
			require.Equal(t, tc.negative, sum.IsSignNegative())
		}
	})

	t.Run("negative zero is absorbed by non-zero operands", func(t *testing.T) {
		sum := NegativeZero().Add(mustParse(t, "3"))
		require.True(t, sum.Equal(mustParse(t, "3")))
	})
}

func TestSub(t *testing.T) {
	diff := mustParse(t, "3").Sub(mustParse(t, "5"))
	require.True(t, diff.Equal(mustParse(t, "-2")))

	// the subtrahend's sign flips outright, so -0 - (+0) adds two negative zeros
	diff = NegativeZero().Sub(Zero())
	require.True(t, diff.IsZero())
	require.True(t, diff.IsSignNegative())

	diff = NegativeZero().Sub(NegativeZero())
	require.True(t, diff.IsZero())
	require.False(t, diff.IsSignNegative())
}

func TestMul(t *testing.T) {
	t.Run("ordinary", func(t *testing.T) {
		product := mustParse(t, "531").Mul(mustParse(t, "53.313"))
		require.True(t, product.Equal(mustParse(t, "28309.203")))

		product = mustParse(t, "-2").Mul(mustParse(t, "3"))
		require.True(t, product.Equal(mustParse(t, "-6")))
	})

	t.Run("zero operands follow the XOR sign rule", func(t *testing.T) {
		cases := []struct {
			left, right Decimal
			negative    bool
		}{
			{NegativeZero(), Zero(), true},
			{Zero(), NegativeZero(), true},
			{NegativeZero(), NegativeZero(), false},
			{Zero(), Zero(), false},
			{NegativeZero(), mustParse(t, "7"), true},
			{NegativeZero(), mustParse(t, "-7"), false},
			{Zero(), mustParse(t, "-7"), true},
			{Zero(), mustParse(t, "7"), false},
		}
		for _, tc := range cases {
			product := tc.left.Mul(tc.right)
			require.True(t, product.IsZero())
			require.Equal(t, tc.negative, product.IsSignNegative())
		}
	})
}

func TestDiv(t *testing.T) {
	t.Run("ordinary", func(t *testing.T) {
		q, err := mustParse(t, "15.60").Div(mustParse(t, "3.2"))
		require.NoError(t, err)
		require.True(t, q.Equal(mustParse(t, "4.875")))
	})

	t.Run("long division carries 28 fractional digits", func(t *testing.T) {
		q, err := mustParse(t, "20").Div(mustParse(t, "300"))
		require.NoError(t, err)
		require.True(t, q.Equal(mustParse(t, "0.0666666666666666666666666667")))
	})

	t.Run("zero divisor fails for every dividend", func(t *testing.T) {
		for _, s := range []string{"1", "-1", "0", "-0", "12345.6789"} {
			_, err := mustParse(t, s).Div(Zero())
			require.ErrorIs(t, err, ErrDivisionByZero, s)
			_, err = mustParse(t, s).Div(NegativeZero())
			require.ErrorIs(t, err, ErrDivisionByZero, s)
		}
	})

	t.Run("zero dividend follows the XOR sign rule", func(t *testing.T) {
		cases := []struct {
			dividend, divisor Decimal
			negative          bool
		}{
			{Zero(), mustParse(t, "2"), false},
			{Zero(), mustParse(t, "-2"), true},
			{NegativeZero(), mustParse(t, "2"), true},
			{NegativeZero(), mustParse(t, "-2"), false},
		}
		for _, tc := range cases {
			q, err := tc.dividend.Div(tc.divisor)
			require.NoError(t, err)
			require.True(t, q.IsZero())
			require.Equal(t, tc.negative, q.IsSignNegative())
		}
	})
}

func TestRound(t *testing.T) {
	t.Run("scale ladder", func(t *testing.T) {
		x := mustParse(t, "1234.33569")
		cases := []struct {
			scale    int
			expected string
		}{
			{-4, "0"},
			{-3, "1000"},
			{-2, "1200"},
			{-1, "1230"},
			{0, "1234"},
			{1, "1234.3"},
			{2, "1234.34"},
			{3, "1234.336"},
			{4, "1234.3357"},
		}
		for _, tc := range cases {
			require.True(t, x.Round(tc.scale).Equal(mustParse(t, tc.expected)), "scale %d", tc.scale)
		}
	})

	t.Run("half to even on positive scales", func(t *testing.T) {
		require.True(t, mustParse(t, "2.5").Round(0).Equal(mustParse(t, "2")))
		require.True(t, mustParse(t, "3.5").Round(0).Equal(mustParse(t, "4")))
		require.True(t, mustParse(t, "-2.5").Round(0).Equal(mustParse(t, "-2")))
		require.True(t, mustParse(t, "0.125").Round(2).Equal(mustParse(t, "0.12")))
		require.True(t, mustParse(t, "0.135").Round(2).Equal(mustParse(t, "0.14")))
	})

	t.Run("half away from zero on positive scales", func(t *testing.T) {
		require.True(t, mustParse(t, "2.5").RoundAway(0).Equal(mustParse(t, "3")))
		require.True(t, mustParse(t, "3.5").RoundAway(0).Equal(mustParse(t, "4")))
		require.True(t, mustParse(t, "-2.5").RoundAway(0).Equal(mustParse(t, "-3")))
		require.True(t, mustParse(t, "0.125").RoundAway(2).Equal(mustParse(t, "0.13")))
	})

	t.Run("negative scale ties break away from zero on the quotient", func(t *testing.T) {
		// 1250/100 = 12.5, which rounds to 13, not to the even 12
		require.True(t, mustParse(t, "1250").Round(-2).Equal(mustParse(t, "1300")))
		require.True(t, mustParse(t, "-1250").Round(-2).Equal(mustParse(t, "-1300")))
		require.True(t, mustParse(t, "1250").RoundAway(-2).Equal(mustParse(t, "1300")))
		require.True(t, mustParse(t, "12500").Round(-3).Equal(mustParse(t, "13000")))
	})

	t.Run("negative scale keeps a negative zero", func(t *testing.T) {
		r := NegativeZero().Round(-2)
		require.True(t, r.IsZero())
		require.True(t, r.IsSignNegative())
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, s := range []string{"1234.33569", "-1234.33569", "2.5", "0.000000000001"} {
			for _, scale := range []int{-3, -1, 0, 2, 6} {
				once := mustParse(t, s).Round(scale)
				require.True(t, once.Round(scale).Equal(once), "%s at scale %d", s, scale)
			}
		}
	})
}

func TestCmp(t *testing.T) {
	require.Equal(t, 0, Zero().Cmp(NegativeZero()))
	require.True(t, Zero().Equal(NegativeZero()))
	require.Equal(t, -1, mustParse(t, "1").Cmp(mustParse(t, "2")))
	require.Equal(t, 1, mustParse(t, "2").Cmp(mustParse(t, "1")))
	require.True(t, mustParse(t, "0.5").Equal(mustParse(t, "0.50")))
}

func TestSign(t *testing.T) {
	require.Equal(t, 0, Zero().Sign())
	require.Equal(t, 0, NegativeZero().Sign())
	require.Equal(t, 1, mustParse(t, "0.001").Sign())
	require.Equal(t, -1, mustParse(t, "-0.001").Sign())
}

func TestString(t *testing.T) {
	require.Equal(t, "-0", NegativeZero().String())
	require.Equal(t, "0", Zero().String())
	require.Equal(t, "-1.5", mustParse(t, "-1.5").String())

	require.Equal(t, "-0.000000000000", NegativeZero().StringFixed(12))
	require.Equal(t, "1.500000000000", mustParse(t, "1.5").StringFixed(12))
}

func TestValueLosesZeroSign(t *testing.T) {
	// the signed magnitude cannot carry -0; callers must check the flag first
	require.True(t, NegativeZero().Value().Equal(decimal.Zero))
	require.False(t, NegativeZero().Value().IsNegative())
}
