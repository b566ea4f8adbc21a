package money

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"vatmoney/decimals"
)

// Known VAT rates in countries:
// Germany (0.19, 0.16, 0.07, 0.05), Austria (0.20, 0.13, 0.10),
// Denmark (0.25).
var knownVATRatePercents = []int64{0, 5, 7, 10, 13, 16, 19, 20, 25}

var germanVATRatePercents = []int64{0, 5, 7, 16, 19}

// displayRateTolerance is the absolute tax difference below which a noisy tax
// rate snaps to a canonical one, in the same unit as the tax amount.
var displayRateTolerance = decimals.New(decimal.New(5, -2))

// KnownVATRates returns the canonical VAT rate set as decimals.
func KnownVATRates() []decimals.Decimal {
	return vatRates(knownVATRatePercents)
}

// GermanVATRates returns the domestic subset of the canonical VAT rates.
func GermanVATRates() []decimals.Decimal {
	return vatRates(germanVATRatePercents)
}

func vatRates(percents []int64) []decimals.Decimal {
	out := make([]decimals.Decimal, len(percents))
	for i, p := range percents {
		out[i] = decimals.New(decimal.New(p, -2))
	}
	return out
}

// MoneyWithVAT is an immutable net/tax amount pair. The gross is always
// derived as net plus tax, never stored, so it cannot drift from its
// components. The zero value is a zero-valued pair.
type MoneyWithVAT struct {
	Net Money
	Tax Money
}

func NewMoneyWithVAT(net, tax decimals.Decimal) MoneyWithVAT {
	return MoneyWithVAT{Net: MoneyFromDecimal(net), Tax: MoneyFromDecimal(tax)}
}

func MoneyWithVATFromMoney(net, tax Money) MoneyWithVAT {
	return MoneyWithVAT{Net: net, Tax: tax}
}

// Gross returns net plus tax, computed through the sign-aware add.
func (m MoneyWithVAT) Gross() Money {
	return m.Net.Add(m.Tax)
}

// TaxRate returns tax divided by net, or exactly zero when net is zero. It
// never faults.
func (m MoneyWithVAT) TaxRate() decimals.Decimal {
	if m.Net.IsZero() {
		return decimals.Zero()
	}
	rate, _ := m.Tax.Amount().Div(m.Net.Amount()) // net checked non-zero
	return rate
}

// TaxRateForDisplay snaps the raw tax rate to the nearest known real VAT rate
// when the actual tax is within tolerance of the tax that rate would imply
// (19.01 on 100 displays as 0.19, but 23 on 100 stays 0.23). The first
// canonical rate within tolerance wins. Never use the result for
// calculations.
func (m MoneyWithVAT) TaxRateForDisplay() decimals.Decimal {
	rate := m.TaxRate()

	for _, known := range KnownVATRates() {
		if known.Equal(rate) {
			return rate
		}
	}

	for _, known := range KnownVATRates() {
		implied := known.Mul(m.Net.Amount())
		diff := implied.Sub(m.Tax.Amount()).Abs()
		if diff.Cmp(displayRateTolerance) < 0 {
			return known
		}
	}

	return rate
}

func (m MoneyWithVAT) IsPositive() bool {
	return m.Gross().IsPositive()
}

func (m MoneyWithVAT) IsNegative() bool {
	return m.Gross().IsNegative()
}

func (m MoneyWithVAT) IsZero() bool {
	return m.Net.IsZero() && m.Tax.IsZero()
}

func (m MoneyWithVAT) IsEqualUpToCents(o MoneyWithVAT) bool {
	return m.Gross().Round(2).Equal(o.Gross().Round(2))
}

func (m MoneyWithVAT) IsLowerUpToCents(o MoneyWithVAT) bool {
	return m.Gross().Round(2).LessThan(o.Gross().Round(2))
}

func (m MoneyWithVAT) IsLowerOrEqualUpToCents(o MoneyWithVAT) bool {
	return m.IsEqualUpToCents(o) || m.IsLowerUpToCents(o)
}

// RoundedToCents rounds net to two decimals and derives the tax as the
// cent-rounded gross minus the rounded net, so that rounded net plus rounded
// tax reproduce the cent-rounded gross exactly. The tax therefore need not
// equal the independently rounded tax: with net=4.444 and tax=2.222 the
// result is net=4.44, tax=2.23, keeping the gross stable at 6.67. Use for
// display or before comparing against user input, not for further math.
func (m MoneyWithVAT) RoundedToCents() MoneyWithVAT {
	roundedNet := m.Net.Round(2)
	return MoneyWithVAT{
		Net: roundedNet,
		Tax: m.Gross().Round(2).Sub(roundedNet),
	}
}

// RoundedToMoneyFieldPrecision rounds net and tax independently to the
// serialization precision. Stored values are implicitly rounded that way, so
// this is the right form for comparing against persisted amounts, where both
// fields round on their own.
func (m MoneyWithVAT) RoundedToMoneyFieldPrecision() MoneyWithVAT {
	return MoneyWithVAT{
		Net: m.Net.Round(MoneyPrecision),
		Tax: m.Tax.Round(MoneyPrecision),
	}
}

func (m MoneyWithVAT) Neg() MoneyWithVAT {
	return MoneyWithVAT{Net: m.Net.Neg(), Tax: m.Tax.Neg()}
}

func (m MoneyWithVAT) Abs() MoneyWithVAT {
	return MoneyWithVAT{Net: m.Net.Abs(), Tax: m.Tax.Abs()}
}

func (m MoneyWithVAT) Add(o MoneyWithVAT) MoneyWithVAT {
	return MoneyWithVAT{Net: m.Net.Add(o.Net), Tax: m.Tax.Add(o.Tax)}
}

func (m MoneyWithVAT) Sub(o MoneyWithVAT) MoneyWithVAT {
	return MoneyWithVAT{Net: m.Net.Sub(o.Net), Tax: m.Tax.Sub(o.Tax)}
}

// AddScalar accepts only an exact zero, as the additive identity expected by
// generic reducers; anything else is ErrUnsupportedOperand. The signed-zero
// add rule still applies to the zero that is accepted.
func (m MoneyWithVAT) AddScalar(d decimals.Decimal) (MoneyWithVAT, error) {
	if !d.IsZero() {
		return MoneyWithVAT{}, fmt.Errorf("%w: non-zero scalar addend", ErrUnsupportedOperand)
	}
	return MoneyWithVAT{Net: m.Net.AddDecimal(d), Tax: m.Tax.AddDecimal(d)}, nil
}

// SubScalar is AddScalar with the operand negated.
func (m MoneyWithVAT) SubScalar(d decimals.Decimal) (MoneyWithVAT, error) {
	if !d.IsZero() {
		return MoneyWithVAT{}, fmt.Errorf("%w: non-zero scalar subtrahend", ErrUnsupportedOperand)
	}
	return MoneyWithVAT{
		Net: m.Net.AddDecimal(d.Neg()),
		Tax: m.Tax.AddDecimal(d.Neg()),
	}, nil
}

// MulDecimal scales net and tax componentwise.
func (m MoneyWithVAT) MulDecimal(d decimals.Decimal) MoneyWithVAT {
	return MoneyWithVAT{Net: m.Net.Mul(d), Tax: m.Tax.Mul(d)}
}

// MulRatio scales the pair by a ratio: the net scales by the net ratio, and
// the tax is the residual of the gross scaled by the gross ratio. That keeps
// new net plus new tax exactly equal to the scaled gross, which scaling the
// tax directly would not.
func (m MoneyWithVAT) MulRatio(r MoneyWithVATRatio) MoneyWithVAT {
	net := m.Net.Mul(r.NetRatio)
	return MoneyWithVAT{
		Net: net,
		Tax: m.Gross().Mul(r.GrossRatio).Sub(net),
	}
}

// Div divides net and tax componentwise by a bare decimal.
func (m MoneyWithVAT) Div(d decimals.Decimal) (MoneyWithVAT, error) {
	net, err := m.Net.Div(d)
	if err != nil {
		return MoneyWithVAT{}, err
	}
	tax, err := m.Tax.Div(d)
	if err != nil {
		return MoneyWithVAT{}, err
	}
	return MoneyWithVAT{Net: net, Tax: tax}, nil
}

// Equal compares net and tax pairwise. Two values with different splits but
// the same gross are unequal here even though Cmp reports them as equal;
// ordering looks at the gross only.
func (m MoneyWithVAT) Equal(o MoneyWithVAT) bool {
	return m.Net.Equal(o.Net) && m.Tax.Equal(o.Tax)
}

// Cmp orders by derived gross alone.
func (m MoneyWithVAT) Cmp(o MoneyWithVAT) int {
	return m.Gross().Cmp(o.Gross())
}

func (m MoneyWithVAT) LessThan(o MoneyWithVAT) bool {
	return m.Cmp(o) < 0
}

func (m MoneyWithVAT) GreaterThan(o MoneyWithVAT) bool {
	return m.Cmp(o) > 0
}

// MaxVAT reduces a sequence to a value built from the maximum net and the
// maximum gross seen anywhere in the sequence, independently tracked; the
// result's tax is maximum gross minus maximum net. This is not the element
// with the largest gross. Fails on an empty sequence.
func MaxVAT(values []MoneyWithVAT) (MoneyWithVAT, error) {
	if len(values) == 0 {
		return MoneyWithVAT{}, ErrInsufficientArguments
	}

	maxNet := values[0].Net.Amount()
	maxGross := values[0].Gross().Amount()
	for _, v := range values[1:] {
		if v.Net.Amount().Cmp(maxNet) > 0 {
			maxNet = v.Net.Amount()
		}
		if gross := v.Gross().Amount(); gross.Cmp(maxGross) > 0 {
			maxGross = gross
		}
	}

	return MoneyWithVAT{
		Net: MoneyFromDecimal(maxNet),
		Tax: MoneyFromDecimal(maxGross.Sub(maxNet)),
	}, nil
}

// VATRatio divides two pairs, producing the net-by-net and gross-by-gross
// ratios. Fails when the divisor's net or gross is zero.
func VATRatio(dividend, divisor MoneyWithVAT) (MoneyWithVATRatio, error) {
	if divisor.Net.IsZero() || divisor.Gross().IsZero() {
		return MoneyWithVATRatio{}, ErrDivisionByZero
	}
	// both divisors checked non-zero above
	netRatio, _ := dividend.Net.Amount().Div(divisor.Net.Amount())
	grossRatio, _ := dividend.Gross().Amount().Div(divisor.Gross().Amount())
	return MoneyWithVATRatio{NetRatio: netRatio, GrossRatio: grossRatio}, nil
}

// SafeVATRatio is VATRatio over optional operands. Absent operands count as
// zero, both operands are rounded to cents first, and a zero cent-rounded
// divisor yields nil instead of an error.
func SafeVATRatio(dividend, divisor *MoneyWithVAT) *MoneyWithVATRatio {
	var fixedDividend, fixedDivisor MoneyWithVAT
	if dividend != nil {
		fixedDividend = dividend.RoundedToCents()
	}
	if divisor != nil {
		fixedDivisor = divisor.RoundedToCents()
	}

	if fixedDivisor.Net.IsZero() || fixedDivisor.Gross().IsZero() {
		return nil
	}
	ratio, err := VATRatio(fixedDividend, fixedDivisor)
	if err != nil {
		return nil
	}
	return &ratio
}

// SafeVATRatioDecimal divides a pair by a scalar, yielding nil when either
// operand is absent or the divisor is zero.
func SafeVATRatioDecimal(dividend *MoneyWithVAT, divisor *decimals.Decimal) *MoneyWithVAT {
	if dividend == nil || divisor == nil || divisor.IsZero() {
		return nil
	}
	out, err := dividend.Div(*divisor)
	if err != nil {
		return nil
	}
	return &out
}

// FastSum sums net and tax componentwise, skipping nil entries. An all-nil or
// empty input sums to the zero value.
func FastSum(values []*MoneyWithVAT) MoneyWithVAT {
	if sum := FastSumOrNil(values); sum != nil {
		return *sum
	}
	return MoneyWithVAT{}
}

// FastSumOrNil is FastSum except that it returns nil when every element was
// nil, so callers can tell "no data" apart from data summing to zero.
func FastSumOrNil(values []*MoneyWithVAT) *MoneyWithVAT {
	var (
		netSum, taxSum decimals.Decimal
		seen           bool
	)
	for _, v := range values {
		if v == nil {
			continue
		}
		if !seen {
			netSum = v.Net.Amount()
			taxSum = v.Tax.Amount()
			seen = true
			continue
		}
		netSum = netSum.Add(v.Net.Amount())
		taxSum = taxSum.Add(v.Tax.Amount())
	}
	if !seen {
		return nil
	}
	return &MoneyWithVAT{Net: MoneyFromDecimal(netSum), Tax: MoneyFromDecimal(taxSum)}
}

// ForJSON returns the serialized field pair in the fixed Money format.
func (m MoneyWithVAT) ForJSON() map[string]string {
	return map[string]string{
		"net": m.Net.ForJSON(),
		"tax": m.Tax.ForJSON(),
	}
}

func (m MoneyWithVAT) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Net string `json:"net"`
		Tax string `json:"tax"`
	}{Net: m.Net.ForJSON(), Tax: m.Tax.ForJSON()})
}

// MoneyWithVATFromJSON reads the nested amount_with_vat.net.amount and
// amount_with_vat.gross.amount fields and derives the tax as gross minus net.
// The tax is never read from the input. Anything missing or malformed is
// ErrInvalidStructure.
func MoneyWithVATFromJSON(data []byte) (MoneyWithVAT, error) {
	var envelope struct {
		AmountWithVAT struct {
			Net struct {
				Amount json.RawMessage `json:"amount"`
			} `json:"net"`
			Gross struct {
				Amount json.RawMessage `json:"amount"`
			} `json:"gross"`
		} `json:"amount_with_vat"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return MoneyWithVAT{}, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}

	net, err := amountFromRaw(envelope.AmountWithVAT.Net.Amount)
	if err != nil {
		return MoneyWithVAT{}, err
	}
	gross, err := amountFromRaw(envelope.AmountWithVAT.Gross.Amount)
	if err != nil {
		return MoneyWithVAT{}, err
	}

	return MoneyWithVAT{
		Net: MoneyFromDecimal(net),
		Tax: MoneyFromDecimal(gross.Sub(net)),
	}, nil
}

// amountFromRaw accepts the amount either as a JSON number or as a string.
func amountFromRaw(raw json.RawMessage) (decimals.Decimal, error) {
	if len(raw) == 0 {
		return decimals.Decimal{}, fmt.Errorf("%w: missing amount", ErrInvalidStructure)
	}
	s := string(raw)
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		s = quoted
	}
	d, err := decimals.Parse(s)
	if err != nil {
		return decimals.Decimal{}, fmt.Errorf("%w: %q is not an amount", ErrInvalidStructure, s)
	}
	return d, nil
}

func (m MoneyWithVAT) String() string {
	return fmt.Sprintf("MoneyWithVAT(net='%s', tax='%s')", m.Net.Amount(), m.Tax.Amount())
}
