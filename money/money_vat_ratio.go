package money

import (
	"encoding/json"
	"fmt"

	"vatmoney/decimals"
)

// MoneyWithVATRatio is a dimensionless pair of scaling factors produced by
// dividing two MoneyWithVAT values. The two ratios are independent: a VAT
// rate change between dividend and divisor makes them diverge, and nothing
// ties one to the other.
type MoneyWithVATRatio struct {
	NetRatio   decimals.Decimal
	GrossRatio decimals.Decimal
}

func NewMoneyWithVATRatio(netRatio, grossRatio decimals.Decimal) MoneyWithVATRatio {
	return MoneyWithVATRatio{NetRatio: netRatio, GrossRatio: grossRatio}
}

// MulDecimal scales both components.
func (r MoneyWithVATRatio) MulDecimal(d decimals.Decimal) MoneyWithVATRatio {
	return MoneyWithVATRatio{
		NetRatio:   r.NetRatio.Mul(d),
		GrossRatio: r.GrossRatio.Mul(d),
	}
}

// Div divides both components by a scalar.
func (r MoneyWithVATRatio) Div(d decimals.Decimal) (MoneyWithVATRatio, error) {
	netRatio, err := r.NetRatio.Div(d)
	if err != nil {
		return MoneyWithVATRatio{}, err
	}
	grossRatio, err := r.GrossRatio.Div(d)
	if err != nil {
		return MoneyWithVATRatio{}, err
	}
	return MoneyWithVATRatio{NetRatio: netRatio, GrossRatio: grossRatio}, nil
}

func (r MoneyWithVATRatio) Add(o MoneyWithVATRatio) MoneyWithVATRatio {
	return MoneyWithVATRatio{
		NetRatio:   r.NetRatio.Add(o.NetRatio),
		GrossRatio: r.GrossRatio.Add(o.GrossRatio),
	}
}

func (r MoneyWithVATRatio) Sub(o MoneyWithVATRatio) MoneyWithVATRatio {
	return MoneyWithVATRatio{
		NetRatio:   r.NetRatio.Sub(o.NetRatio),
		GrossRatio: r.GrossRatio.Sub(o.GrossRatio),
	}
}

func (r MoneyWithVATRatio) Neg() MoneyWithVATRatio {
	return MoneyWithVATRatio{
		NetRatio:   r.NetRatio.Neg(),
		GrossRatio: r.GrossRatio.Neg(),
	}
}

// Equal compares both components exactly.
func (r MoneyWithVATRatio) Equal(o MoneyWithVATRatio) bool {
	return r.NetRatio.Equal(o.NetRatio) && r.GrossRatio.Equal(o.GrossRatio)
}

// ForJSON returns both ratios as full-precision strings, no forced scale.
func (r MoneyWithVATRatio) ForJSON() map[string]string {
	return map[string]string{
		"net_ratio":   r.NetRatio.String(),
		"gross_ratio": r.GrossRatio.String(),
	}
}

func (r MoneyWithVATRatio) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		NetRatio   string `json:"net_ratio"`
		GrossRatio string `json:"gross_ratio"`
	}{NetRatio: r.NetRatio.String(), GrossRatio: r.GrossRatio.String()})
}

func (r MoneyWithVATRatio) String() string {
	return fmt.Sprintf("MoneyWithVATRatio(net_ratio='%s', gross_ratio='%s')", r.NetRatio, r.GrossRatio)
}
