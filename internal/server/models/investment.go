package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Investment is a single holding owned by one user.
type Investment struct {
	ID       int    `json:"id"`
	OwnerID  int    `json:"ownerId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Amount   Amount `json:"amount"`
	Currency string `json:"currency"`
}

func (i *Investment) GetID() int             { return i.ID }
func (i *Investment) SetID(id int)           { i.ID = id }
func (i *Investment) GetOwnerID() int        { return i.OwnerID }
func (i *Investment) SetOwnerID(ownerID int) { i.OwnerID = ownerID }

// InvestmentPayload is the caller-supplied part of an Investment, used for
// both creation and full replacement.
type InvestmentPayload struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Amount   Amount `json:"amount"`
	Currency string `json:"currency"`
}

// Investment builds an Investment without id and owner.
func (p InvestmentPayload) Investment() Investment {
	return Investment{
		Name:     p.Name,
		Type:     p.Type,
		Amount:   p.Amount,
		Currency: p.Currency,
	}
}

// Amount is a decimal quantity that is written to JSON as a bare number,
// so that the document stays readable and hand-editable. Both numbers and
// numeric strings are accepted on input. A number read from JSON is written
// back with its original spelling (for example 1000.50) as long as the
// value has not changed.
type Amount struct {
	decimal.Decimal

	literal string
}

// NewAmount parses s into an Amount.
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Decimal: d}, nil
}

// AmountFromInt returns an Amount holding v.
func AmountFromInt(v int64) Amount {
	return Amount{Decimal: decimal.NewFromInt(v)}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.literal != "" {
		if d, err := decimal.NewFromString(a.literal); err == nil && d.Equal(a.Decimal) {
			return []byte(a.literal), nil
		}
	}
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	if err := a.Decimal.UnmarshalJSON(b); err != nil {
		return err
	}
	a.literal = ""
	if lit := strings.TrimSpace(string(b)); lit != "" && lit[0] != '"' && lit != "null" {
		a.literal = lit
	}
	return nil
}
