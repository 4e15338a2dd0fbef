package library

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Wallet struct {
	PrivateKey string
	Account    Account
}

type Account = string

type Sha256 = string

type TxRef = string

// Amount is a non-negative fixed-point integer with 18 implied decimal places.
type Amount = decimal.Decimal

// Hop is one elementary transfer of Issuer's unit from Src to Dest within a
// multi-step settlement.
type Hop struct {
	Issuer Account `json:"tokenOwner"`
	Src    Account `json:"src"`
	Dest   Account `json:"dest"`
	Amount Amount  `json:"amount"`
}

func NewAmount(i int64) Amount {
	return decimal.NewFromInt(i)
}

func ParseAmount(s string) (Amount, error) {
	a, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %s: %s", s, err.Error())
	}
	if a.Sign() < 0 {
		return Amount{}, fmt.Errorf("invalid amount %s: amounts cannot be negative", s)
	}
	return a, nil
}
