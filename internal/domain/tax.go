package domain

import "github.com/shopspring/decimal"

// BracketApplication records the tax charged within one traversed bracket.
// The sum of Tax across a breakdown equals the total tax for the amount.
type BracketApplication struct {
	Bracket string          `json:"bracket"`
	Rate    decimal.Decimal `json:"rate"`
	Tax     decimal.Decimal `json:"tax"`
}
