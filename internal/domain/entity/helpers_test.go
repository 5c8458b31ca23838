package entity

import "github.com/shopspring/decimal"

func zeroPrice() decimal.Decimal {
	return decimal.Zero
}
