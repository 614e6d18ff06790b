package services

import "github.com/shopspring/decimal"

// Plan is a credit package offered on the pricing page.
type Plan struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Credits  int             `json:"credits"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Popular  bool            `json:"popular"`
}

var plans = []Plan{
	{ID: "1-month", Name: "1 Month", Credits: 15, Price: decimal.NewFromInt(2999), Currency: "BDT"},
	{ID: "2-month", Name: "2 Month", Credits: 32, Price: decimal.NewFromInt(5999), Currency: "BDT", Popular: true},
	{ID: "3-month", Name: "3 Month", Credits: 50, Price: decimal.NewFromInt(7999), Currency: "BDT"},
}

// Plans returns a copy of the package catalog.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}
