package models

import "github.com/shopspring/decimal"

// MonthlySummary aggregates one order month.
type MonthlySummary struct {
	Month        string          `json:"month"`
	OrderCount   int             `json:"order_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalOther   decimal.Decimal `json:"total_other"`
	Profit       decimal.Decimal `json:"profit"`
}

// DailyCount is the number of orders created on one date.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// AccountingView is the accounting page payload: the (optionally filtered)
// orders plus every month present in the store for the filter selector.
type AccountingView struct {
	Orders        []Order  `json:"orders"`
	Months        []string `json:"months"`
	SelectedMonth string   `json:"selected_month"`
}
