package models

import "github.com/shopspring/decimal"

func init() {
	// API responses carry money as JSON numbers, matching the storefront client.
	decimal.MarshalJSONWithoutQuotes = true
}
