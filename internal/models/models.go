package models

import "github.com/shopspring/decimal"

// Category labels offered by the product form
const (
	CategoryCake   = "Cake"
	CategoryPastry = "Pastry"
	CategoryBread  = "Bread"
	CategoryOthers = "Others"
)

// Categories lists the accepted product categories in display order
var Categories = []string{CategoryCake, CategoryPastry, CategoryBread, CategoryOthers}

// IsValidCategory reports whether c is one of the fixed category labels
func IsValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product represents a sellable bakery item
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock"`
}

// SalesTotals holds the aggregate sales counters
type SalesTotals struct {
	Revenue   decimal.Decimal `json:"revenue"`
	UnitsSold int64           `json:"units_sold"`
}

// Sale describes a completed sale of a single product
type Sale struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// SalesReport is the summary shown on the sales screen
type SalesReport struct {
	Revenue        decimal.Decimal `json:"revenue"`
	UnitsSold      int64           `json:"units_sold"`
	AveragePerUnit decimal.Decimal `json:"average_per_unit"`
}
