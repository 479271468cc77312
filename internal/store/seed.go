package store

import (
	"bakery-inventory/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultCatalog returns the products a fresh installation starts with
func DefaultCatalog() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Chocolate Cake", Category: models.CategoryCake, UnitPrice: decimal.RequireFromString("24.99"), Stock: 20},
		{ID: 2, Name: "Black Forest Cake", Category: models.CategoryCake, UnitPrice: decimal.RequireFromString("29.99"), Stock: 15},
		{ID: 3, Name: "Vanilla Cupcake", Category: models.CategoryCake, UnitPrice: decimal.RequireFromString("2.99"), Stock: 50},
		{ID: 4, Name: "Croissant", Category: models.CategoryPastry, UnitPrice: decimal.RequireFromString("3.99"), Stock: 30},
		{ID: 5, Name: "Danish Pastry", Category: models.CategoryPastry, UnitPrice: decimal.RequireFromString("4.99"), Stock: 25},
		{ID: 6, Name: "Wheat Bread", Category: models.CategoryBread, UnitPrice: decimal.RequireFromString("5.99"), Stock: 20},
		{ID: 7, Name: "Baguette", Category: models.CategoryBread, UnitPrice: decimal.RequireFromString("4.50"), Stock: 18},
		{ID: 8, Name: "Cinnamon Roll", Category: models.CategoryOthers, UnitPrice: decimal.RequireFromString("3.50"), Stock: 35},
	}
}
