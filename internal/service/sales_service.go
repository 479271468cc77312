package service

import (
	"context"

	"bakery-inventory/internal/models"
	"bakery-inventory/internal/store"
	"bakery-inventory/internal/util"

	"github.com/shopspring/decimal"
)

// SalesService builds the sales summary
type SalesService struct {
	store *store.InventoryStore
}

// NewSalesService creates a new sales service
func NewSalesService(store *store.InventoryStore) *SalesService {
	return &SalesService{store: store}
}

// Report returns the running totals and the average revenue per unit sold
func (s *SalesService) Report(ctx context.Context) models.SalesReport {
	_, span := util.StartSpan(ctx, "SalesService.Report")
	defer span.End()

	totals := s.store.Totals()

	average := decimal.Zero
	if totals.UnitsSold > 0 {
		average = totals.Revenue.Div(decimal.NewFromInt(totals.UnitsSold)).Round(2)
	}

	return models.SalesReport{
		Revenue:        totals.Revenue,
		UnitsSold:      totals.UnitsSold,
		AveragePerUnit: average,
	}
}
