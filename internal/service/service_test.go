package service

import (
	"context"
	"testing"

	"bakery-inventory/internal/models"
	"bakery-inventory/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *store.InventoryStore {
	t.Helper()
	snap := store.NewSnapshot(afero.NewMemMapFs(), "products.avro", "sales.avro")
	return store.Open(snap, store.WithLogger(zap.NewNop()))
}

func validInput() ProductInput {
	return ProductInput{
		Name:      "Eclair",
		Category:  models.CategoryPastry,
		UnitPrice: decimal.RequireFromString("3.25"),
		Stock:     10,
	}
}

func TestProductInputValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProductInput)
		valid  bool
	}{
		{"Valid", func(*ProductInput) {}, true},
		{"ZeroStock", func(in *ProductInput) { in.Stock = 0 }, true},
		{"BlankName", func(in *ProductInput) { in.Name = "   " }, false},
		{"UnknownCategory", func(in *ProductInput) { in.Category = "Cookies" }, false},
		{"EmptyCategory", func(in *ProductInput) { in.Category = "" }, false},
		{"ZeroPrice", func(in *ProductInput) { in.UnitPrice = decimal.Zero }, false},
		{"NegativePrice", func(in *ProductInput) { in.UnitPrice = decimal.RequireFromString("-1") }, false},
		{"NegativeStock", func(in *ProductInput) { in.Stock = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := in.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidProduct)
			}
		})
	}
}

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()
	ps := NewProductService(newTestStore(t))

	in := validInput()
	in.Name = "  Eclair  "
	product, err := ps.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(9), product.ID)
	assert.Equal(t, "Eclair", product.Name)

	got, err := ps.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "Eclair", got.Name)

	second, err := ps.Create(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(10), second.ID)
	assert.Len(t, ps.List(ctx), 10)
}

func TestProductServiceCreateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	ps := NewProductService(newTestStore(t))

	in := validInput()
	in.UnitPrice = decimal.Zero
	_, err := ps.Create(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidProduct)
	assert.Len(t, ps.List(ctx), 8)
}

func TestProductServiceUpdate(t *testing.T) {
	ctx := context.Background()
	ps := NewProductService(newTestStore(t))

	in := validInput()
	in.Name = "Almond Croissant"
	updated, err := ps.Update(ctx, 4, in)
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.ID)

	got, err := ps.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Almond Croissant", got.Name)

	_, err = ps.Update(ctx, 99, in)
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

func TestProductServiceDelete(t *testing.T) {
	ctx := context.Background()
	ps := NewProductService(newTestStore(t))

	require.NoError(t, ps.Delete(ctx, 8))
	_, err := ps.Get(ctx, 8)
	assert.ErrorIs(t, err, store.ErrProductNotFound)

	assert.ErrorIs(t, ps.Delete(ctx, 8), store.ErrProductNotFound)
	assert.Len(t, ps.List(ctx), 7)
}

func TestOrderServiceQuote(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	os := NewOrderService(s)

	sale, err := os.Quote(ctx, OrderRequest{ProductID: 1, Quantity: 5})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("124.95").Equal(sale.Total))

	found, _ := s.FindProduct(1)
	assert.Equal(t, 20, found.Stock, "quoting must not touch stock")

	_, err = os.Quote(ctx, OrderRequest{ProductID: 1, Quantity: 0})
	assert.ErrorIs(t, err, store.ErrInvalidQuantity)
	_, err = os.Quote(ctx, OrderRequest{ProductID: 1, Quantity: 999})
	assert.ErrorIs(t, err, store.ErrInsufficientStock)
	_, err = os.Quote(ctx, OrderRequest{ProductID: 100, Quantity: 1})
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

func TestOrderServicePlaceOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	os := NewOrderService(s)

	sale, err := os.PlaceOrder(ctx, OrderRequest{ProductID: 1, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, "Chocolate Cake", sale.ProductName)
	assert.True(t, decimal.RequireFromString("124.95").Equal(sale.Total))

	found, _ := s.FindProduct(1)
	assert.Equal(t, 15, found.Stock)
	assert.True(t, decimal.RequireFromString("124.95").Equal(s.TotalRevenue()))
	assert.Equal(t, int64(5), s.TotalUnitsSold())
}

func TestOrderServicePlaceOrderInsufficientStock(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	os := NewOrderService(s)

	_, err := os.PlaceOrder(ctx, OrderRequest{ProductID: 1, Quantity: 999})
	assert.ErrorIs(t, err, store.ErrInsufficientStock)

	found, _ := s.FindProduct(1)
	assert.Equal(t, 20, found.Stock)
	assert.True(t, s.TotalRevenue().IsZero())
	assert.Zero(t, s.TotalUnitsSold())
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "invalid_quantity", failureReason(store.ErrInvalidQuantity))
	assert.Equal(t, "not_found", failureReason(store.ErrProductNotFound))
	assert.Equal(t, "insufficient_stock", failureReason(store.ErrInsufficientStock))
	assert.Equal(t, "error", failureReason(assert.AnError))
}

func TestSalesServiceReport(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ss := NewSalesService(s)

	report := ss.Report(ctx)
	assert.True(t, report.Revenue.IsZero())
	assert.Zero(t, report.UnitsSold)
	assert.True(t, report.AveragePerUnit.IsZero())

	s.ApplySale(decimal.RequireFromString("124.95"), 5)
	s.ApplySale(decimal.RequireFromString("4.50"), 1)

	report = ss.Report(ctx)
	assert.True(t, decimal.RequireFromString("129.45").Equal(report.Revenue))
	assert.Equal(t, int64(6), report.UnitsSold)
	assert.True(t, decimal.RequireFromString("21.58").Equal(report.AveragePerUnit),
		"got %s", report.AveragePerUnit)
}
