package store

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"bakery-inventory/internal/models"
	"bakery-inventory/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
)

// PersistObserver is notified after every snapshot write. It runs while the
// store is locked and must not call back into the store.
type PersistObserver func(PersistResult)

// Option configures an InventoryStore
type Option func(*InventoryStore)

// WithLogger overrides the global logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *InventoryStore) {
		s.logger = logger
	}
}

// WithPersistObserver registers a callback for snapshot write outcomes
func WithPersistObserver(observer PersistObserver) Option {
	return func(s *InventoryStore) {
		s.observer = observer
	}
}

// InventoryStore owns the product catalog and the sales totals. Every
// mutation is written through to the snapshot files; write failures are
// logged and never undo the in-memory change.
type InventoryStore struct {
	mu          sync.Mutex
	products    []models.Product
	totals      models.SalesTotals
	snapshot    *Snapshot
	logger      *zap.Logger
	observer    PersistObserver
	lastPersist PersistResult
	lastByFile  map[SnapshotFile]PersistResult
}

// Open loads the store from its snapshot files, seeding the default catalog
// when no products could be loaded.
func Open(snapshot *Snapshot, opts ...Option) *InventoryStore {
	s := &InventoryStore{
		products:   make([]models.Product, 0),
		totals:     models.SalesTotals{Revenue: decimal.Zero},
		snapshot:   snapshot,
		logger:     util.GetLogger(),
		lastByFile: make(map[SnapshotFile]PersistResult, 2),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()

	if len(s.products) == 0 {
		s.logger.Info("Catalog is empty, seeding default products")
		s.products = DefaultCatalog()
		s.saveProductsLocked()
	}

	return s
}

func (s *InventoryStore) load() {
	products, err := s.snapshot.LoadProducts()
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.logger.Info("No catalog snapshot found", zap.String("path", s.snapshot.Path(ProductsFile)))
	case err != nil:
		s.logger.Error("Failed to load catalog snapshot",
			zap.String("path", s.snapshot.Path(ProductsFile)),
			zap.Error(err))
	default:
		s.products = products
	}

	totals, err := s.snapshot.LoadSales()
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.logger.Info("No sales snapshot found", zap.String("path", s.snapshot.Path(SalesFile)))
	case err != nil:
		s.logger.Error("Failed to load sales snapshot",
			zap.String("path", s.snapshot.Path(SalesFile)),
			zap.Error(err))
	default:
		s.totals = totals
	}

	s.logger.Info("Store loaded",
		zap.Int("products", len(s.products)),
		zap.String("revenue", s.totals.Revenue.StringFixed(2)),
		zap.Int64("units_sold", s.totals.UnitsSold))
}

// ListProducts returns a copy of the catalog in insertion order
func (s *InventoryStore) ListProducts() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]models.Product, len(s.products))
	copy(products, s.products)
	return products
}

// FindProduct returns the first product with the given id
func (s *InventoryStore) FindProduct(id int64) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Product{}, false
	}
	return s.products[i], true
}

// NextProductID returns one past the highest id in the catalog. The id is
// not reserved until a product is added with it.
func (s *InventoryStore) NextProductID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	for _, p := range s.products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

// AddProduct appends p to the catalog. Id uniqueness is the caller's
// responsibility; a duplicate id is stored as a second entry and lookups
// resolve to the first one.
func (s *InventoryStore) AddProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append(s.products, p)
	s.saveProductsLocked()
}

// UpdateProduct replaces the first product whose id matches p.ID. Unknown ids
// are ignored.
func (s *InventoryStore) UpdateProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(p.ID)
	if i < 0 {
		return
	}
	s.products[i] = p
	s.saveProductsLocked()
}

// DeleteProduct removes every product with the given id
func (s *InventoryStore) DeleteProduct(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.saveProductsLocked()
}

// AdjustStock adds delta to the stock of a product. It refuses, without
// touching anything, when the product is unknown or the stock would go
// negative.
func (s *InventoryStore) AdjustStock(id int64, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		util.StockAdjustmentsRejected.WithLabelValues("not_found").Inc()
		return false
	}
	if s.products[i].Stock+delta < 0 {
		util.StockAdjustmentsRejected.WithLabelValues("insufficient_stock").Inc()
		return false
	}

	s.products[i].Stock += delta
	s.saveProductsLocked()
	return true
}

// ApplySale adds a sale to the running totals. Stock is not checked; callers
// adjust it separately.
func (s *InventoryStore) ApplySale(revenue decimal.Decimal, units int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addToTotals(revenue, units)
	s.saveSalesLocked()
}

// Sell decrements stock and records the sale as a single step
func (s *InventoryStore) Sell(id int64, quantity int) (models.Sale, error) {
	if quantity <= 0 {
		return models.Sale{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Sale{}, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}

	p := &s.products[i]
	if p.Stock < quantity {
		return models.Sale{}, fmt.Errorf("%w: available=%d, requested=%d",
			ErrInsufficientStock, p.Stock, quantity)
	}

	p.Stock -= quantity
	sale := models.Sale{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		UnitPrice:   p.UnitPrice,
		Total:       p.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
	s.addToTotals(sale.Total, quantity)

	s.saveProductsLocked()
	s.saveSalesLocked()
	return sale, nil
}

// TotalRevenue returns the cumulative sales revenue
func (s *InventoryStore) TotalRevenue() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals.Revenue
}

// TotalUnitsSold returns the cumulative number of units sold
func (s *InventoryStore) TotalUnitsSold() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals.UnitsSold
}

// Totals returns both ledger counters read under the same lock
func (s *InventoryStore) Totals() models.SalesTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

// PersistStatus returns the outcome of the most recent snapshot write, unless
// an earlier write to the other file failed and has not succeeded since. A
// failure stays reported until its own file is written successfully.
func (s *InventoryStore) PersistStatus() PersistResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lastPersist.OK() {
		return s.lastPersist
	}
	for _, file := range []SnapshotFile{ProductsFile, SalesFile} {
		if result, ok := s.lastByFile[file]; ok && !result.OK() {
			return result
		}
	}
	return s.lastPersist
}

func (s *InventoryStore) indexOf(id int64) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *InventoryStore) addToTotals(revenue decimal.Decimal, units int) {
	s.totals.Revenue = s.totals.Revenue.Add(revenue)
	s.totals.UnitsSold += int64(units)
	if units > 0 {
		util.UnitsSoldTotal.Add(float64(units))
	}
}

func (s *InventoryStore) saveProductsLocked() {
	s.recordPersist(ProductsFile, s.snapshot.SaveProducts(s.products))
}

func (s *InventoryStore) saveSalesLocked() {
	s.recordPersist(SalesFile, s.snapshot.SaveSales(s.totals))
}

func (s *InventoryStore) recordPersist(file SnapshotFile, err error) {
	result := PersistResult{File: file, At: time.Now(), Err: err}
	s.lastPersist = result
	s.lastByFile[file] = result

	if err != nil {
		util.PersistenceFailuresTotal.WithLabelValues(string(file)).Inc()
		s.logger.Error("Failed to save snapshot",
			zap.String("file", string(file)),
			zap.String("path", s.snapshot.Path(file)),
			zap.Error(err))
	}

	if s.observer != nil {
		s.observer(result)
	}
}
