package store

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"bakery-inventory/internal/models"

	"github.com/hamba/avro/v2/ocf"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
)

const (
	snapshotVersion = 1
	versionMetaKey  = "bakery.snapshot.version"
)

const productSchemaV1 = `{
	"type": "record",
	"name": "ProductV1",
	"namespace": "bakery.snapshot",
	"fields": [
		{"name": "id", "type": "long"},
		{"name": "name", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "unit_price", "type": "string"},
		{"name": "stock", "type": "long"}
	]
}`

const salesSchemaV1 = `{
	"type": "record",
	"name": "SalesTotalsV1",
	"namespace": "bakery.snapshot",
	"fields": [
		{"name": "revenue", "type": "string"},
		{"name": "units_sold", "type": "long"}
	]
}`

type productRecord struct {
	ID        int64  `avro:"id"`
	Name      string `avro:"name"`
	Category  string `avro:"category"`
	UnitPrice string `avro:"unit_price"`
	Stock     int64  `avro:"stock"`
}

type salesRecord struct {
	Revenue   string `avro:"revenue"`
	UnitsSold int64  `avro:"units_sold"`
}

// SnapshotFile names one of the two persisted files
type SnapshotFile string

const (
	ProductsFile SnapshotFile = "products"
	SalesFile    SnapshotFile = "sales"
)

// PersistResult is the outcome of a single snapshot write
type PersistResult struct {
	File SnapshotFile
	At   time.Time
	Err  error
}

// OK reports whether the write succeeded
func (r PersistResult) OK() bool {
	return r.Err == nil
}

// Snapshot reads and writes whole-collection snapshots of the catalog and the
// sales totals. Every save truncates and rewrites its file in place.
type Snapshot struct {
	fs           afero.Fs
	productsPath string
	salesPath    string
}

// NewSnapshot creates a snapshot codec over the given filesystem
func NewSnapshot(fs afero.Fs, productsPath, salesPath string) *Snapshot {
	return &Snapshot{
		fs:           fs,
		productsPath: productsPath,
		salesPath:    salesPath,
	}
}

// Path returns the location of the given snapshot file
func (s *Snapshot) Path(file SnapshotFile) string {
	if file == SalesFile {
		return s.salesPath
	}
	return s.productsPath
}

// SaveProducts overwrites the catalog file with products
func (s *Snapshot) SaveProducts(products []models.Product) error {
	records := make([]any, 0, len(products))
	for _, p := range products {
		records = append(records, productRecord{
			ID:        p.ID,
			Name:      p.Name,
			Category:  p.Category,
			UnitPrice: p.UnitPrice.String(),
			Stock:     int64(p.Stock),
		})
	}
	return s.write(s.productsPath, productSchemaV1, records)
}

// LoadProducts reads the catalog file. A missing file yields an error
// matching os.ErrNotExist.
func (s *Snapshot) LoadProducts() ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := s.read(s.productsPath, func(dec *ocf.Decoder) error {
		var rec productRecord
		if err := dec.Decode(&rec); err != nil {
			return err
		}
		price, err := decimal.NewFromString(rec.UnitPrice)
		if err != nil {
			return fmt.Errorf("invalid unit price for product %d: %w", rec.ID, err)
		}
		products = append(products, models.Product{
			ID:        rec.ID,
			Name:      rec.Name,
			Category:  rec.Category,
			UnitPrice: price,
			Stock:     int(rec.Stock),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// SaveSales overwrites the sales file with totals
func (s *Snapshot) SaveSales(totals models.SalesTotals) error {
	return s.write(s.salesPath, salesSchemaV1, []any{salesRecord{
		Revenue:   totals.Revenue.String(),
		UnitsSold: totals.UnitsSold,
	}})
}

// LoadSales reads the sales file. A missing file yields an error matching
// os.ErrNotExist.
func (s *Snapshot) LoadSales() (models.SalesTotals, error) {
	var (
		totals models.SalesTotals
		found  bool
	)
	err := s.read(s.salesPath, func(dec *ocf.Decoder) error {
		var rec salesRecord
		if err := dec.Decode(&rec); err != nil {
			return err
		}
		revenue, err := decimal.NewFromString(rec.Revenue)
		if err != nil {
			return fmt.Errorf("invalid revenue: %w", err)
		}
		totals = models.SalesTotals{Revenue: revenue, UnitsSold: rec.UnitsSold}
		found = true
		return nil
	})
	if err != nil {
		return models.SalesTotals{}, err
	}
	if !found {
		return models.SalesTotals{}, errors.New("sales snapshot holds no record")
	}
	return totals, nil
}

func (s *Snapshot) write(path, schema string, records []any) (err error) {
	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	enc, err := ocf.NewEncoder(schema, f, ocf.WithMetadata(map[string][]byte{
		versionMetaKey: []byte(strconv.Itoa(snapshotVersion)),
	}))
	if err != nil {
		return fmt.Errorf("failed to create encoder for %s: %w", path, err)
	}

	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode record to %s: %w", path, err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

func (s *Snapshot) read(path string, decodeNext func(*ocf.Decoder) error) error {
	f, err := s.fs.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec, err := ocf.NewDecoder(f)
	if err != nil {
		return fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	if raw, ok := dec.Metadata()[versionMetaKey]; ok {
		version, err := strconv.Atoi(string(raw))
		if err != nil || version > snapshotVersion {
			return fmt.Errorf("unsupported snapshot version %q in %s", raw, path)
		}
	}

	for dec.HasNext() {
		if err := decodeNext(dec); err != nil {
			return fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}
	return dec.Error()
}
