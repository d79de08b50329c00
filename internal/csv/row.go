package csv

import (
	"fmt"

	"github.com/retail-cloud/pricedex/internal/domain"
)

// Column layout of an uploaded price list. The order is a fixed contract
// with the upstream export: code, name, 12 price columns, 4 stock columns,
// then up to 10 optional descriptive columns.
const (
	colCode = 0
	colName = 1

	colPriceFirst = 2  // .. colPriceFirst+len(PriceTags)-1
	colStockFirst = 14 // .. colStockFirst+len(StockTags)-1

	colBarcode     = 18
	colCategory    = 19
	colSubcategory = 20
	colBrand       = 21
	colDescription = 22
	colSize        = 23
	colColor       = 24
	colUnit        = 25
	colNotes       = 26
	colSupplier    = 27

	// requiredColumns covers code, name, prices and stock. Optional
	// descriptive columns past this point may be absent.
	requiredColumns = 18
)

// RecordFromRow maps a decoded field sequence onto a product record by
// position. Rows shorter than the required column count, or with an empty
// code, are decode errors.
func RecordFromRow(fields []string) (domain.Record, error) {
	if len(fields) < requiredColumns {
		return domain.Record{}, fmt.Errorf(
			"%w: got %d columns, want at least %d", domain.ErrDecode, len(fields), requiredColumns)
	}
	if fields[colCode] == "" {
		return domain.Record{}, fmt.Errorf("%w: empty product code", domain.ErrDecode)
	}

	rec := domain.Record{
		Code:   fields[colCode],
		Name:   fields[colName],
		Prices: make(map[string]string, len(domain.PriceTags)),
		Stock:  make(map[string]string, len(domain.StockTags)),
	}

	for i, tag := range domain.PriceTags {
		rec.Prices[tag] = fields[colPriceFirst+i]
	}
	for i, tag := range domain.StockTags {
		rec.Stock[tag] = fields[colStockFirst+i]
	}

	rec.Barcode = optional(fields, colBarcode)
	rec.Category = optional(fields, colCategory)
	rec.Subcategory = optional(fields, colSubcategory)
	rec.Brand = optional(fields, colBrand)
	rec.Description = optional(fields, colDescription)
	rec.Size = optional(fields, colSize)
	rec.Color = optional(fields, colColor)
	rec.Unit = optional(fields, colUnit)
	rec.Notes = optional(fields, colNotes)
	rec.Supplier = optional(fields, colSupplier)

	return rec, nil
}

// optional returns a pointer to the field at idx, or nil when the column is
// absent or empty. Empty optional columns stay unset rather than "".
func optional(fields []string, idx int) *string {
	if idx >= len(fields) || fields[idx] == "" {
		return nil
	}
	v := fields[idx]
	return &v
}
