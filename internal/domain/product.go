package domain

// PriceTags lists the payment-method price columns of a price list, in the
// exact order they appear in the uploaded CSV.
var PriceTags = []string{
	"cash",
	"debit",
	"credit3",
	"credit6",
	"promo",
	"wholesale",
	"marketplace",
	"marketplace12",
	"marketplace3",
	"marketplace6",
	"marketplace9",
	"marketplaceLowRate",
}

// StockTags lists the warehouse stock columns, in CSV order.
var StockTags = []string{
	"warehouseMain",
	"warehouseAnnex",
	"fulfillment",
	"store",
}

// Record is one row of an ingested price list. Records are immutable after
// ingestion: a re-upload replaces the whole corpus, there are no partial
// updates. Price and stock values stay formatted strings since they are
// display-only downstream.
type Record struct {
	Code   string            `json:"code"`
	Name   string            `json:"name"`
	Prices map[string]string `json:"prices"`
	Stock  map[string]string `json:"stock"`

	Barcode     *string `json:"barcode,omitempty"`
	Category    *string `json:"category,omitempty"`
	Subcategory *string `json:"subcategory,omitempty"`
	Brand       *string `json:"brand,omitempty"`
	Description *string `json:"description,omitempty"`
	Size        *string `json:"size,omitempty"`
	Color       *string `json:"color,omitempty"`
	Unit        *string `json:"unit,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Supplier    *string `json:"supplier,omitempty"`
}

// IndexKeys names the record fields the fuzzy index matches against. The
// serialized index stores these so the query side never hardcodes them.
var IndexKeys = []string{"code", "name"}

// Projection is the reduced view of a Record used to build the fuzzy index.
// Keeping it down to the two matching keys bounds index size regardless of
// how many descriptive columns a price list carries.
type Projection struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Project reduces the record to its searchable fields.
func (r Record) Project() Projection {
	return Projection{Code: r.Code, Name: r.Name}
}

// Fields maps the projection onto IndexKeys for index construction.
func (p Projection) Fields() map[string]string {
	return map[string]string{"code": p.Code, "name": p.Name}
}
