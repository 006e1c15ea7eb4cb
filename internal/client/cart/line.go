// Package cart is the per-subject local cache of selected products. It
// never stores price: price is always re-fetched from the catalog, the
// server being the source of truth.
package cart

// Line is one cart entry: a product reference and a quantity.
type Line struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}
