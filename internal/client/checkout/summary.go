package checkout

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/storefront-client/internal/client/api"
	"github.com/dmitrijs2005/storefront-client/internal/client/cart"
	"github.com/dmitrijs2005/storefront-client/internal/logging"
)

// SummaryItem is one itemized row of the order summary.
type SummaryItem struct {
	ProductID int64
	Name      string
	Image     string
	Quantity  int64
	LineTotal float64
}

// Summary is the reconciled order summary: cart lines joined against a
// fresh catalog fetch, with server prices as the source of truth.
type Summary struct {
	Items       []SummaryItem
	Subtotal    float64
	DeliveryFee float64
	Total       float64
}

// CartReader yields the current cart lines.
type CartReader interface {
	Read(ctx context.Context) ([]cart.Line, error)
}

// Catalog yields the product catalog.
type Catalog interface {
	ListProducts(ctx context.Context) ([]api.Product, error)
}

// Engine recomputes authoritative line totals by joining the local cart
// against a fresh catalog fetch. Cart lines whose product no longer
// exists are silently dropped from the total.
//
// Overlapping refreshes are serialized by a sequence number: each call
// is tagged when issued and its result is applied only if it is still
// the latest, so an out-of-order completion can never overwrite a newer
// one.
type Engine struct {
	catalog     Catalog
	cart        CartReader
	deliveryFee float64
	log         logging.Logger

	mu      sync.Mutex
	issued  uint64
	current *Summary
}

func NewEngine(catalog Catalog, cartReader CartReader, deliveryFee float64, log logging.Logger) *Engine {
	return &Engine{catalog: catalog, cart: cartReader, deliveryFee: deliveryFee, log: log}
}

// Current returns the last applied summary, or nil before the first
// successful refresh.
func (e *Engine) Current() *Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// RefreshSummary fetches the catalog, recomputes the summary, and
// applies it unless a newer refresh was issued meanwhile. On a fetch
// failure the previously applied summary stays in place and the error is
// returned for non-blocking surfacing.
func (e *Engine) RefreshSummary(ctx context.Context) (*Summary, error) {
	e.mu.Lock()
	e.issued++
	seq := e.issued
	e.mu.Unlock()

	lines, err := e.cart.Read(ctx)
	if err != nil {
		return e.Current(), err
	}

	products, err := e.catalog.ListProducts(ctx)
	if err != nil {
		if e.log != nil {
			e.log.Warn(ctx, "catalog fetch failed, keeping previous summary", "error", err)
		}
		return e.Current(), err
	}

	summary := e.compute(lines, products)

	e.mu.Lock()
	defer e.mu.Unlock()
	if seq == e.issued {
		e.current = summary
	}
	return e.current, nil
}

func (e *Engine) compute(lines []cart.Line, products []api.Product) *Summary {
	byID := make(map[int64]api.Product, len(products))
	for _, p := range products {
		byID[p.ProductID] = p
	}

	s := &Summary{Items: make([]SummaryItem, 0, len(lines)), DeliveryFee: e.deliveryFee}

	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		item := SummaryItem{
			ProductID: p.ProductID,
			Name:      p.ProductName,
			Quantity:  line.Quantity,
			LineTotal: p.Price * float64(line.Quantity),
		}
		if len(p.Images) > 0 {
			item.Image = p.Images[0]
		}
		s.Items = append(s.Items, item)
		s.Subtotal += item.LineTotal
	}

	s.Total = s.Subtotal + s.DeliveryFee
	return s
}
