// Package cart holds the shopping cart state: line items keyed by product,
// with a snapshot persisted after every mutation and restored on load.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// StorageName is the fixed name cart snapshots are stored under.
const StorageName = "cart-storage"

// Item is one cart line. Name, price, image and brand are denormalized
// snapshots captured when the product was added; totals always use the
// add-time price, not the live product price.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Brand     string          `json:"brand,omitempty"`
	Quantity  int             `json:"quantity"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Store is one cart. Mutations apply to memory synchronously and then
// persist a snapshot best-effort; a persistence failure is not surfaced.
type Store struct {
	mu    sync.Mutex
	name  string
	items []Item
	seq   uint64
	snaps Snapshots
	wg    sync.WaitGroup
}

// NewStore rehydrates the cart named name from snaps. A missing or
// unreadable snapshot yields an empty cart. The write sequence resumes
// from the loaded snapshot so post-restart mutations are never taken for
// stale writes.
func NewStore(name string, snaps Snapshots) *Store {
	s := &Store{name: name, snaps: snaps}
	if snaps != nil {
		if items, seq, err := snaps.Load(name); err == nil {
			s.items = items
			s.seq = seq
		}
	}
	return s
}

// AddItem merges by product identity: an existing line gets quantity+1,
// otherwise a new line with quantity 1 is appended. Quantity on the
// argument is ignored.
func (s *Store) AddItem(p Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == p.ProductID {
			s.items[i].Quantity++
			s.persistLocked()
			return
		}
	}
	p.Quantity = 1
	s.items = append(s.items, p)
	s.persistLocked()
}

// RemoveItem removes the line matching productID; no-op if absent.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
	s.persistLocked()
}

// UpdateQuantity sets the line's quantity, removing the line entirely when
// quantity <= 0. Quantities are not clamped to stock.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		s.persistLocked()
		return
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.persistLocked()
}

// Clear empties all lines.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persistLocked()
}

// Items returns a copy of the current lines.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Item(nil), s.items...)
}

// TotalItems is the sum of quantities across all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice is the sum of price*quantity across all lines, using the
// price snapshots captured at add time.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (s *Store) removeLocked(productID string) {
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

// persistLocked hands a snapshot to the store in the background. Writes
// carry a monotonically increasing sequence so a slow older write cannot
// overwrite a newer one.
func (s *Store) persistLocked() {
	if s.snaps == nil {
		return
	}
	s.seq++
	seq := s.seq
	items := append([]Item(nil), s.items...)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = s.snaps.Save(s.name, seq, items) // best-effort
	}()
}

// Flush waits for in-flight snapshot writes, for shutdown and tests.
func (s *Store) Flush() {
	s.wg.Wait()
}
