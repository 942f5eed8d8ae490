package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Line is one cart entry. A cart never holds two lines for the same
// (product, size) pair; adding the same pair again increments it.
type Line struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	SKU         string    `json:"sku"`
	Size        string    `json:"size"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unit_price"`
}

// Subtotal is the net line value.
func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Snapshot is a copy of the cart contents with the recomputed total.
type Snapshot struct {
	Lines []Line `json:"lines"`
	Total int64  `json:"total"`
}

// Store holds per-user session carts in memory. Instances are injected
// into controllers; there is no package-level state.
type Store struct {
	mu    sync.RWMutex
	carts map[uuid.UUID][]Line
}

// NewStore builds an empty session cart store.
func NewStore() *Store {
	return &Store{carts: map[uuid.UUID][]Line{}}
}

// Add appends a line, or increments the quantity when the (product,
// size) pair already exists. The stored unit price stays the one
// captured on first insert.
func (s *Store) Add(userID uuid.UUID, line Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductID == line.ProductID && lines[i].Size == line.Size {
			lines[i].Quantity += line.Quantity
			return
		}
	}
	s.carts[userID] = append(lines, line)
}

// SetQuantity overwrites a line's quantity. Zero is kept as a zero line.
// Returns false when the line does not exist.
func (s *Store) SetQuantity(userID, productID uuid.UUID, size string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductID == productID && lines[i].Size == size {
			lines[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Remove drops a line. Returns false when the line does not exist.
func (s *Store) Remove(userID, productID uuid.UUID, size string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductID == productID && lines[i].Size == size {
			s.carts[userID] = append(lines[:i], lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the user's cart.
func (s *Store) Clear(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// Snapshot copies the cart and recomputes the total from the lines.
func (s *Store) Snapshot(userID uuid.UUID) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := s.carts[userID]
	snapshot := Snapshot{Lines: make([]Line, len(lines))}
	copy(snapshot.Lines, lines)
	for _, line := range snapshot.Lines {
		snapshot.Total += line.Subtotal()
	}
	return snapshot
}
