package bag

import "github.com/google/uuid"

// MaxLineQuantity is the per-line ceiling for any (product, volume) pair.
const MaxLineQuantity = 10

// LineItem is the minimal client-held representation of one bag line. Price,
// name, and imagery are always re-resolved server-side so they can never go
// stale or be falsified.
type LineItem struct {
	ProductID uuid.UUID `json:"productId"`
	VolumeID  int64     `json:"volumeId"`
	Quantity  int       `json:"quantity"`
}

// AddedNotification signals that AddItem ran, carrying whether the unclamped
// quantity would have exceeded the ceiling. Single-slot: a second add before
// the first is consumed overwrites it.
type AddedNotification struct {
	ProductID             uuid.UUID `json:"productId"`
	VolumeID              int64     `json:"volumeId"`
	IsMaxQuantityExceeded bool      `json:"isMaxQuantityExceeded"`
}

// Bag is the full shopping-bag state. Mutations return a new value rather
// than mutating in place, so callers can persist or discard snapshots freely.
type Bag struct {
	Items          []LineItem         `json:"items"`
	SelectedSample *string            `json:"selectedSample"`
	Added          *AddedNotification `json:"-"`
}

func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	if q > MaxLineQuantity {
		return MaxLineQuantity
	}
	return q
}

func (b Bag) cloneItems() []LineItem {
	items := make([]LineItem, len(b.Items))
	copy(items, b.Items)
	return items
}

// AddItem merges quantity into an existing (product, volume) line or appends a
// new one, clamping to the ceiling. The notification reports whether the
// unclamped sum exceeded the ceiling, regardless of clamping outcome.
func (b Bag) AddItem(productID uuid.UUID, volumeID int64, quantity int) Bag {
	if quantity < 1 {
		quantity = 1
	}

	next := b
	next.Items = b.cloneItems()

	exceeded := false
	found := false
	for i := range next.Items {
		line := &next.Items[i]
		if line.ProductID == productID && line.VolumeID == volumeID {
			unclamped := line.Quantity + quantity
			exceeded = unclamped > MaxLineQuantity
			line.Quantity = clampQuantity(unclamped)
			found = true
			break
		}
	}
	if !found {
		exceeded = quantity > MaxLineQuantity
		next.Items = append(next.Items, LineItem{
			ProductID: productID,
			VolumeID:  volumeID,
			Quantity:  clampQuantity(quantity),
		})
	}

	next.Added = &AddedNotification{
		ProductID:             productID,
		VolumeID:              volumeID,
		IsMaxQuantityExceeded: exceeded,
	}
	return next
}

// FromItems rebuilds a bag from client-submitted lines, merging duplicate
// (product, volume) pairs and clamping quantities. Lines without a product or
// volume id are dropped.
func FromItems(items []LineItem, sample *string) Bag {
	b := Bag{}
	for _, line := range items {
		if line.ProductID == uuid.Nil || line.VolumeID <= 0 {
			continue
		}
		b = b.AddItem(line.ProductID, line.VolumeID, line.Quantity)
	}
	return b.ClearAddedProduct().SetSelectedSample(sample)
}

// RemoveItem deletes the matching line; no-op if absent.
func (b Bag) RemoveItem(productID uuid.UUID, volumeID int64) Bag {
	next := b
	next.Items = make([]LineItem, 0, len(b.Items))
	for _, line := range b.Items {
		if line.ProductID == productID && line.VolumeID == volumeID {
			continue
		}
		next.Items = append(next.Items, line)
	}
	return next
}

// UpdateQuantity replaces a line's quantity, clamped to the ceiling. A
// non-positive quantity removes the line.
func (b Bag) UpdateQuantity(productID uuid.UUID, volumeID int64, quantity int) Bag {
	if quantity <= 0 {
		return b.RemoveItem(productID, volumeID)
	}

	next := b
	next.Items = b.cloneItems()
	for i := range next.Items {
		line := &next.Items[i]
		if line.ProductID == productID && line.VolumeID == volumeID {
			line.Quantity = clampQuantity(quantity)
			break
		}
	}
	return next
}

// SetSelectedSample replaces the single free-sample selection; nil clears it.
func (b Bag) SetSelectedSample(slug *string) Bag {
	next := b
	next.Items = b.cloneItems()
	if slug == nil {
		next.SelectedSample = nil
		return next
	}
	s := *slug
	next.SelectedSample = &s
	return next
}

// ClearAddedProduct consumes the pending "added" notification.
func (b Bag) ClearAddedProduct() Bag {
	next := b
	next.Items = b.cloneItems()
	next.Added = nil
	return next
}

// Clear empties all lines and the sample selection.
func (b Bag) Clear() Bag {
	return Bag{}
}

// TotalItems sums all line quantities (not line count).
func (b Bag) TotalItems() int {
	total := 0
	for _, line := range b.Items {
		total += line.Quantity
	}
	return total
}

// IsEmpty reports whether the bag has no lines.
func (b Bag) IsEmpty() bool {
	return len(b.Items) == 0
}
