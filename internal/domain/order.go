package domain

import "time"

// OrderLine is one product quantity entry inside an order.
// Lines are not independently addressable upstream; they live and die with
// their parent order.
type OrderLine struct {
	// ID is assigned locally, scoped to the containing order.
	// See Order.NextLineID for the assignment rule.
	ID int64 `json:"id"`

	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`

	// Price is a snapshot taken when the line was built. It is never
	// re-resolved from the catalog afterwards.
	Price float64 `json:"price"`

	Title    string `json:"title"`
	ImageURL string `json:"image_url,omitempty"`
}

// Subtotal returns the line's contribution to the order total.
func (l OrderLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Order represents a customer order (an upstream "cart").
type Order struct {
	ID     int64       `json:"id"`
	UserID int64       `json:"user_id"`
	Date   time.Time   `json:"date"`
	Lines  []OrderLine `json:"lines"`

	// Total is derived: the sum of Subtotal over all lines. It is
	// recomputed on every line mutation and never trusted from storage.
	Total float64 `json:"total"`
}

// RecomputeTotal recalculates Total from the current lines.
func (o *Order) RecomputeTotal() {
	var total float64
	for _, l := range o.Lines {
		total += l.Subtotal()
	}
	o.Total = total
}

// NextLineID returns the ID for the next line: max(existing)+1, or 1 for
// an empty order. IDs are monotonic per order, not globally unique.
func (o *Order) NextLineID() int64 {
	var max int64
	for _, l := range o.Lines {
		if l.ID > max {
			max = l.ID
		}
	}
	return max + 1
}

// LineIndex returns the index of the line with the given ID, or -1.
func (o *Order) LineIndex(lineID int64) int {
	for i, l := range o.Lines {
		if l.ID == lineID {
			return i
		}
	}
	return -1
}
