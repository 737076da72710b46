package domain

// Product is a storefront catalog entry. Products are always read from the
// upstream API and are never created or edited locally.
type Product struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url,omitempty"`
}
