package domain

// ProductSource records how a product entered the catalog.
type ProductSource string

const (
	SourceLocal   ProductSource = "local"
	SourceSourced ProductSource = "sourced"
)

type Product struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Price         float64       `json:"price"`
	OriginalPrice *float64      `json:"original_price,omitempty"`
	Category      string        `json:"category"`
	Image         string        `json:"image"`
	Rating        float64       `json:"rating"`
	Stock         int           `json:"stock"`
	Trending      bool          `json:"trending"`
	Source        ProductSource `json:"source"`
}
