package domain

// CartLine is a snapshot of a product taken when it was added to the cart.
// Later catalog changes do not reach back into existing lines.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
}

// NewCartLine copies the identifying fields of p into a line with quantity 1.
func NewCartLine(p Product) CartLine {
	return CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Category:  p.Category,
		Quantity:  1,
	}
}

func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}
