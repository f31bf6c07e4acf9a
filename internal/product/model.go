package product

import "github.com/google/uuid"

// Product is the catalog view used by the cart and checkout.
type Product struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image"`
	// Colors is the allowed set; empty means any color is accepted.
	Colors   []string `json:"colors"`
	Price    int64    `json:"price"`
	Stock    *int     `json:"stock,omitempty"`
	IsActive bool     `json:"is_active"`
}

// AllowsColor reports whether color may be chosen for this product.
func (p *Product) AllowsColor(color string) bool {
	if len(p.Colors) == 0 {
		return true
	}
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// Available returns the finite stock and true, or 0 and false when stock is
// not tracked.
func (p *Product) Available() (int, bool) {
	if p.Stock == nil {
		return 0, false
	}
	if *p.Stock < 0 {
		return 0, true
	}
	return *p.Stock, true
}
