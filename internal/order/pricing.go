package order

import "gadme-be/internal/cart"

// Pricing holds the deployment's flat charges in minor units.
type Pricing struct {
	Currency     string
	ShippingFee  int64
	FlatDiscount int64
}

// Totals applies the flat fee and discount to subtotal. The discount is
// capped so the total never goes below zero.
func (p Pricing) Totals(subtotal int64) (fee, discount, total int64) {
	fee = max(p.ShippingFee, 0)
	discount = min(max(p.FlatDiscount, 0), subtotal+fee)
	return fee, discount, subtotal + fee - discount
}

// snapshotItems copies every cart line into order items.
func snapshotItems(lines []cart.Line) ([]Item, int64) {
	items := make([]Item, 0, len(lines))
	var subtotal int64
	for _, l := range lines {
		it := Item{
			ProductID:    l.ProductID,
			Name:         l.Name,
			Image:        l.Image,
			Color:        l.Color,
			Qty:          l.Qty,
			UnitPrice:    l.Price,
			LineSubtotal: l.Subtotal(),
		}
		subtotal += it.LineSubtotal
		items = append(items, it)
	}
	return items, subtotal
}
