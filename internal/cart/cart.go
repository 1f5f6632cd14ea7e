package cart

// Line is one row of the cart: a distinct product tag and its
// accumulated quantity. Name and price are copied from the catalog when
// the line is first inserted and never re-resolved, so a later catalog
// edit does not change a line already in the cart.
type Line struct {
	Tag      string  `json:"tag"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price × quantity for this line.
func (l Line) Subtotal() float64 {
	return float64(l.Quantity) * l.Price
}

// Total sums the subtotals of the given lines.
func Total(lines []Line) float64 {
	total := 0.0
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
