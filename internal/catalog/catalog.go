// Package catalog holds the static tag → product mapping the scanner
// resolves against. It is loaded once at startup and never mutated
// afterwards, so lookups need no locking.
package catalog

// Product describes one scannable item: the display name and the unit
// price in rupees.
type Product struct {
	Name  string
	Price float64
}

// Catalog maps an RFID tag to its product descriptor. Read-only after
// construction.
type Catalog struct {
	products map[string]Product
}

// New builds a catalog from the given tag → product map. The map is
// copied so the caller cannot mutate the catalog afterwards.
func New(products map[string]Product) *Catalog {
	m := make(map[string]Product, len(products))
	for tag, p := range products {
		m[tag] = p
	}
	return &Catalog{products: m}
}

// Lookup resolves a tag to its product descriptor.
func (c *Catalog) Lookup(tag string) (Product, bool) {
	p, ok := c.products[tag]
	return p, ok
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}
