package domain

import "sort"

// CartLine is one product's entry in the cart. Quantity is always >= 1; a
// line whose quantity would drop to zero is removed instead of kept.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Subtotal returns price x quantity for this line.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Cart maps product ID to its cart line, so there is at most one line per
// product. Carts are values: Add and Remove never mutate the receiver, they
// return a new Cart, which keeps a snapshot taken at checkout time insulated
// from later mutations.
type Cart map[int64]CartLine

// NewCart returns an empty cart.
func NewCart() Cart {
	return Cart{}
}

// Add inserts a line with quantity 1 for an unseen product, or increments
// the existing line's quantity by 1. Whether the product actually exists in
// the catalog is the caller's concern.
func (c Cart) Add(p Product) Cart {
	next := c.clone()
	if line, ok := next[p.ID]; ok {
		line.Quantity++
		next[p.ID] = line
		return next
	}
	next[p.ID] = CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
	}
	return next
}

// Remove drops the line for productID entirely. Removing an absent product
// is a no-op and returns the receiver unchanged.
func (c Cart) Remove(productID int64) Cart {
	if _, ok := c[productID]; !ok {
		return c
	}
	next := c.clone()
	delete(next, productID)
	return next
}

// ItemCount is the sum of all line quantities.
func (c Cart) ItemCount() int {
	count := 0
	for _, line := range c {
		count += line.Quantity
	}
	return count
}

// Total is the sum of price x quantity over all lines.
func (c Cart) Total() float64 {
	total := 0.0
	for _, line := range c {
		total += line.Subtotal()
	}
	return total
}

// Empty reports whether the cart has no lines.
func (c Cart) Empty() bool {
	return len(c) == 0
}

// Lines returns the cart lines ordered by product ID for stable output.
func (c Cart) Lines() []CartLine {
	lines := make([]CartLine, 0, len(c))
	for _, line := range c {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID < lines[j].ProductID
	})
	return lines
}

// CartFromLines rebuilds a cart from a line list, e.g. after loading it from
// the session store. Lines for the same product collapse into one.
func CartFromLines(lines []CartLine) Cart {
	c := make(Cart, len(lines))
	for _, line := range lines {
		if existing, ok := c[line.ProductID]; ok {
			existing.Quantity += line.Quantity
			c[line.ProductID] = existing
			continue
		}
		c[line.ProductID] = line
	}
	return c
}

func (c Cart) clone() Cart {
	next := make(Cart, len(c)+1)
	for id, line := range c {
		next[id] = line
	}
	return next
}
