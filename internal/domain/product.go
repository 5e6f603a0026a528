package domain

// Product is a catalog entry. Products are immutable and sourced from the
// static catalog; prices are in major currency units (dollars).
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}
