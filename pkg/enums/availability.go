package enums

// Availability buckets a product's remaining stock for display purposes.
type Availability string

const (
	AvailabilityOutOfStock Availability = "out_of_stock"
	AvailabilityLowStock   Availability = "low_stock"
	AvailabilityInStock    Availability = "in_stock"
)

// LowStockThreshold is the largest stock count still flagged as low.
const LowStockThreshold = 5

// AvailabilityFor maps a stock count onto its display bucket.
func AvailabilityFor(stock int) Availability {
	switch {
	case stock <= 0:
		return AvailabilityOutOfStock
	case stock <= LowStockThreshold:
		return AvailabilityLowStock
	default:
		return AvailabilityInStock
	}
}

// String implements fmt.Stringer.
func (a Availability) String() string {
	return string(a)
}
