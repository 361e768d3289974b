package stock

import "github.com/gracebuffer/storefront/pkg/enums"

// QuantityState is the per-product selection state on the detail page.
// Tracked products clamp the quantity to the known stock; untracked
// products (drinks omit stock entirely) have no ceiling.
type QuantityState struct {
	Quantity int
	Stock    int
	Tracked  bool
}

// NewQuantityState seeds the selection state from the product's stock.
// A nil stock means the product is untracked.
func NewQuantityState(stock *int) QuantityState {
	if stock == nil {
		return QuantityState{}
	}
	s := *stock
	if s < 0 {
		s = 0
	}
	return QuantityState{Stock: s, Tracked: true}
}

// Increase bumps the quantity by one, stopping at the stock ceiling.
func (s QuantityState) Increase() QuantityState {
	if s.Tracked && s.Quantity >= s.Stock {
		return s
	}
	s.Quantity++
	return s
}

// Decrease drops the quantity by one, stopping at zero.
func (s QuantityState) Decrease() QuantityState {
	if s.Quantity <= 0 {
		return s
	}
	s.Quantity--
	return s
}

// Reset zeroes the selection, keeping the stock ceiling.
func (s QuantityState) Reset() QuantityState {
	s.Quantity = 0
	return s
}

// ControlState reports which detail-page controls are enabled.
type ControlState struct {
	IncreaseEnabled bool `json:"increaseEnabled"`
	DecreaseEnabled bool `json:"decreaseEnabled"`
	AddEnabled      bool `json:"addEnabled"`
}

// Controls derives the enabled flags from the current state. Add-to-cart
// requires a positive quantity, and for tracked products positive stock.
func (s QuantityState) Controls() ControlState {
	return ControlState{
		IncreaseEnabled: !s.Tracked || s.Quantity < s.Stock,
		DecreaseEnabled: s.Quantity > 0,
		AddEnabled:      s.Quantity > 0 && (!s.Tracked || s.Stock > 0),
	}
}

// Availability maps the tracked stock onto the display level. Untracked
// products always read as in stock.
func (s QuantityState) Availability() enums.Availability {
	if !s.Tracked {
		return enums.AvailabilityInStock
	}
	return enums.AvailabilityFor(s.Stock)
}
