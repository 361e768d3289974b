package enums

import (
	"fmt"
	"strings"
)

// ProductKind distinguishes the two storefront catalog categories. Stock
// gating only applies to pastries; drinks carry a sugar level instead.
type ProductKind string

const (
	ProductKindDrink  ProductKind = "drink"
	ProductKindPastry ProductKind = "pastry"
)

var validProductKinds = []ProductKind{ProductKindDrink, ProductKindPastry}

// String implements fmt.Stringer.
func (p ProductKind) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductKind.
func (p ProductKind) IsValid() bool {
	for _, candidate := range validProductKinds {
		if candidate == p {
			return true
		}
	}
	return false
}

// Opposite returns the other catalog category, used for suggestions.
func (p ProductKind) Opposite() ProductKind {
	if p == ProductKindDrink {
		return ProductKindPastry
	}
	return ProductKindDrink
}

// CategoryName is the remote API's category label for this kind.
func (p ProductKind) CategoryName() string {
	switch p {
	case ProductKindDrink:
		return "Drink"
	case ProductKindPastry:
		return "Pastry"
	}
	return ""
}

// ParseProductKind converts raw input into a ProductKind.
func ParseProductKind(value string) (ProductKind, error) {
	for _, candidate := range validProductKinds {
		if string(candidate) == strings.ToLower(value) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product kind %q", value)
}
