package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultSize is the standard page size when one is not provided.
	DefaultSize = 20
	// MaxSize caps how many rows any page query can request.
	MaxSize = 100
)

// Params holds page/size pagination inputs from controllers or services.
// The remote commerce API counts pages from zero.
type Params struct {
	Page int
	Size int
}

// Normalize clamps the parameters onto the supported range.
func (p Params) Normalize() Params {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Offset converts the page/size pair into a row offset for local queries.
func (p Params) Offset() int {
	n := p.Normalize()
	return n.Page * n.Size
}

// FromQuery parses page/size query parameters, tolerating absent or
// malformed values by falling back to the defaults.
func FromQuery(values url.Values) Params {
	p := Params{}
	if raw := values.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			p.Page = page
		}
	}
	if raw := values.Get("size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil {
			p.Size = size
		}
	}
	return p.Normalize()
}

// Apply encodes the parameters onto a query string.
func (p Params) Apply(values url.Values) url.Values {
	n := p.Normalize()
	values.Set("page", strconv.Itoa(n.Page))
	values.Set("size", strconv.Itoa(n.Size))
	return values
}
