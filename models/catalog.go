package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateOffering is returned when two offerings share an identifier
	ErrDuplicateOffering = errors.New("duplicate offering id")
	// ErrEmptyOfferingID is returned when an offering has no identifier
	ErrEmptyOfferingID = errors.New("offering id is required")
)

// Catalog is the fixed table of offerings, keyed by identifier.
// Declaration order is kept for display; lookups go through the map.
type Catalog struct {
	order     []string
	offerings map[string]Offering
}

// NewCatalog builds a Catalog from offerings in declaration order
func NewCatalog(offerings []Offering) (Catalog, error) {
	c := Catalog{
		order:     make([]string, 0, len(offerings)),
		offerings: make(map[string]Offering, len(offerings)),
	}
	for _, o := range offerings {
		id := strings.TrimSpace(o.ID)
		if id == "" {
			return Catalog{}, fmt.Errorf("%w (name=%q)", ErrEmptyOfferingID, o.Name)
		}
		if _, exists := c.offerings[id]; exists {
			return Catalog{}, fmt.Errorf("%w: %s", ErrDuplicateOffering, id)
		}
		o.ID = id
		c.order = append(c.order, id)
		c.offerings[id] = o
	}
	return c, nil
}

// Get looks up an offering by identifier
func (c Catalog) Get(id string) (Offering, bool) {
	o, ok := c.offerings[id]
	return o, ok
}

// Has reports whether id is a known offering
func (c Catalog) Has(id string) bool {
	_, ok := c.offerings[id]
	return ok
}

// IDs returns identifiers in declaration order
func (c Catalog) IDs() []string {
	ids := make([]string, len(c.order))
	copy(ids, c.order)
	return ids
}

// Offerings returns all offerings in declaration order
func (c Catalog) Offerings() []Offering {
	out := make([]Offering, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.offerings[id])
	}
	return out
}

// Len returns the number of offerings
func (c Catalog) Len() int {
	return len(c.order)
}
