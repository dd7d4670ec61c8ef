package models

// GradientLayer is one positioned radial gradient of the poster background
type GradientLayer struct {
	Position      string `json:"position"`      // e.g. "circle at 20% 20%"
	Color         string `json:"color"`         // CSS color of the highlight
	TransparentAt int    `json:"transparentAt"` // Radius percentage where the layer fades out
}

// Gradient describes the poster background as stacked radial gradients, in selection order
type Gradient struct {
	Layers    []GradientLayer `json:"layers"`
	IsDefault bool            `json:"isDefault"`
}

// OfferingLayout is a selected offering with its topic sections split into columns
type OfferingLayout struct {
	Offering    Offering         `json:"offering"`
	ColumnCount int              `json:"columnCount"`
	Columns     [][]TopicSection `json:"columns"`
}

// ComposedPoster is everything the poster template needs for one selection
type ComposedPoster struct {
	Selection  []string         `json:"selection"`
	TotalPrice int              `json:"totalPrice"`
	Background Gradient         `json:"background"`
	Offerings  []OfferingLayout `json:"offerings"`
}
