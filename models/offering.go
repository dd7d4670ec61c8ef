package models

// Theme holds the colors used to paint an offering on the poster
type Theme struct {
	Background string `json:"background" yaml:"background"` // Card tint (CSS color)
	Accent     string `json:"accent" yaml:"accent"`         // Heading color (CSS color)
	Gradient   string `json:"gradient" yaml:"gradient"`     // Radial tint used by the poster background
}

// TopicSection is one titled group of topics inside a course outline
type TopicSection struct {
	Title  string   `json:"title" yaml:"title"`
	Topics []string `json:"topics" yaml:"topics"`
}

// Offering represents a single purchasable course
type Offering struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Price         string         `json:"price" yaml:"price"`                 // Formatted, e.g. "1,459฿"
	OriginalPrice string         `json:"originalPrice" yaml:"originalPrice"` // Struck-through price
	Theme         Theme          `json:"theme" yaml:"theme"`
	Topics        []TopicSection `json:"topics" yaml:"topics"`
	LogoURL       string         `json:"logoUrl" yaml:"logoUrl"`
}

// TopicCount returns the number of topics across all sections
func (o Offering) TopicCount() int {
	total := 0
	for _, section := range o.Topics {
		total += len(section.Topics)
	}
	return total
}
