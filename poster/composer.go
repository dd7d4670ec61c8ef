// Package poster computes everything the promo poster shows for a selection:
// the total price, the background gradient and the per-course column layout.
// All functions are pure.
package poster

import (
	"fmt"
	"strconv"
	"strings"

	"course-promo/models"
)

// ColumnThreshold is the topic count above which an offering is laid out in two columns
const ColumnThreshold = 35

// fadeStop is where each per-offering highlight becomes transparent
const fadeStop = 60

var positions = [8]string{
	"circle at 20% 20%",
	"circle at 80% 80%",
	"circle at 80% 20%",
	"circle at 20% 80%",
	"circle at 50% 10%",
	"circle at 50% 90%",
	"circle at 10% 50%",
	"circle at 90% 50%",
}

// DefaultGradient returns the background used when no offering contributes a tint:
// teal from the top right, purple from the bottom left.
func DefaultGradient() models.Gradient {
	return models.Gradient{
		Layers: []models.GradientLayer{
			{Position: "circle at top right", Color: "rgba(0, 128, 128, 0.2)", TransparentAt: 40},
			{Position: "circle at bottom left", Color: "rgba(128, 0, 128, 0.2)", TransparentAt: 50},
		},
		IsDefault: true,
	}
}

// ParsePrice keeps only the digits of a formatted price and parses them.
// Anything that does not yield an integer counts as 0.
func ParsePrice(price string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, price)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// TotalPrice sums the parsed prices of the selected offerings.
// Unknown identifiers and malformed prices contribute 0.
func TotalPrice(selection []string, catalog models.Catalog) int {
	total := 0
	for _, id := range selection {
		o, ok := catalog.Get(id)
		if !ok {
			continue
		}
		total += ParsePrice(o.Price)
	}
	return total
}

// BackgroundGradient assigns each selected offering's tint to a position picked by
// its index in the selection (cycling through eight positions). Entries without a
// tint are skipped but still consume their position.
func BackgroundGradient(selection []string, catalog models.Catalog) models.Gradient {
	if len(selection) == 0 {
		return DefaultGradient()
	}

	layers := make([]models.GradientLayer, 0, len(selection))
	for i, id := range selection {
		o, ok := catalog.Get(id)
		if !ok || strings.TrimSpace(o.Theme.Gradient) == "" {
			continue
		}
		layers = append(layers, models.GradientLayer{
			Position:      positions[i%len(positions)],
			Color:         o.Theme.Gradient,
			TransparentAt: fadeStop,
		})
	}

	if len(layers) == 0 {
		return DefaultGradient()
	}
	return models.Gradient{Layers: layers}
}

// GradientCSS renders a gradient as a CSS background-image value
func GradientCSS(g models.Gradient) string {
	parts := make([]string, 0, len(g.Layers))
	for _, l := range g.Layers {
		parts = append(parts, fmt.Sprintf("radial-gradient(%s, %s, transparent %d%%)", l.Position, l.Color, l.TransparentAt))
	}
	return strings.Join(parts, ", ")
}

// ColumnCount returns 2 when the outline holds more than ColumnThreshold topics, else 1
func ColumnCount(topics []models.TopicSection) int {
	total := 0
	for _, section := range topics {
		total += len(section.Topics)
	}
	if total > ColumnThreshold {
		return 2
	}
	return 1
}

// PartitionColumns splits sections into columnCount contiguous runs of
// ceil(len/columnCount) sections. Sections are never split; trailing columns
// may come out empty.
func PartitionColumns(topics []models.TopicSection, columnCount int) [][]models.TopicSection {
	if columnCount < 1 {
		columnCount = 1
	}

	perColumn := (len(topics) + columnCount - 1) / columnCount
	columns := make([][]models.TopicSection, columnCount)
	for i := range columns {
		start := i * perColumn
		end := start + perColumn
		if start > len(topics) {
			start = len(topics)
		}
		if end > len(topics) {
			end = len(topics)
		}
		columns[i] = topics[start:end:end]
	}
	return columns
}

// Compose runs every poster computation for one selection
func Compose(selection []string, catalog models.Catalog) models.ComposedPoster {
	sel := make([]string, len(selection))
	copy(sel, selection)

	layouts := make([]models.OfferingLayout, 0, len(sel))
	for _, id := range sel {
		o, ok := catalog.Get(id)
		if !ok {
			continue
		}
		count := ColumnCount(o.Topics)
		layouts = append(layouts, models.OfferingLayout{
			Offering:    o,
			ColumnCount: count,
			Columns:     PartitionColumns(o.Topics, count),
		})
	}

	return models.ComposedPoster{
		Selection:  sel,
		TotalPrice: TotalPrice(sel, catalog),
		Background: BackgroundGradient(sel, catalog),
		Offerings:  layouts,
	}
}
