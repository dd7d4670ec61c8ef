package models

// WebhookPayload is the Discord-compatible message sent as payload_json
type WebhookPayload struct {
	Content string  `json:"content"`
	Embeds  []Embed `json:"embeds"`
}

// Embed is a rich message block
type Embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []EmbedField `json:"fields"`
	Timestamp string       `json:"timestamp"`
	Footer    EmbedFooter  `json:"footer"`
	Image     EmbedImage   `json:"image"`
}

// EmbedField is a single name/value row of an embed
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// EmbedFooter is the footer line of an embed
type EmbedFooter struct {
	Text string `json:"text"`
}

// EmbedImage points at an attached file, e.g. "attachment://promo-poster.png"
type EmbedImage struct {
	URL string `json:"url"`
}
