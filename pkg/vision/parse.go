package vision

import (
	"encoding/json"
	"strings"

	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
)

// parseIdentification converts raw model output into an ItemIdentification.
// Models sometimes wrap JSON in markdown fences or prose despite the prompt,
// so fences are stripped and the outermost object is extracted before
// unmarshaling. Confidence is clamped into [0,1].
func parseIdentification(text string) (domain.ItemIdentification, error) {
	cleaned := stripFences(text)

	var item domain.ItemIdentification
	if err := json.Unmarshal([]byte(cleaned), &item); err != nil {
		return domain.ItemIdentification{}, &ParseError{Raw: text, Err: err}
	}

	if item.Confidence < 0 {
		item.Confidence = 0
	}
	if item.Confidence > 1 {
		item.Confidence = 1
	}
	if item.Attributes == nil {
		item.Attributes = map[string]string{}
	}
	if item.SpecialAttributes == nil {
		item.SpecialAttributes = []string{}
	}

	return item, nil
}

// stripFences removes markdown code fences and any prose around the
// outermost JSON object.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}
	return text
}
