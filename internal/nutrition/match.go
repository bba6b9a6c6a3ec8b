package nutrition

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// DefaultThreshold is the minimum weighted-ratio score (0–100) a catalog
// entry must reach to count as a match.
const DefaultThreshold = 60

// Normalize converts a model label into the form scored against catalog
// search keys: underscores become spaces, lowercased, trimmed.
func Normalize(label string) string {
	return strings.TrimSpace(strings.ToLower(strings.ReplaceAll(label, "_", " ")))
}

// Match returns the catalog record most similar to label, or nil when no
// record scores at or above DefaultThreshold.
func (c *Catalog) Match(label string) *Record {
	return c.MatchThreshold(label, DefaultThreshold)
}

// MatchThreshold scores every search key with the fuzzywuzzy weighted ratio
// and picks the maximum. Equal scores keep the earliest record, so results
// are stable for a given dataset file.
func (c *Catalog) MatchThreshold(label string, threshold int) *Record {
	query := Normalize(label)
	if query == "" {
		return nil
	}

	best := -1
	bestScore := 0
	for i, key := range c.keys {
		score := fuzzy.WRatio(query, key)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	if best < 0 || bestScore < threshold {
		return nil
	}

	record := c.records[best]
	return &record
}
