package nutrition

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogOf(descriptions ...string) *Catalog {
	catalog := &Catalog{}
	for _, d := range descriptions {
		catalog.records = append(catalog.records, Record{Description: d})
		catalog.keys = append(catalog.keys, strings.ToLower(d))
	}
	return catalog
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "caesar salad", Normalize("caesar_salad"))
	assert.Equal(t, "hot dog", Normalize("  Hot_Dog "))
	assert.Equal(t, "miso soup", Normalize("miso soup"))
}

func TestMatchUnderscoreLabelAgainstLongerDescription(t *testing.T) {
	catalog := catalogOf(
		"Hamburger, single patty",
		"Caesar salad, with dressing",
		"Miso soup, prepared",
	)

	record := catalog.Match("caesar_salad")
	require.NotNil(t, record)
	assert.Equal(t, "Caesar salad, with dressing", record.Description)
}

func TestMatchExactDescription(t *testing.T) {
	catalog := catalogOf("Apple pie", "Beef stew")

	record := catalog.Match("apple_pie")
	require.NotNil(t, record)
	assert.Equal(t, "Apple pie", record.Description)
}

func TestMatchBelowThresholdReturnsNil(t *testing.T) {
	catalog := catalogOf("Chocolate cupcake with frosting")

	assert.Nil(t, catalog.Match("grilled_salmon"))
}

func TestMatchThresholdNeverExceeded(t *testing.T) {
	// A threshold above the scale returns nothing even for exact matches.
	catalog := catalogOf("Apple pie")

	assert.Nil(t, catalog.MatchThreshold("apple_pie", 101))
}

func TestMatchTieKeepsEarliestRecord(t *testing.T) {
	// Both records normalize to the same search key, so they score equally;
	// catalog order decides.
	catalog := catalogOf("Apple Pie", "APPLE PIE")

	record := catalog.Match("apple_pie")
	require.NotNil(t, record)
	assert.Equal(t, "Apple Pie", record.Description)
}

func TestMatchEmptyLabelReturnsNil(t *testing.T) {
	catalog := catalogOf("Apple pie")

	assert.Nil(t, catalog.Match("   "))
	assert.Nil(t, catalog.Match("_"))
}

func TestMatchReturnsCopy(t *testing.T) {
	catalog := catalogOf("Apple pie")

	record := catalog.Match("apple pie")
	require.NotNil(t, record)
	record.Description = "mutated"

	again := catalog.Match("apple pie")
	require.NotNil(t, again)
	assert.Equal(t, "Apple pie", again.Description)
}
