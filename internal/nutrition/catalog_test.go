package nutrition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutrition.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeCSV(t, "description,calories,protein,fat,carbohydrates\n"+
		"Apple pie,237,1.9,11,34\n"+
		"Caesar salad with dressing,190,4.5,16.2,7.8\n")

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Equal(t, 2, catalog.Len())

	record := catalog.records[0]
	assert.Equal(t, "Apple pie", record.Description)
	require.NotNil(t, record.Calories)
	assert.Equal(t, 237.0, *record.Calories)
	require.NotNil(t, record.Protein)
	assert.Equal(t, 1.9, *record.Protein)

	assert.Equal(t, "apple pie", catalog.keys[0])
	assert.Equal(t, "caesar salad with dressing", catalog.keys[1])
}

func TestLoadCatalogAbsentValuesStayAbsent(t *testing.T) {
	path := writeCSV(t, "description,calories,protein,fat,carbohydrates\n"+
		"Mystery stew,,NaN,3.1,\n")

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Equal(t, 1, catalog.Len())

	record := catalog.records[0]
	assert.Nil(t, record.Calories)
	assert.Nil(t, record.Protein)
	assert.Nil(t, record.Carbohydrates)
	require.NotNil(t, record.Fat)
	assert.Equal(t, 3.1, *record.Fat)
}

func TestLoadCatalogColumnOrderDoesNotMatter(t *testing.T) {
	path := writeCSV(t, "calories,description\n410,Donut glazed\n")

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)

	record := catalog.records[0]
	assert.Equal(t, "Donut glazed", record.Description)
	require.NotNil(t, record.Calories)
	assert.Equal(t, 410.0, *record.Calories)
	assert.Nil(t, record.Protein)
}

func TestLoadCatalogRejectsMissingDescriptionColumn(t *testing.T) {
	path := writeCSV(t, "calories,protein\n100,2\n")

	_, err := LoadCatalog(path)
	assert.Error(t, err)
}

func TestLoadCatalogRejectsEmptyDataset(t *testing.T) {
	path := writeCSV(t, "description,calories\n")

	_, err := LoadCatalog(path)
	assert.Error(t, err)
}
