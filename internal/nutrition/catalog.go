package nutrition

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Record holds macronutrients per 100 g reference serving. A nil field means
// the source data has no value; it must stay nil rather than defaulting to
// zero, and serializes as JSON null.
type Record struct {
	Description   string   `json:"description"`
	Calories      *float64 `json:"calories"`
	Protein       *float64 `json:"protein"`
	Fat           *float64 `json:"fat"`
	Carbohydrates *float64 `json:"carbohydrates"`
}

// Catalog is the reference nutrition dataset, loaded once at startup with a
// precomputed lowercase search key per record. Read-only afterwards, so safe
// for concurrent lookups.
type Catalog struct {
	records []Record
	keys    []string
}

// LoadCatalog parses a CSV with a header naming at least "description";
// "calories", "protein", "fat" and "carbohydrates" columns are optional per
// row. Column order does not matter.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open nutrition dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read nutrition header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["description"]; !ok {
		return nil, fmt.Errorf("nutrition dataset %s has no description column", path)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read nutrition rows: %w", err)
	}

	catalog := &Catalog{
		records: make([]Record, 0, len(rows)),
		keys:    make([]string, 0, len(rows)),
	}
	for _, row := range rows {
		description := strings.TrimSpace(row[columns["description"]])
		if description == "" {
			continue
		}
		record := Record{
			Description:   description,
			Calories:      parseFloatColumn(row, columns, "calories"),
			Protein:       parseFloatColumn(row, columns, "protein"),
			Fat:           parseFloatColumn(row, columns, "fat"),
			Carbohydrates: parseFloatColumn(row, columns, "carbohydrates"),
		}
		catalog.records = append(catalog.records, record)
		catalog.keys = append(catalog.keys, strings.ToLower(description))
	}
	if len(catalog.records) == 0 {
		return nil, fmt.Errorf("nutrition dataset %s has no usable rows", path)
	}

	return catalog, nil
}

func parseFloatColumn(row []string, columns map[string]int, name string) *float64 {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return nil
	}
	value := strings.TrimSpace(row[idx])
	if value == "" || strings.EqualFold(value, "nan") {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func (c *Catalog) Len() int {
	return len(c.records)
}
