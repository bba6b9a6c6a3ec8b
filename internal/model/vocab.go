package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Vocabulary is the fixed mapping between model output indices and food
// labels. It is built once at startup and read-only afterwards.
type Vocabulary struct {
	labels []string
}

// NewVocabulary inverts a label -> class index map. The map must cover
// exactly 0..N-1 with no duplicates, so the inverse lookup used at inference
// time is total.
func NewVocabulary(labelToIndex map[string]int) (*Vocabulary, error) {
	if len(labelToIndex) == 0 {
		return nil, fmt.Errorf("label map is empty")
	}

	labels := make([]string, len(labelToIndex))
	seen := make([]bool, len(labelToIndex))
	for label, idx := range labelToIndex {
		if idx < 0 || idx >= len(labels) {
			return nil, fmt.Errorf("label %q has index %d outside 0..%d", label, idx, len(labels)-1)
		}
		if seen[idx] {
			return nil, fmt.Errorf("label map assigns index %d twice", idx)
		}
		seen[idx] = true
		labels[idx] = label
	}

	return &Vocabulary{labels: labels}, nil
}

// LoadVocabulary reads a label_map.json produced by training: a JSON object
// mapping label -> class index.
func LoadVocabulary(path string) (*Vocabulary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read label map: %w", err)
	}

	var labelToIndex map[string]int
	if err := json.Unmarshal(raw, &labelToIndex); err != nil {
		return nil, fmt.Errorf("failed to parse label map: %w", err)
	}

	vocab, err := NewVocabulary(labelToIndex)
	if err != nil {
		return nil, fmt.Errorf("invalid label map %s: %w", path, err)
	}
	return vocab, nil
}

func (v *Vocabulary) Label(i int) string {
	return v.labels[i]
}

func (v *Vocabulary) Size() int {
	return len(v.labels)
}
