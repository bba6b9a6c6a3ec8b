package model

import (
	"fmt"
	"sort"
)

// TopK returns the k highest-probability classes in descending order. Ties
// are broken by ascending vocabulary index, so identical inputs always
// produce the same ordering.
func TopK(probs []float32, vocab *Vocabulary, k int) ([]PredictionItem, error) {
	if len(probs) != vocab.Size() {
		return nil, fmt.Errorf("probability vector has %d entries, vocabulary has %d", len(probs), vocab.Size())
	}

	indices := make([]int, len(probs))
	for i := range indices {
		indices[i] = i
	}
	sort.Slice(indices, func(a, b int) bool {
		if probs[indices[a]] != probs[indices[b]] {
			return probs[indices[a]] > probs[indices[b]]
		}
		return indices[a] < indices[b]
	})

	if k > len(indices) {
		k = len(indices)
	}

	items := make([]PredictionItem, 0, k)
	for _, idx := range indices[:k] {
		items = append(items, PredictionItem{
			Label:      vocab.Label(idx),
			Confidence: probs[idx],
		})
	}
	return items, nil
}
