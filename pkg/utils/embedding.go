package utils

import (
	"hash/fnv"
	"math"
	"strings"

	"github.com/pgvector/pgvector-go"
)

const embeddingDimensions = 1536

// TextToVector builds a deterministic hash-based vector fingerprint for a
// POI's name and description. Not a semantic embedding; good enough for
// the near-duplicate place lookup that feeds generation prompts.
func TextToVector(text string) pgvector.Vector {
	text = strings.ToLower(strings.TrimSpace(text))
	words := strings.Fields(text)

	vector := make([]float32, embeddingDimensions)
	for _, word := range words {
		hash := hashWord(word)
		for i := 0; i < embeddingDimensions; i++ {
			influence := math.Sin(float64(hash+uint32(i))) * 0.1
			vector[i] += float32(influence)
		}
	}

	magnitude := float32(0)
	for _, val := range vector {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))
	if magnitude > 0 {
		for i := range vector {
			vector[i] /= magnitude
		}
	}

	return pgvector.NewVector(vector)
}

func hashWord(word string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(word))
	return h.Sum32()
}
