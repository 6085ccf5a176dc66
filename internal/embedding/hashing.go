package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultHashingDimensions matches the width of the stored course embeddings.
const DefaultHashingDimensions = 384

// HashingEncoder is a deterministic, offline encoder that projects word
// unigrams and bigrams into a fixed number of buckets with signed feature
// hashing and L2-normalizes the result. It needs no network and is used for
// tests, air-gapped runs and as the fallback backend.
type HashingEncoder struct {
	dims int
}

// NewHashingEncoder creates a hashing encoder; dims <= 0 selects
// DefaultHashingDimensions.
func NewHashingEncoder(dims int) *HashingEncoder {
	if dims <= 0 {
		dims = DefaultHashingDimensions
	}
	return &HashingEncoder{dims: dims}
}

func (h *HashingEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float64, h.dims)
	words := tokenize(text)
	for i, w := range words {
		h.add(vec, w, 1)
		if i > 0 {
			h.add(vec, words[i-1]+" "+w, 0.5)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	out := make([]float32, h.dims)
	if norm == 0 {
		return out, nil
	}
	norm = math.Sqrt(norm)
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out, nil
}

func (h *HashingEncoder) Dimensions() int { return h.dims }

func (h *HashingEncoder) Name() string { return fmt.Sprintf("hashing:%d", h.dims) }

func (h *HashingEncoder) add(vec []float64, feature string, weight float64) {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(feature))
	sum := hasher.Sum64()

	idx := int(sum % uint64(h.dims))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	vec[idx] += weight
}

// tokenize lowercases text and splits it on anything that is not a letter,
// digit, '+' or '#', so "C++" and "C#" survive as tokens.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
}
