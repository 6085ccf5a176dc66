package snapshot

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/goccy/go-json"

	"github.com/jonathan/career-pathways/internal/types"
)

// vectorArg is the bind value for an embedding column; empty vectors are
// stored as NULL.
func vectorArg(vec []float32) any {
	if len(vec) == 0 {
		return nil
	}
	return encodeVector(vec)
}

// encodeVector packs an embedding as little-endian float32s.
func encodeVector(vec []float32) []byte {
	if len(vec) == 0 {
		return nil
	}
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(buf []byte) ([]float32, error) {
	if len(buf) == 0 {
		return nil, nil
	}
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("snapshot: embedding blob of %d bytes is not a float32 vector", len(buf))
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return vec, nil
}

func encodeSkills(raw types.RawSkills) (string, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return "", fmt.Errorf("snapshot: encode skills: %w", err)
	}
	return string(data), nil
}

func decodeSkills(text string) (types.RawSkills, error) {
	var raw types.RawSkills
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return raw, fmt.Errorf("snapshot: decode skills: %w", err)
	}
	return raw, nil
}
