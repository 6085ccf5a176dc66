package db

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/jonathan/career-pathways/internal/types"
)

// decodeSkills decodes a JSON/JSONB skills column. NULL yields absent skills;
// a JSON string is kept as text for the normalizer's fallback chain.
func decodeSkills(column string, data []byte) (types.RawSkills, error) {
	var raw types.RawSkills
	if len(data) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return raw, fmt.Errorf("failed to decode %s: %w", column, err)
	}
	return raw, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
