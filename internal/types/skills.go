// Package types provides type definitions for structured data used throughout the career recommendation engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// SkillsKind tags which shape a RawSkills value arrived in.
type SkillsKind int

const (
	// SkillsAbsent means the provider supplied no skills (null or missing field).
	SkillsAbsent SkillsKind = iota
	// SkillsList means the provider supplied a native sequence of strings.
	SkillsList
	// SkillsText means the provider supplied a single string: JSON-encoded,
	// literal-sequence encoded ("['Python','SQL']"), or comma-delimited.
	SkillsText
)

// RawSkills is a skills field of unknown shape as supplied by a profile or
// corpus provider. It is resolved into canonical tokens by skills.Normalize.
type RawSkills struct {
	Kind SkillsKind
	List []string
	Text string
}

// SkillsFromList wraps a native sequence.
func SkillsFromList(list ...string) RawSkills {
	return RawSkills{Kind: SkillsList, List: list}
}

// SkillsFromText wraps an encoded or delimited string.
func SkillsFromText(text string) RawSkills {
	return RawSkills{Kind: SkillsText, Text: text}
}

// IsAbsent reports whether no skills were supplied at all.
func (r RawSkills) IsAbsent() bool {
	return r.Kind == SkillsAbsent
}

// UnmarshalJSON accepts an array (of strings or scalars), a string, or null.
func (r *RawSkills) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = RawSkills{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return fmt.Errorf("failed to decode skills string: %w", err)
		}
		*r = SkillsFromText(text)
		return nil
	case '[':
		var items []any
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("failed to decode skills array: %w", err)
		}
		list := make([]string, 0, len(items))
		for _, item := range items {
			switch v := item.(type) {
			case nil:
				continue
			case string:
				list = append(list, v)
			default:
				list = append(list, fmt.Sprint(v))
			}
		}
		*r = SkillsFromList(list...)
		return nil
	default:
		return fmt.Errorf("unsupported skills value: %s", string(trimmed))
	}
}

// MarshalJSON writes lists as arrays, text as a string and absent skills as null.
func (r RawSkills) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case SkillsList:
		if r.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(r.List)
	case SkillsText:
		return json.Marshal(r.Text)
	default:
		return []byte("null"), nil
	}
}
