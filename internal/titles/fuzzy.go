package titles

import (
	"sort"
	"strings"
	"unicode"
)

// TokenSortRatio scores two strings from 0 to 100 after lowercasing them,
// splitting on anything that is not a letter or digit, and sorting the
// tokens. The score is the normalized indel similarity of the rebuilt
// strings: 100 * 2 * LCS / (len(a) + len(b)).
func TokenSortRatio(a, b string) float64 {
	sa, sb := []rune(sortedTokens(a)), []rune(sortedTokens(b))
	total := len(sa) + len(sb)
	if total == 0 {
		return 100
	}
	return 100 * 2 * float64(lcsLength(sa, sb)) / float64(total)
}

func sortedTokens(s string) string {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// lcsLength is the longest common subsequence length, in two rows of memory.
func lcsLength(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
