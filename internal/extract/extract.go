package extract

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Prefixes lists the recognized URL candidate prefixes. Matching is exact and
// case-sensitive. "tiktok" covers share links pasted without a scheme.
var Prefixes = []string{"https:", "tiktok"}

// IsCandidate reports whether s starts with one of Prefixes.
func IsCandidate(s string) bool {
	for _, p := range Prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Text converts an arbitrary cell value into its textual form. It never
// panics; nil converts to the empty string.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(f)
}

// Set is an unordered collection of URL candidates keyed by exact string.
type Set map[string]struct{}

// NewSet returns an empty Set.
func NewSet() Set { return Set{} }

// Add inserts s; duplicates are no-ops. It reports whether s was new.
func (s Set) Add(v string) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

// Has reports exact membership.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of unique entries.
func (s Set) Len() int { return len(s) }

// Merge adds every member of other into s.
func (s Set) Merge(other Set) {
	for v := range other {
		s[v] = struct{}{}
	}
}

// Sorted returns the members ordered by ascending character length, with
// equal-length entries ordered lexicographically.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	SortByLength(out)
	return out
}

// SortByLength orders urls in place by character count, then lexicographically.
func SortByLength(urls []string) {
	sort.Slice(urls, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(urls[i]), utf8.RuneCountInString(urls[j])
		if li != lj {
			return li < lj
		}
		return urls[i] < urls[j]
	})
}

// CollectTexts adds every candidate among values to dst after coercing each
// value to text. Empty values are skipped.
func CollectTexts(dst Set, values []any) {
	for _, v := range values {
		s := Text(v)
		if s == "" {
			continue
		}
		if IsCandidate(s) {
			dst.Add(s)
		}
	}
}

// CollectTokens splits each paragraph on whitespace and adds every candidate
// token to dst.
func CollectTokens(dst Set, paragraphs []string) {
	for _, p := range paragraphs {
		for _, tok := range strings.Fields(p) {
			if IsCandidate(tok) {
				dst.Add(tok)
			}
		}
	}
}
