package browse

import (
	"strings"
	"unicode"

	"github.com/kk-code-lab/rarc/internal/archive"
)

// Children returns the direct children of folder, in input order. A folder's
// own directory marker is not a child of itself; deeper descendants are
// reachable only through their intermediate folders.
func Children(entries []archive.Entry, folder string) []archive.Entry {
	prefix := strings.Trim(folder, "/")

	var out []archive.Entry
	for _, e := range entries {
		p := strings.TrimSuffix(e.Path, "/")
		if p == "" {
			continue
		}
		if prefix == "" {
			if !strings.Contains(p, "/") {
				out = append(out, e)
			}
			continue
		}
		if p == prefix || !strings.HasPrefix(p, prefix+"/") {
			continue
		}
		if rest := p[len(prefix)+1:]; !strings.Contains(rest, "/") {
			out = append(out, e)
		}
	}
	return out
}

// FilterEntries keeps entries whose name matches every whitespace-separated
// token of query. An empty query keeps everything.
func FilterEntries(entries []archive.Entry, query string) []archive.Entry {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return entries
	}

	out := entries[:0:0]
	for _, e := range entries {
		name := e.Name()
		keep := true
		for _, token := range tokens {
			if !MatchName(token, name) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, e)
		}
	}
	return out
}

// MatchName reports whether pattern's runes appear in name in order.
// Matching is smart-case: an all-lowercase pattern ignores case, a pattern
// with any uppercase rune is matched exactly.
func MatchName(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	fold := !patternHasUppercase(pattern)

	runes := []rune(pattern)
	i := 0
	for _, r := range name {
		want := runes[i]
		if fold {
			r = unicode.ToLower(r)
			want = unicode.ToLower(want)
		}
		if r == want {
			i++
			if i == len(runes) {
				return true
			}
		}
	}
	return false
}

func patternHasUppercase(pattern string) bool {
	for _, r := range pattern {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
