package browse

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kk-code-lab/rarc/internal/archive"
)

// collator compares entry paths locale-aware and case-insensitively. Not safe
// for concurrent use; all sorting happens on the session's goroutine.
var collator = collate.New(language.Und, collate.IgnoreCase)

// SortEntries orders entries for display: directories first, then by path.
// The sort is stable so equal keys keep their listing order, and its index
// space is what range selection operates over.
func SortEntries(entries []archive.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return collator.CompareString(entries[i].Path, entries[j].Path) < 0
	})
}
