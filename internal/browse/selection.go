package browse

import (
	"sort"

	"github.com/kk-code-lab/rarc/internal/archive"
)

// Selection tracks the selected entry paths plus the anchor index of the most
// recent non-range click. Indices are only meaningful against the list that
// was rendered when the click happened, so every mutating method takes that
// list and ignores clicks that no longer line up with it.
type Selection struct {
	selected map[string]struct{}
	anchor   int
}

// NewSelection returns an empty selection with no anchor.
func NewSelection() *Selection {
	return &Selection{selected: make(map[string]struct{}), anchor: -1}
}

// Clear empties the selection and resets the anchor.
func (s *Selection) Clear() {
	for p := range s.selected {
		delete(s.selected, p)
	}
	s.anchor = -1
}

// ClickEmpty handles a click on empty space below the list.
func (s *Selection) ClickEmpty() {
	s.Clear()
}

// ClickSimple replaces the selection with the clicked entry and moves the
// anchor to it.
func (s *Selection) ClickSimple(rendered []archive.Entry, path string, index int) {
	if !validClick(rendered, path, index) {
		return
	}
	s.Clear()
	s.selected[path] = struct{}{}
	s.anchor = index
}

// ClickToggle flips the clicked entry's membership. The anchor follows the
// click either way, so a later range selection starts from the last touched
// row rather than the original anchor.
func (s *Selection) ClickToggle(rendered []archive.Entry, path string, index int) {
	if !validClick(rendered, path, index) {
		return
	}
	if _, ok := s.selected[path]; ok {
		delete(s.selected, path)
	} else {
		s.selected[path] = struct{}{}
	}
	s.anchor = index
}

// ClickRange selects every row between the anchor and index inclusive. The
// anchor does not move, so repeated range clicks re-measure from the same
// origin. Without an anchor the range collapses to the clicked row. When
// preserveExisting is set the range joins the current selection instead of
// replacing it.
func (s *Selection) ClickRange(rendered []archive.Entry, index int, preserveExisting bool) {
	if index < 0 || index >= len(rendered) {
		return
	}
	anchor := s.anchor
	if anchor < 0 || anchor >= len(rendered) {
		anchor = index
	}

	lo, hi := anchor, index
	if lo > hi {
		lo, hi = hi, lo
	}
	if !preserveExisting {
		for p := range s.selected {
			delete(s.selected, p)
		}
	}
	for i := lo; i <= hi; i++ {
		s.selected[rendered[i].Path] = struct{}{}
	}
}

// Contains reports whether path is selected.
func (s *Selection) Contains(path string) bool {
	_, ok := s.selected[path]
	return ok
}

// Count returns the number of selected paths.
func (s *Selection) Count() int { return len(s.selected) }

// Anchor returns the anchor index, -1 when unset.
func (s *Selection) Anchor() int { return s.anchor }

// Paths returns the selected paths. The order is lexicographic, not the
// rendered order.
func (s *Selection) Paths() []string {
	paths := make([]string, 0, len(s.selected))
	for p := range s.selected {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func validClick(rendered []archive.Entry, path string, index int) bool {
	return index >= 0 && index < len(rendered) && rendered[index].Path == path
}
