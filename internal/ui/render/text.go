package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const ellipsisRune = '…'

// asciiCellWidths precomputes terminal cell widths for the ASCII range, which
// covers almost every rune in archive listings.
var asciiCellWidths = func() [128]byte {
	var widths [128]byte
	for i := range widths {
		w := runewidth.RuneWidth(rune(i))
		if w < 0 {
			w = 0
		}
		widths[i] = byte(w)
	}
	return widths
}()

// cellWidth returns the number of terminal cells ru occupies. Non-ASCII
// widths are memoized per renderer; the renderer only runs on the event loop
// goroutine, so the map needs no lock.
func (r *Renderer) cellWidth(ru rune) int {
	if ru >= 0 && ru < 128 {
		return int(asciiCellWidths[ru])
	}
	if w, ok := r.wideWidths[ru]; ok {
		return w
	}
	w := runewidth.RuneWidth(ru)
	if w < 0 {
		w = 0
	}
	r.wideWidths[ru] = w
	return w
}

// textWidth returns the cell width of text as a whole.
func (r *Renderer) textWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cellWidth(ru)
	}
	return width
}

// clipToWidth shortens text to at most maxWidth cells, marking the cut with a
// trailing ellipsis.
func (r *Renderer) clipToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if r.textWidth(text) <= maxWidth {
		return text
	}

	ellipsisWidth := r.cellWidth(ellipsisRune)
	if ellipsisWidth <= 0 {
		ellipsisWidth = 1
	}
	if maxWidth <= ellipsisWidth {
		return string(ellipsisRune)
	}

	budget := maxWidth - ellipsisWidth
	var b strings.Builder
	used := 0
	for _, ru := range text {
		w := r.cellWidth(ru)
		if used+w > budget {
			break
		}
		b.WriteRune(ru)
		used += w
	}
	b.WriteRune(ellipsisRune)
	return b.String()
}

// drawLine writes text at (startX, y), clipped to maxWidth cells. Zero-width
// runes attach to the preceding cell as combining marks. Returns the column
// after the last cell written.
func (r *Renderer) drawLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	var main rune
	var marks []rune
	pending := false

	flush := func() {
		if !pending {
			return
		}
		r.screen.SetContent(x, y, main, marks, style)
		x += r.cellWidth(main)
		marks = nil
		pending = false
	}

	for _, ru := range text {
		if pending && r.cellWidth(ru) == 0 {
			marks = append(marks, ru)
			continue
		}
		flush()
		if x-startX >= maxWidth {
			return x
		}
		main = ru
		pending = true
	}
	flush()
	return x
}

// drawCell writes one rune at (x, y) and blank-fills the extra columns of
// wide runes so stale cells cannot show through. Returns the next column.
func (r *Renderer) drawCell(x, y, maxX int, ru rune, style tcell.Style) int {
	if x >= maxX {
		return x
	}

	width := r.cellWidth(ru)
	if width <= 0 {
		width = 1
	}

	r.screen.SetContent(x, y, ru, nil, style)
	for w := 1; w < width && x+w < maxX; w++ {
		r.screen.SetContent(x+w, y, ' ', nil, style)
	}
	return x + width
}
