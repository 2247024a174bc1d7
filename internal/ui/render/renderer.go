package render

import (
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rarc/internal/archive"
	"github.com/kk-code-lab/rarc/internal/textutil"
)

// NoticeKind classifies the transient status-bar notification.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeInfo
	NoticeSuccess
	NoticeError
)

// Notice is the latest notification shown in the status bar.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Frame is one render pass worth of view state. The application assembles it
// from the session plus its own cursor, scroll and notification state.
type Frame struct {
	ArchivePath   string
	Folder        string
	Entries       []archive.Entry
	Selected      func(path string) bool
	Cursor        int
	Scroll        int
	FolderCount   int
	FileCount     int
	SelectedCount int
	FilterQuery   string
	FilterFocus   bool
	Loading       bool
	CanGoBack     bool
	CanGoForward  bool
	Notice        Notice
}

// CrumbZone is the column span one breadcrumb segment occupies on the header
// row, with the folder a click on it navigates to.
type CrumbZone struct {
	StartX int
	EndX   int // exclusive
	Folder string
}

// ViewLayout reports where Render put things so the application can map mouse
// positions back to entries and breadcrumbs. CrumbZones is nil when the trail
// was squeezed and clicks cannot be mapped reliably.
type ViewLayout struct {
	CrumbZones []CrumbZone
	ListTop    int
	ListRows   int
}

const (
	headerRows     = 2 // breadcrumb row plus column captions
	statusRows     = 1
	entryIndent    = 3 // cursor marker, directory icon, gap
	columnGap      = 2
	crumbSeparator = " › "
	headerLead     = "rarc ‹ › "
)

// Renderer draws the whole screen from a Frame.
type Renderer struct {
	screen     tcell.Screen
	theme      ColorTheme
	wideWidths map[rune]int // memoized cell widths beyond ASCII
}

// NewRenderer creates a new renderer.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen:     screen,
		theme:      GetColorTheme(),
		wideWidths: make(map[rune]int),
	}
}

// ListRows returns how many entry rows fit on a screen of height h. The
// application uses it to clamp cursor and scroll.
func ListRows(h int) int {
	rows := h - headerRows - statusRows
	if rows < 0 {
		return 0
	}
	return rows
}

// Render draws the entire UI for one frame.
func (r *Renderer) Render(f *Frame) ViewLayout {
	r.screen.Clear()

	w, h := r.screen.Size()
	layout := ViewLayout{ListTop: headerRows, ListRows: ListRows(h)}

	if f.ArchivePath == "" {
		r.drawHome(w, h)
		r.drawStatusBar(f, w, h)
		r.screen.Show()
		return layout
	}

	layout.CrumbZones = r.drawHeader(f, w)
	r.drawColumnCaptions(w)
	r.drawEntryRows(f, w, h)
	r.drawStatusBar(f, w, h)

	r.screen.Show()
	return layout
}

// drawHeader renders the top bar: program name, back/forward indicators and
// the breadcrumb trail. Returns the clickable crumb spans, nil when squeezed.
func (r *Renderer) drawHeader(f *Frame, w int) []CrumbZone {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	mutedStyle := headerStyle.Foreground(r.theme.MutedFg)

	endX := r.drawLine(0, 0, w, "rarc ", headerStyle)

	backStyle := mutedStyle
	if f.CanGoBack {
		backStyle = headerStyle.Bold(true)
	}
	endX = r.drawCell(endX, 0, w, '‹', backStyle)
	endX = r.drawCell(endX, 0, w, ' ', headerStyle)

	forwardStyle := mutedStyle
	if f.CanGoForward {
		forwardStyle = headerStyle.Bold(true)
	}
	endX = r.drawCell(endX, 0, w, '›', forwardStyle)
	endX = r.drawCell(endX, 0, w, ' ', headerStyle)

	trail := r.breadcrumbTrail(f)
	zones := r.breadcrumbZones(f, w)
	if zones != nil {
		for i, label := range trail {
			if i > 0 {
				endX = r.drawLine(endX, 0, w-endX, crumbSeparator, mutedStyle)
			}
			style := headerStyle
			if i == len(trail)-1 {
				style = style.Bold(true)
			}
			endX = r.drawLine(endX, 0, w-endX, label, style)
		}
	} else if endX < w {
		// Trail does not fit: keep the end of the path visible. Clicks are
		// not mapped in this state.
		joined := strings.Join(trail, crumbSeparator)
		endX = r.drawLine(endX, 0, w-endX, r.fitTail(joined, w-endX), headerStyle)
	}

	for x := endX; x < w; x++ {
		r.screen.SetContent(x, 0, ' ', nil, headerStyle)
	}
	return zones
}

// breadcrumbTrail returns the sanitized header labels: the archive file name
// followed by one label per folder segment.
func (r *Renderer) breadcrumbTrail(f *Frame) []string {
	crumbs := archive.SplitCrumbs(f.Folder)
	trail := make([]string, 0, len(crumbs)+1)
	trail = append(trail, textutil.SanitizeText(filepath.Base(f.ArchivePath)))
	for _, c := range crumbs {
		trail = append(trail, textutil.SanitizeText(c.Label))
	}
	return trail
}

// breadcrumbZones computes the clickable span of every crumb. The first zone
// is the archive name and navigates to the root. Returns nil when the full
// trail does not fit the header row.
func (r *Renderer) breadcrumbZones(f *Frame, w int) []CrumbZone {
	trail := r.breadcrumbTrail(f)
	crumbs := archive.SplitCrumbs(f.Folder)

	zones := make([]CrumbZone, 0, len(trail))
	x := r.textWidth(headerLead)
	sepWidth := r.textWidth(crumbSeparator)

	for i, label := range trail {
		if i > 0 {
			x += sepWidth
		}
		labelWidth := r.textWidth(label)
		folder := ""
		if i > 0 {
			folder = crumbs[i-1].Folder
		}
		zones = append(zones, CrumbZone{StartX: x, EndX: x + labelWidth, Folder: folder})
		x += labelWidth
	}

	if x > w {
		return nil
	}
	return zones
}

// fitTail trims text from the left so its end fits within width.
func (r *Renderer) fitTail(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if r.textWidth(text) <= width {
		return text
	}

	ellipsisWidth := r.cellWidth(ellipsisRune)
	if ellipsisWidth <= 0 {
		ellipsisWidth = 1
	}
	if width <= ellipsisWidth {
		return string(ellipsisRune)
	}

	budget := width - ellipsisWidth
	runes := []rune(text)
	used := 0
	start := len(runes)
	for i := len(runes) - 1; i >= 0; i-- {
		w := r.cellWidth(runes[i])
		if used+w > budget {
			break
		}
		used += w
		start = i
	}

	return string(ellipsisRune) + string(runes[start:])
}

type columnWidths struct {
	name     int
	typ      int
	size     int
	modified int
}

// columnsForWidth decides which columns fit. Narrow terminals drop the type,
// then the modified, then the size column.
func columnsForWidth(w int) columnWidths {
	cols := columnWidths{}
	if w >= 48 {
		cols.size = 9
	}
	if w >= 68 {
		cols.modified = len(modifiedLayout)
	}
	if w >= 90 {
		cols.typ = 18
	}

	name := w - entryIndent
	if cols.typ > 0 {
		name -= columnGap + cols.typ
	}
	if cols.size > 0 {
		name -= columnGap + cols.size
	}
	if cols.modified > 0 {
		name -= columnGap + cols.modified
	}
	if name < 0 {
		name = 0
	}
	cols.name = name
	return cols
}

func (r *Renderer) drawColumnCaptions(w int) {
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.MutedFg)
	cols := columnsForWidth(w)

	for x := 0; x < w; x++ {
		r.screen.SetContent(x, 1, ' ', nil, style)
	}

	r.drawLine(entryIndent, 1, cols.name, "Name", style)
	if cols.typ > 0 {
		r.drawLine(r.typeColumnX(w, cols), 1, cols.typ, "Type", style)
	}
	if cols.size > 0 {
		caption := "Size"
		startX := r.sizeColumnX(w, cols) + cols.size - r.textWidth(caption)
		r.drawLine(startX, 1, cols.size, caption, style)
	}
	if cols.modified > 0 {
		r.drawLine(w-cols.modified, 1, cols.modified, "Modified", style)
	}
}

func (r *Renderer) typeColumnX(w int, cols columnWidths) int {
	return r.sizeColumnX(w, cols) - columnGap - cols.typ
}

func (r *Renderer) sizeColumnX(w int, cols columnWidths) int {
	x := w
	if cols.modified > 0 {
		x -= cols.modified + columnGap
	}
	return x - cols.size
}

// drawEntryRows renders the visible slice of the entry table.
func (r *Renderer) drawEntryRows(f *Frame, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background)
	cols := columnsForWidth(w)

	bottom := h - statusRows
	if len(f.Entries) == 0 {
		hint := "empty folder"
		if f.FilterQuery != "" {
			hint = "no matches"
		}
		if headerRows < bottom {
			r.drawLine(entryIndent, headerRows, w-entryIndent, hint, baseStyle.Foreground(r.theme.MutedFg))
		}
		return
	}

	end := f.Scroll + (bottom - headerRows)
	if end > len(f.Entries) {
		end = len(f.Entries)
	}

	y := headerRows
	for idx := f.Scroll; idx < end && y < bottom; idx++ {
		e := f.Entries[idx]
		isCursor := idx == f.Cursor
		isSelected := f.Selected != nil && f.Selected(e.Path)

		var rowStyle tcell.Style
		switch {
		case isSelected:
			rowStyle = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		case isCursor:
			rowStyle = tcell.StyleDefault.Background(r.theme.CursorBg).Foreground(r.theme.CursorFg)
		case e.IsDir:
			rowStyle = baseStyle.Foreground(r.theme.DirectoryFg)
		default:
			rowStyle = baseStyle.Foreground(r.theme.FileFg)
		}
		metaStyle := rowStyle
		if !isSelected && !isCursor {
			metaStyle = baseStyle.Foreground(r.theme.MutedFg)
		}

		// Fill background for the entire row to make layout math simpler
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, rowStyle)
		}

		marker := ' '
		if isCursor {
			marker = '▶'
		}
		icon := ' '
		if e.IsDir {
			icon = '/'
		}
		x := r.drawCell(0, y, w, marker, rowStyle)
		r.drawCell(x, y, w, icon, rowStyle)

		name := r.clipToWidth(textutil.SanitizeText(e.Name()), cols.name)
		r.drawLine(entryIndent, y, cols.name, name, rowStyle)

		if cols.typ > 0 {
			label := r.clipToWidth(e.TypeLabel, cols.typ)
			r.drawLine(r.typeColumnX(w, cols), y, cols.typ, label, metaStyle)
		}
		if cols.size > 0 && !e.IsDir {
			sizeText := FormatFileSize(e.Size)
			columnX := r.sizeColumnX(w, cols)
			startX := columnX + cols.size - r.textWidth(sizeText)
			if startX < columnX {
				startX = columnX
			}
			r.drawLine(startX, y, cols.size, sizeText, metaStyle)
		}
		if cols.modified > 0 {
			r.drawLine(w-cols.modified, y, cols.modified, formatModified(e.Modified), metaStyle)
		}

		y++
	}
}

// drawStatusBar renders the bottom row: counters and filter on the left, the
// busy indicator or the latest notification on the right.
func (r *Renderer) drawStatusBar(f *Frame, w, h int) {
	if h < 1 {
		return
	}
	y := h - 1
	statusStyle := tcell.StyleDefault.Background(r.theme.StatusBg).Foreground(r.theme.StatusFg)
	mutedStyle := statusStyle.Foreground(r.theme.MutedFg)

	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, statusStyle)
	}

	x := 0
	if f.ArchivePath != "" {
		x = r.drawLine(0, y, w, " "+formatCounts(f.FolderCount, f.FileCount, f.SelectedCount), statusStyle)
	} else {
		x = r.drawLine(0, y, w, " no archive open", mutedStyle)
	}

	if f.FilterFocus || f.FilterQuery != "" {
		x = r.drawLine(x, y, w-x, "  /"+textutil.SanitizeText(f.FilterQuery), statusStyle)
		if f.FilterFocus && x < w {
			cursorStyle := statusStyle.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
			x = r.drawCell(x, y, w, '█', cursorStyle)
		}
	}

	right := ""
	rightStyle := statusStyle
	switch {
	case f.Loading:
		right = "working…"
		rightStyle = mutedStyle
	case f.Notice.Text != "":
		right = textutil.SanitizeText(f.Notice.Text)
		switch f.Notice.Kind {
		case NoticeError:
			rightStyle = statusStyle.Foreground(r.theme.ErrorFg).Bold(true)
		case NoticeSuccess:
			rightStyle = statusStyle.Foreground(r.theme.SuccessFg)
		}
	}
	if right == "" {
		return
	}

	maxRight := w - x - columnGap
	if maxRight <= 0 {
		return
	}
	right = r.clipToWidth(right, maxRight)
	startX := w - 1 - r.textWidth(right)
	if startX < x+columnGap {
		startX = x + columnGap
	}
	r.drawLine(startX, y, w-startX, right, rightStyle)
}

// drawHome renders the hint screen shown before an archive is opened.
func (r *Renderer) drawHome(w, h int) {
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	mutedStyle := style.Foreground(r.theme.MutedFg)

	lines := []struct {
		text  string
		style tcell.Style
	}{
		{"rarc", style.Bold(true)},
		{"archive browser for the terminal", mutedStyle},
		{"", style},
		{"o       open an archive", style},
		{"q       quit", style},
	}

	startY := (h - len(lines)) / 2
	if startY < 1 {
		startY = 1
	}
	for i, line := range lines {
		y := startY + i
		if y >= h-1 {
			break
		}
		lineWidth := r.textWidth(line.text)
		x := (w - lineWidth) / 2
		if x < 0 {
			x = 0
		}
		r.drawLine(x, y, w-x, line.text, line.style)
	}
}
