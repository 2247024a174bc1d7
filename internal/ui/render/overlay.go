package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rarc/internal/textutil"
)

// PromptView is a single-line text input overlay. Editing is append-only:
// typed runes extend the input and backspace removes the last one.
type PromptView struct {
	Title   string
	Input   string
	Problem string // validation message shown under the input
}

// ConfirmView asks a yes/no question.
type ConfirmView struct {
	Title    string
	Question string
}

// PickerItem is one row of a filesystem picker.
type PickerItem struct {
	Label string
	IsDir bool
}

// PickerView lists filesystem entries for choosing a file or directory.
type PickerView struct {
	Title  string
	Dir    string
	Items  []PickerItem
	Cursor int
	Scroll int
	Hint   string
}

const pickerChromeRows = 3 // title, directory line, bottom hint

// PickerRows returns how many item rows a picker can show on a screen of
// height h. The application uses it to clamp cursor and scroll.
func PickerRows(h int) int {
	rows := h - pickerChromeRows
	if rows < 0 {
		return 0
	}
	return rows
}

func (r *Renderer) overlayBase(w, h int) (tcell.Style, tcell.Style) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, baseStyle)
		}
	}
	titleStyle := baseStyle.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	return baseStyle, titleStyle
}

func (r *Renderer) drawOverlayTitle(title string, w int, titleStyle tcell.Style) {
	text := " " + title + " "
	start := 0
	if tw := r.textWidth(text); w > tw {
		start = (w - tw) / 2
	}
	r.drawLine(start, 0, w-start, text, titleStyle)
}

func (r *Renderer) drawOverlayFooter(hint string, w, h int, style tcell.Style) {
	if h < 2 {
		return
	}
	endX := r.drawLine(0, h-1, w, " "+hint, style)
	for x := endX; x < w; x++ {
		r.screen.SetContent(x, h-1, ' ', nil, style)
	}
}

// RenderPrompt draws a full-screen text prompt.
func (r *Renderer) RenderPrompt(v *PromptView) {
	r.screen.Clear()
	w, h := r.screen.Size()
	baseStyle, titleStyle := r.overlayBase(w, h)

	r.drawOverlayTitle(v.Title, w, titleStyle)

	if h > 2 {
		endX := r.drawLine(2, 2, w-2, "> "+textutil.SanitizeText(v.Input), baseStyle)
		if endX < w {
			cursorStyle := baseStyle.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
			r.drawCell(endX, 2, w, '█', cursorStyle)
		}
	}
	if v.Problem != "" && h > 4 {
		problem := r.clipToWidth(textutil.SanitizeText(v.Problem), w-2)
		r.drawLine(2, 4, w-2, problem, baseStyle.Foreground(r.theme.ErrorFg))
	}

	r.drawOverlayFooter("Enter confirm · Esc cancel", w, h, titleStyle)
	r.screen.Show()
}

// RenderConfirm draws a full-screen yes/no question.
func (r *Renderer) RenderConfirm(v *ConfirmView) {
	r.screen.Clear()
	w, h := r.screen.Size()
	baseStyle, titleStyle := r.overlayBase(w, h)

	r.drawOverlayTitle(v.Title, w, titleStyle)

	if h > 2 {
		question := r.clipToWidth(textutil.SanitizeText(v.Question), w-2)
		r.drawLine(2, 2, w-2, question, baseStyle)
	}

	r.drawOverlayFooter("y confirm · n or Esc cancel", w, h, titleStyle)
	r.screen.Show()
}

// RenderPicker draws a full-screen filesystem picker.
func (r *Renderer) RenderPicker(v *PickerView) {
	r.screen.Clear()
	w, h := r.screen.Size()
	baseStyle, titleStyle := r.overlayBase(w, h)
	mutedStyle := baseStyle.Foreground(r.theme.MutedFg)

	r.drawOverlayTitle(v.Title, w, titleStyle)
	if h > 1 {
		r.drawLine(1, 1, w-1, r.fitTail(textutil.SanitizeText(v.Dir), w-2), mutedStyle)
	}

	rows := PickerRows(h)
	listTop := 2
	if len(v.Items) == 0 && rows > 0 {
		r.drawLine(entryIndent, listTop, w-entryIndent, "nothing here", mutedStyle)
	}

	end := v.Scroll + rows
	if end > len(v.Items) {
		end = len(v.Items)
	}
	y := listTop
	for idx := v.Scroll; idx < end; idx++ {
		item := v.Items[idx]

		rowStyle := baseStyle
		if item.IsDir {
			rowStyle = baseStyle.Foreground(r.theme.DirectoryFg)
		}
		if idx == v.Cursor {
			rowStyle = tcell.StyleDefault.Background(r.theme.CursorBg).Foreground(r.theme.CursorFg)
			for x := 0; x < w; x++ {
				r.screen.SetContent(x, y, ' ', nil, rowStyle)
			}
		}

		marker := ' '
		if idx == v.Cursor {
			marker = '▶'
		}
		icon := ' '
		if item.IsDir {
			icon = '/'
		}
		x := r.drawCell(0, y, w, marker, rowStyle)
		r.drawCell(x, y, w, icon, rowStyle)

		label := r.clipToWidth(textutil.SanitizeText(item.Label), w-entryIndent)
		r.drawLine(entryIndent, y, w-entryIndent, label, rowStyle)
		y++
	}

	r.drawOverlayFooter(v.Hint, w, h, titleStyle)
	r.screen.Show()
}
