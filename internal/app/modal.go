package app

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rarc/internal/fsnav"
	"github.com/kk-code-lab/rarc/internal/ui/render"
)

// Modal overlays run nested event loops on the main goroutine: each owns the
// screen until the user confirms or cancels, then the browse view repaints on
// the next pass of the outer loop.

// textPrompt collects one line of input. validate runs on Enter; a rejection
// is shown under the input and keeps the prompt open.
func (app *Application) textPrompt(title, initial string, validate func(string) error) (string, bool) {
	view := render.PromptView{Title: title, Input: initial}
	for {
		app.renderer.RenderPrompt(&view)

		ev, ok := (<-app.eventCh).(*tcell.EventKey)
		if !ok {
			continue
		}
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return "", false
		case tcell.KeyEnter:
			if validate != nil {
				if err := validate(view.Input); err != nil {
					view.Problem = err.Error()
					continue
				}
			}
			return view.Input, true
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if view.Input != "" {
				runes := []rune(view.Input)
				view.Input = string(runes[:len(runes)-1])
			}
			view.Problem = ""
		case tcell.KeyRune:
			view.Input += string(ev.Rune())
			view.Problem = ""
		}
	}
}

// confirm asks a yes/no question and reports the answer.
func (app *Application) confirm(title, question string) bool {
	view := render.ConfirmView{Title: title, Question: question}
	for {
		app.renderer.RenderConfirm(&view)

		ev, ok := (<-app.eventCh).(*tcell.EventKey)
		if !ok {
			continue
		}
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'y', 'Y':
				return true
			case 'n', 'N':
				return false
			}
		}
	}
}

// pickerMode selects what a filesystem picker may return.
type pickerMode int

const (
	pickAny    pickerMode = iota // descend into folders, pick files or folders
	pickFolder                   // folders only, for extraction destinations
)

const (
	pickAnyHint    = "Enter open/pick · c pick entry · u up · . hidden · Esc cancel"
	pickFolderHint = "Enter open · c choose this folder · u up · . hidden · Esc cancel"
)

// pickPath browses the local filesystem starting at startDir and returns the
// chosen path. A successful pick also moves startDir, so the next picker
// opens where the user left off.
func (app *Application) pickPath(title, startDir string, mode pickerMode) (string, bool) {
	dir := startDir
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	showHidden := false
	hint := pickAnyHint
	if mode == pickFolder {
		hint = pickFolderHint
	}

	entries, err := app.listPicker(dir, showHidden, mode)
	if err != nil {
		app.log.Warn().Err(err).Str("dir", dir).Msg("picker cannot read directory")
		app.setNotice(render.NoticeError, fmt.Sprintf("Cannot read %s", dir))
		return "", false
	}
	cursor, scroll := 0, 0

	reload := func(newDir string) {
		next, err := app.listPicker(newDir, showHidden, mode)
		if err != nil {
			app.log.Warn().Err(err).Str("dir", newDir).Msg("picker cannot read directory")
			return
		}
		dir = newDir
		entries = next
		cursor, scroll = 0, 0
	}

	goUp := func() {
		if parent := filepath.Dir(dir); parent != dir {
			reload(parent)
		}
	}

	finish := func(path string) (string, bool) {
		app.startDir = dir
		return path, true
	}

	for {
		_, h := app.screen.Size()
		rows := render.PickerRows(h)
		if cursor >= len(entries) {
			cursor = len(entries) - 1
		}
		if cursor < 0 {
			cursor = 0
		}
		if rows > 0 {
			if cursor < scroll {
				scroll = cursor
			}
			if cursor >= scroll+rows {
				scroll = cursor - rows + 1
			}
		}
		if scroll < 0 {
			scroll = 0
		}

		app.renderer.RenderPicker(&render.PickerView{
			Title:  title,
			Dir:    dir,
			Items:  pickerItems(entries),
			Cursor: cursor,
			Scroll: scroll,
			Hint:   hint,
		})

		ev, ok := (<-app.eventCh).(*tcell.EventKey)
		if !ok {
			continue
		}
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return "", false
		case tcell.KeyUp:
			cursor--
		case tcell.KeyDown:
			cursor++
		case tcell.KeyPgUp:
			cursor -= rows
		case tcell.KeyPgDn:
			cursor += rows
		case tcell.KeyEnter:
			if cursor < len(entries) {
				e := entries[cursor]
				if e.IsDir {
					reload(e.FullPath)
				} else if mode == pickAny {
					return finish(e.FullPath)
				}
			}
		case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
			goUp()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'u':
				goUp()
			case '.':
				showHidden = !showHidden
				reload(dir)
			case 'c':
				if mode == pickFolder {
					return finish(dir)
				}
				if cursor < len(entries) {
					return finish(entries[cursor].FullPath)
				}
			}
		}
	}
}

func (app *Application) listPicker(dir string, showHidden bool, mode pickerMode) ([]fsnav.Entry, error) {
	if mode == pickFolder {
		return fsnav.ListDirs(dir, showHidden)
	}
	return fsnav.List(dir, showHidden)
}

func pickerItems(entries []fsnav.Entry) []render.PickerItem {
	items := make([]render.PickerItem, len(entries))
	for i, e := range entries {
		items[i] = render.PickerItem{Label: e.Name, IsDir: e.IsDir}
	}
	return items
}

// destinationPicker satisfies the session's extraction destination callback.
type destinationPicker struct {
	app *Application
}

func (p destinationPicker) PickDestination() (string, bool) {
	return p.app.pickPath("Extract to", p.app.startDir, pickFolder)
}
