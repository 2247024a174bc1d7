package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/rarc/internal/archive"
	"github.com/kk-code-lab/rarc/internal/ui/input"
	"github.com/kk-code-lab/rarc/internal/ui/render"
)

// handleAction applies one translated input action. The return value reports
// whether the screen needs a repaint.
func (app *Application) handleAction(action input.Action) bool {
	if action == nil {
		return false
	}

	// The status bar keeps the latest notification until the next user
	// action replaces it. Resizing and scrolling leave it alone.
	switch action.(type) {
	case input.ResizeAction, input.WheelAction:
	default:
		app.notice = render.Notice{}
	}

	switch a := action.(type) {
	case input.QuitAction:
		app.shouldQuit = true
		return false
	case input.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
	case input.ResizeAction:
		app.screen.Sync()
	case input.ClickAction:
		app.handleClick(a)
	case input.WheelAction:
		app.scroll += a.Delta

	case input.CursorUpAction:
		app.moveCursor(-1)
	case input.CursorDownAction:
		app.moveCursor(1)
	case input.CursorPageUpAction:
		app.moveCursor(-app.pageStep())
	case input.CursorPageDownAction:
		app.moveCursor(app.pageStep())
	case input.CursorHomeAction:
		app.cursor = 0
		app.ensureCursorVisible()
	case input.CursorEndAction:
		app.cursor = len(app.session.VisibleEntries()) - 1
		app.ensureCursorVisible()

	case input.ToggleCursorAction:
		app.toggleCursor()
	case input.RangeUpAction:
		app.rangeMove(-1)
	case input.RangeDownAction:
		app.rangeMove(1)
	case input.ClearSelectionAction:
		app.session.HandleEmptyClick()

	case input.OpenCursorAction:
		app.openCursor()
	case input.GoBackAction:
		app.session.GoBack()
	case input.GoForwardAction:
		app.session.GoForward()
	case input.GoUpAction:
		app.session.GoUp()
	case input.RefreshAction:
		app.session.Refresh()

	case input.FilterStartAction:
		if app.session.ArchivePath() != "" {
			app.filterFocus = true
		}
	case input.FilterCharAction:
		app.session.SetFilter(app.session.FilterQuery() + string(a.Char))
	case input.FilterBackspaceAction:
		if q := app.session.FilterQuery(); q != "" {
			runes := []rune(q)
			app.session.SetFilter(string(runes[:len(runes)-1]))
		}
	case input.FilterAcceptAction:
		app.filterFocus = false
	case input.FilterClearAction:
		app.filterFocus = false
		app.session.SetFilter("")

	case input.ExtractAction:
		app.session.ExtractSelection()
	case input.DeleteAction:
		app.deleteSelection()
	case input.RenameAction:
		app.renameSelected()
	case input.NewFolderAction:
		app.createFolder()
	case input.AddFilesAction:
		app.addFromDisk()
	case input.CopyAction:
		app.session.CopySelection(false)
	case input.CutAction:
		app.session.CopySelection(true)
	case input.PasteAction:
		app.session.Paste()
	case input.OpenArchiveAction:
		app.openFromDisk()
	case input.CloseArchiveAction:
		app.closeArchive()
	}

	return true
}

// canMutate reports whether an archive-changing command may start: an archive
// is open and no operation holds the gate. Commands that prompt first check
// this up front so the user is never asked for input that would be dropped.
func (app *Application) canMutate() bool {
	return app.session.ArchivePath() != "" && !app.session.Loading()
}

func (app *Application) deleteSelection() {
	if !app.canMutate() {
		return
	}
	n := app.session.Counts().Selected
	if n == 0 {
		// The session answers with its nothing-selected notice.
		app.session.DeleteSelection()
		return
	}
	what := fmt.Sprintf("%d entries", n)
	if n == 1 {
		what = "1 entry"
	}
	if app.confirm("Delete", fmt.Sprintf("Delete %s from the archive?", what)) {
		app.session.DeleteSelection()
	}
}

func (app *Application) renameSelected() {
	if !app.canMutate() {
		return
	}
	paths := app.session.SelectedPaths()
	if len(paths) != 1 || strings.HasSuffix(paths[0], "/") {
		// Let the session report the precondition that failed.
		app.session.RenameSelected("")
		return
	}
	current := archive.Entry{Path: paths[0]}.Name()
	name, ok := app.textPrompt("Rename", current, archive.ValidateEntryName)
	if !ok || name == current {
		return
	}
	app.session.RenameSelected(name)
}

func (app *Application) createFolder() {
	if !app.canMutate() {
		return
	}
	name, ok := app.textPrompt("New folder", "", archive.ValidateEntryName)
	if !ok {
		return
	}
	app.session.CreateFolder(name)
}

func (app *Application) addFromDisk() {
	if !app.canMutate() {
		return
	}
	path, ok := app.pickPath("Add to archive", app.startDir, pickAny)
	if !ok {
		return
	}
	app.session.AddLocalPaths([]string{path})
}

func (app *Application) openFromDisk() {
	if app.session.Loading() {
		return
	}
	path, ok := app.pickPath("Open archive", app.startDir, pickAny)
	if !ok {
		return
	}
	app.openArchive(path)
}

// openArchive funnels the command line archive and picker choices through one
// place.
func (app *Application) openArchive(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	app.filterFocus = false
	app.session.OpenArchive(path)
}

func (app *Application) closeArchive() {
	app.filterFocus = false
	app.session.ResetToEmpty()
}
