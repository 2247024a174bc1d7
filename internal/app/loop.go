package app

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rarc/internal/archive"
	"github.com/kk-code-lab/rarc/internal/browse"
	"github.com/kk-code-lab/rarc/internal/ui/input"
	"github.com/kk-code-lab/rarc/internal/ui/render"
)

const doubleClickThreshold = 300 * time.Millisecond

func NewApplication(cfg Config) (*Application, error) {
	binPath, err := archive.ResolveBinary(cfg.SevenZipBin)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	cwd, err := os.Getwd()
	if err != nil {
		screen.Fini()
		return nil, err
	}

	actionCh := make(chan input.Action, 10)
	app := &Application{
		screen:     screen,
		renderer:   render.NewRenderer(screen),
		input:      input.NewInputHandler(actionCh),
		log:        cfg.Log,
		actionCh:   actionCh,
		dispatchCh: make(chan func(), 10),
		eventCh:    make(chan tcell.Event),
		startDir:   cwd,
	}

	engine := archive.NewSevenZip(binPath, cfg.Log)
	app.session = browse.NewSession(browse.Config{
		Backend:  browse.EngineBackend{Engine: engine},
		Notifier: sessionNotifier{app},
		Picker:   destinationPicker{app},
		Log:      cfg.Log,
	})
	app.session.SetRunner(browse.NewGoroutineRunner(app.dispatch))
	app.input.SetModes(app)

	if cfg.ArchivePath != "" {
		app.openArchive(cfg.ArchivePath)
	}
	return app, nil
}

// dispatch posts a settle closure into the event loop. When the loop is not
// draining, the send falls back to a goroutine instead of blocking the
// operation worker.
func (app *Application) dispatch(fn func()) {
	select {
	case app.dispatchCh <- fn:
	default:
		go func() { app.dispatchCh <- fn }()
	}
}

func (app *Application) Run() {
	defer app.screen.Fini()

	app.render()
	renderPending := false

	go func() {
		for {
			app.eventCh <- app.screen.PollEvent()
		}
	}()

	var sigResumeCh chan os.Signal
	if sigs := resumeSignals(); len(sigs) > 0 {
		sigResumeCh = make(chan os.Signal, 1)
		signal.Notify(sigResumeCh, sigs...)
		defer signal.Stop(sigResumeCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.render()
			renderPending = false
		}

		select {
		case ev := <-app.eventCh:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case fn := <-app.dispatchCh:
			fn()
			renderPending = true
		case <-sigResumeCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev.(type) {
	case *tcell.EventKey, *tcell.EventMouse, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		case fn := <-app.dispatchCh:
			fn()
			changed = true
		default:
			return changed
		}
	}
}

// render assembles a frame from the session plus the app's own view state and
// remembers the resulting layout for mouse hit-testing.
func (app *Application) render() {
	key := app.session.ArchivePath() + "\x00" + app.session.CurrentFolder()
	if key != app.viewKey {
		// Entering a folder starts the view at the top.
		app.viewKey = key
		app.cursor = 0
		app.scroll = 0
	}
	app.clampView()

	counts := app.session.Counts()
	frame := render.Frame{
		ArchivePath:   app.session.ArchivePath(),
		Folder:        app.session.CurrentFolder(),
		Entries:       app.session.VisibleEntries(),
		Selected:      app.session.Selected,
		Cursor:        app.cursor,
		Scroll:        app.scroll,
		FolderCount:   counts.Folders,
		FileCount:     counts.Files,
		SelectedCount: counts.Selected,
		FilterQuery:   app.session.FilterQuery(),
		FilterFocus:   app.filterFocus,
		Loading:       app.session.Loading(),
		CanGoBack:     app.session.CanGoBack(),
		CanGoForward:  app.session.CanGoForward(),
		Notice:        app.notice,
	}
	app.layout = app.renderer.Render(&frame)
}

// clampView bounds cursor and scroll against the current list without forcing
// the cursor into view, so wheel scrolling can leave it offscreen.
func (app *Application) clampView() {
	n := len(app.session.VisibleEntries())
	if app.cursor >= n {
		app.cursor = n - 1
	}
	if app.cursor < 0 {
		app.cursor = 0
	}

	_, h := app.screen.Size()
	maxScroll := 0
	if rows := render.ListRows(h); rows > 0 {
		maxScroll = n - rows
	}
	if maxScroll < 0 {
		maxScroll = 0
	}
	if app.scroll > maxScroll {
		app.scroll = maxScroll
	}
	if app.scroll < 0 {
		app.scroll = 0
	}
}

func (app *Application) moveCursor(delta int) {
	n := len(app.session.VisibleEntries())
	if n == 0 {
		app.cursor = 0
		return
	}
	app.cursor += delta
	if app.cursor < 0 {
		app.cursor = 0
	}
	if app.cursor >= n {
		app.cursor = n - 1
	}
	app.ensureCursorVisible()
}

func (app *Application) ensureCursorVisible() {
	_, h := app.screen.Size()
	rows := render.ListRows(h)
	if rows < 1 {
		return
	}
	if app.cursor < app.scroll {
		app.scroll = app.cursor
	}
	if app.cursor >= app.scroll+rows {
		app.scroll = app.cursor - rows + 1
	}
}

func (app *Application) pageStep() int {
	_, h := app.screen.Size()
	step := render.ListRows(h) - 1
	if step < 1 {
		step = 1
	}
	return step
}

func (app *Application) entryUnderCursor() (archive.Entry, bool) {
	visible := app.session.VisibleEntries()
	if app.cursor < 0 || app.cursor >= len(visible) {
		return archive.Entry{}, false
	}
	return visible[app.cursor], true
}

// handleClick maps a click through the last rendered layout: breadcrumbs on
// the header row, entries in the list area, selection clearing below them.
func (app *Application) handleClick(a input.ClickAction) {
	app.filterFocus = false
	if app.session.ArchivePath() == "" {
		return
	}

	if a.Y == 0 {
		for _, zone := range app.layout.CrumbZones {
			if a.X >= zone.StartX && a.X < zone.EndX {
				app.session.NavigateTo(zone.Folder)
				return
			}
		}
		return
	}

	row := a.Y - app.layout.ListTop
	if row < 0 || row >= app.layout.ListRows {
		return
	}

	idx := app.scroll + row
	visible := app.session.VisibleEntries()
	if idx >= len(visible) {
		app.session.HandleEmptyClick()
		app.lastClickKey = ""
		return
	}
	entry := visible[idx]

	clickKey := fmt.Sprintf("list-%d", idx)
	doubleClick := app.lastClickKey == clickKey &&
		time.Since(app.lastClickTime) <= doubleClickThreshold &&
		!a.Mods.Toggle && !a.Mods.Range
	app.lastClickKey = clickKey
	app.lastClickTime = time.Now()

	app.session.HandleItemClick(entry.Path, idx, a.Mods)
	app.cursor = idx
	app.ensureCursorVisible()

	if doubleClick {
		app.session.HandleItemDoubleClick(entry.Path)
	}
}

func (app *Application) toggleCursor() {
	if entry, ok := app.entryUnderCursor(); ok {
		app.session.HandleItemClick(entry.Path, app.cursor, browse.Modifiers{Toggle: true})
	}
}

// rangeMove extends the selection one row up or down. Starting on an
// unselected list first anchors at the cursor row, so the run grows from
// where the user stood.
func (app *Application) rangeMove(delta int) {
	entry, ok := app.entryUnderCursor()
	if !ok {
		return
	}
	if app.session.Counts().Selected == 0 {
		app.session.HandleItemClick(entry.Path, app.cursor, browse.Modifiers{})
	}
	app.moveCursor(delta)
	if target, ok := app.entryUnderCursor(); ok {
		app.session.HandleItemClick(target.Path, app.cursor, browse.Modifiers{Range: true})
	}
}

func (app *Application) openCursor() {
	entry, ok := app.entryUnderCursor()
	if !ok || !entry.IsDir {
		return
	}
	app.session.NavigateTo(entry.Path)
}
