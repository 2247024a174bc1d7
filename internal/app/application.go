package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/kk-code-lab/rarc/internal/browse"
	"github.com/kk-code-lab/rarc/internal/ui/input"
	"github.com/kk-code-lab/rarc/internal/ui/render"
)

// Config carries the startup options resolved by the command line.
type Config struct {
	ArchivePath string // archive to open immediately, empty for the home screen
	SevenZipBin string // explicit 7-Zip binary, empty probes PATH
	Log         zerolog.Logger
}

// Application represents the running app. It owns the terminal, the browse
// session and the view state the session does not track: cursor, scroll,
// filter focus and the latest notification.
type Application struct {
	screen   tcell.Screen
	session  *browse.Session
	renderer *render.Renderer
	input    *input.InputHandler
	log      zerolog.Logger

	actionCh   chan input.Action
	dispatchCh chan func()
	eventCh    chan tcell.Event

	layout      render.ViewLayout
	viewKey     string
	cursor      int
	scroll      int
	filterFocus bool
	notice      render.Notice
	shouldQuit  bool

	lastClickKey  string
	lastClickTime time.Time

	startDir string // where filesystem pickers begin browsing
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.screen.Fini()
	return nil
}

// FilterFocused reports whether typed runes currently edit the filter query.
func (app *Application) FilterFocused() bool { return app.filterFocus }

// FilterSet reports whether a filter query is active.
func (app *Application) FilterSet() bool { return app.session.FilterQuery() != "" }

func (app *Application) setNotice(kind render.NoticeKind, text string) {
	app.notice = render.Notice{Kind: kind, Text: text}
}

// sessionNotifier lands session messages in the status bar.
type sessionNotifier struct {
	app *Application
}

func (n sessionNotifier) Error(message string)   { n.app.setNotice(render.NoticeError, message) }
func (n sessionNotifier) Info(message string)    { n.app.setNotice(render.NoticeInfo, message) }
func (n sessionNotifier) Success(message string) { n.app.setNotice(render.NoticeSuccess, message) }
