package browse

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kk-code-lab/rarc/internal/archive"
)

// Config wires a session to its collaborators.
type Config struct {
	Backend  Backend
	Notifier Notifier
	Picker   Picker
	Log      zerolog.Logger
}

// Session owns one archive browse: the entry list, navigation history,
// selection, filter, clipboard and the busy gate. All methods must be called
// from the goroutine that owns the session; long operations run through the
// configured Runner and settle back on that goroutine.
type Session struct {
	log      zerolog.Logger
	backend  Backend
	notifier Notifier
	picker   Picker
	runner   Runner

	archivePath string
	entries     []archive.Entry
	visible     []archive.Entry
	filter      string

	history   *History
	selection *Selection
	gate      *Gate

	clipboard    []string
	clipboardCut bool
}

// NewSession returns an idle session with no archive open. Without a runner,
// operations execute synchronously on the calling goroutine.
func NewSession(cfg Config) *Session {
	return &Session{
		log:       cfg.Log,
		backend:   cfg.Backend,
		notifier:  cfg.Notifier,
		picker:    cfg.Picker,
		history:   NewHistory(),
		selection: NewSelection(),
		gate:      &Gate{},
	}
}

// SetRunner installs the executor for long operations.
func (s *Session) SetRunner(r Runner) { s.runner = r }

// ArchivePath returns the open archive's path, empty when none is open.
func (s *Session) ArchivePath() string { return s.archivePath }

// CurrentFolder returns the folder the session is browsing.
func (s *Session) CurrentFolder() string { return s.history.Current() }

func (s *Session) CanGoBack() bool { return s.history.CanGoBack() }

func (s *Session) CanGoForward() bool { return s.history.CanGoForward() }

// Loading reports whether a data operation is outstanding.
func (s *Session) Loading() bool { return s.gate.Busy() }

// FilterQuery returns the active filter text.
func (s *Session) FilterQuery() string { return s.filter }

// VisibleEntries returns the filtered, sorted list currently rendered. The
// slice is owned by the session; callers must not mutate it.
func (s *Session) VisibleEntries() []archive.Entry { return s.visible }

// SelectedPaths returns the selected entry paths in lexicographic order.
func (s *Session) SelectedPaths() []string { return s.selection.Paths() }

// Selected reports whether the entry at path is selected.
func (s *Session) Selected(path string) bool { return s.selection.Contains(path) }

// ClipboardLen returns the number of paths on the clipboard.
func (s *Session) ClipboardLen() int { return len(s.clipboard) }

// Counts summarizes the visible list.
func (s *Session) Counts() Counts {
	c := Counts{Selected: s.selection.Count()}
	for _, e := range s.visible {
		if e.IsDir {
			c.Folders++
		} else {
			c.Files++
		}
	}
	return c
}

func (s *Session) opened() bool { return s.archivePath != "" }

// refreshVisible re-runs the render pipeline: children of the current folder,
// filter, sort. Replacing the rendered list invalidates the selection.
func (s *Session) refreshVisible() {
	s.selection.Clear()
	list := Children(s.entries, s.history.Current())
	list = FilterEntries(list, s.filter)
	SortEntries(list)
	s.visible = list
}

func (s *Session) afterNavigate() {
	s.filter = ""
	s.refreshVisible()
}

// NavigateTo enters the given folder. Rejected while loading; navigating to
// the current folder is a no-op.
func (s *Session) NavigateTo(folder string) {
	if s.gate.Busy() || !s.opened() {
		return
	}
	folder = archive.NormalizeFolder(folder)
	if folder == s.history.Current() {
		return
	}
	s.history.Visit(folder)
	s.afterNavigate()
}

// GoBack steps to the previous folder in history.
func (s *Session) GoBack() {
	if s.gate.Busy() || !s.opened() {
		return
	}
	if _, ok := s.history.Back(); ok {
		s.afterNavigate()
	}
}

// GoForward steps to the next folder in history.
func (s *Session) GoForward() {
	if s.gate.Busy() || !s.opened() {
		return
	}
	if _, ok := s.history.Forward(); ok {
		s.afterNavigate()
	}
}

// GoUp enters the parent of the current folder. At the root it does nothing.
func (s *Session) GoUp() {
	if s.gate.Busy() || !s.opened() {
		return
	}
	current := s.history.Current()
	if current == "" {
		return
	}
	s.history.Visit(archive.ParentFolder(current))
	s.afterNavigate()
}

// HandleItemClick applies a click on the rendered row at index. Clicks whose
// path and index no longer line up with the rendered list are stale and
// ignored. Selection is allowed while loading; only data operations are
// gated.
func (s *Session) HandleItemClick(path string, index int, mods Modifiers) {
	if !s.opened() {
		return
	}
	switch {
	case mods.Range:
		s.selection.ClickRange(s.visible, index, mods.Toggle)
	case mods.Toggle:
		s.selection.ClickToggle(s.visible, path, index)
	default:
		s.selection.ClickSimple(s.visible, path, index)
	}
}

// HandleItemDoubleClick enters the double-clicked folder. Double-clicking a
// file does nothing.
func (s *Session) HandleItemDoubleClick(path string) {
	if s.gate.Busy() || !s.opened() {
		return
	}
	for _, e := range s.visible {
		if e.Path == path {
			if e.IsDir {
				s.NavigateTo(e.Path)
			}
			return
		}
	}
}

// HandleEmptyClick clears the selection.
func (s *Session) HandleEmptyClick() {
	if !s.opened() {
		return
	}
	s.selection.ClickEmpty()
}

// SetFilter narrows the visible list to names matching query. Changing the
// filter replaces the rendered list, which clears the selection.
func (s *Session) SetFilter(query string) {
	if !s.opened() || query == s.filter {
		return
	}
	s.filter = query
	s.refreshVisible()
}

// ResetToEmpty closes the archive and returns to the home state.
func (s *Session) ResetToEmpty() {
	if s.gate.Busy() {
		return
	}
	s.resetToEmpty()
}

func (s *Session) resetToEmpty() {
	s.archivePath = ""
	s.entries = nil
	s.visible = nil
	s.filter = ""
	s.clipboard = nil
	s.clipboardCut = false
	s.history.Reset("")
	s.selection.Clear()
}

// runOp takes the gate and executes work, which performs the blocking calls
// and returns a settle closure that applies the outcome to the session. The
// gate is released when settle has run, success or not. A second operation
// arriving while the gate is held is dropped.
func (s *Session) runOp(work func() func()) {
	if !s.gate.TryAcquire() {
		return
	}
	finish := func(settle func()) {
		defer s.gate.Release()
		if settle != nil {
			settle()
		}
	}
	if s.runner == nil {
		finish(work())
		return
	}
	s.runner.Run(func() func() {
		settle := work()
		return func() { finish(settle) }
	})
}

// OpenArchive loads the archive at path and positions the session at its
// root. On failure the session falls back to the home state.
func (s *Session) OpenArchive(path string) {
	if s.gate.Busy() {
		return
	}
	s.log.Info().Str("archive", path).Msg("opening archive")
	s.runOp(func() func() {
		entries, err := s.backend.FetchEntries(context.Background(), path)
		return func() {
			if err != nil {
				s.log.Error().Err(err).Str("archive", path).Msg("open failed")
				s.notifier.Error(err.Error())
				s.resetToEmpty()
				return
			}
			s.archivePath = path
			s.entries = entries
			s.clipboard = nil
			s.clipboardCut = false
			s.history.Reset("")
			s.afterNavigate()
			s.notifier.Info(fmt.Sprintf("Opened %s", filepath.Base(path)))
		}
	})
}

// Refresh re-fetches the entry list, keeping the current folder and history.
// On failure the stale list stays usable.
func (s *Session) Refresh() {
	if s.gate.Busy() || !s.opened() {
		return
	}
	path := s.archivePath
	s.runOp(func() func() {
		entries, err := s.backend.FetchEntries(context.Background(), path)
		return func() {
			if err != nil {
				s.notifier.Error(err.Error())
				return
			}
			s.entries = entries
			s.refreshVisible()
		}
	})
}

// mutateAndReload performs one archive mutation followed by a re-fetch under
// a single gate hold. After a failed mutation the old list is kept; the
// backend does not report how far it got.
func (s *Session) mutateAndReload(m Mutation, success string, onSuccess func()) {
	path := s.archivePath
	s.runOp(func() func() {
		if err := s.backend.Mutate(context.Background(), path, m); err != nil {
			return func() { s.notifier.Error(err.Error()) }
		}
		entries, err := s.backend.FetchEntries(context.Background(), path)
		return func() {
			if err != nil {
				s.notifier.Error(err.Error())
				return
			}
			s.entries = entries
			s.refreshVisible()
			if onSuccess != nil {
				onSuccess()
			}
			if success != "" {
				s.notifier.Success(success)
			}
		}
	})
}

// DeleteSelection removes the selected entries from the archive.
func (s *Session) DeleteSelection() {
	if s.gate.Busy() || !s.opened() {
		return
	}
	paths := s.selection.Paths()
	if len(paths) == 0 {
		s.notifier.Info("Nothing selected")
		return
	}
	s.mutateAndReload(
		Mutation{Op: OpDelete, Paths: paths},
		fmt.Sprintf("Deleted %s", countLabel(len(paths), "entry", "entries")),
		nil,
	)
}

// RenameSelected renames the single selected file to newName within its
// folder.
func (s *Session) RenameSelected(newName string) {
	if s.gate.Busy() || !s.opened() {
		return
	}
	paths := s.selection.Paths()
	if len(paths) != 1 {
		s.notifier.Info("Select exactly one entry to rename")
		return
	}
	old := paths[0]
	if strings.HasSuffix(old, "/") {
		s.notifier.Error("Renaming folders is not supported")
		return
	}
	if err := archive.ValidateEntryName(newName); err != nil {
		s.notifier.Error(err.Error())
		return
	}
	if newName == (archive.Entry{Path: old}).Name() {
		return
	}
	target := archive.ParentFolder(old) + newName
	if s.entryExists(target) {
		s.notifier.Error(fmt.Sprintf("%q already exists", newName))
		return
	}
	s.mutateAndReload(
		Mutation{Op: OpRename, Paths: []string{old}, NewName: newName},
		fmt.Sprintf("Renamed to %s", newName),
		nil,
	)
}

// CreateFolder makes a new folder with the given name inside the current
// folder.
func (s *Session) CreateFolder(name string) {
	if s.gate.Busy() || !s.opened() {
		return
	}
	if err := archive.ValidateEntryName(name); err != nil {
		s.notifier.Error(err.Error())
		return
	}
	folder := archive.JoinFolder(s.history.Current(), name)
	if s.entryExists(strings.TrimSuffix(folder, "/")) {
		s.notifier.Error(fmt.Sprintf("%q already exists", name))
		return
	}
	s.mutateAndReload(
		Mutation{Op: OpCreateFolder, Dest: folder},
		fmt.Sprintf("Created folder %s", name),
		nil,
	)
}

// AddLocalPaths compresses local files or directories into the archive root.
func (s *Session) AddLocalPaths(localPaths []string) {
	if s.gate.Busy() || !s.opened() || len(localPaths) == 0 {
		return
	}
	s.mutateAndReload(
		Mutation{Op: OpAdd, LocalPaths: localPaths},
		fmt.Sprintf("Added %s", countLabel(len(localPaths), "entry", "entries")),
		nil,
	)
}

// CopySelection puts the selected paths on the clipboard. With cut set, a
// later paste removes the originals.
func (s *Session) CopySelection(cut bool) {
	if s.gate.Busy() || !s.opened() {
		return
	}
	paths := s.selection.Paths()
	if len(paths) == 0 {
		s.notifier.Info("Nothing selected")
		return
	}
	s.clipboard = paths
	s.clipboardCut = cut
	verb := "Copied"
	if cut {
		verb = "Cut"
	}
	s.notifier.Info(fmt.Sprintf("%s %s", verb, countLabel(len(paths), "entry", "entries")))
}

// Paste transfers the clipboard's entries into the current folder. A cut
// clipboard is consumed on success; a copied one can be pasted again.
func (s *Session) Paste() {
	if s.gate.Busy() || !s.opened() {
		return
	}
	if len(s.clipboard) == 0 {
		s.notifier.Info("Clipboard is empty")
		return
	}
	paths := s.clipboard
	cut := s.clipboardCut
	verb := "Copied"
	if cut {
		verb = "Moved"
	}
	s.mutateAndReload(
		Mutation{Op: OpTransfer, Paths: paths, Dest: s.history.Current(), RemoveOriginal: cut},
		fmt.Sprintf("%s %s", verb, countLabel(len(paths), "entry", "entries")),
		func() {
			if cut {
				s.clipboard = nil
				s.clipboardCut = false
			}
		},
	)
}

// ExtractSelection unpacks the selected entries, or the whole archive when
// nothing is selected, into a destination chosen by the user.
func (s *Session) ExtractSelection() {
	if s.gate.Busy() || !s.opened() {
		return
	}
	paths := s.selection.Paths()
	dest, ok := s.picker.PickDestination()
	if !ok {
		return
	}
	archivePath := s.archivePath
	what := "archive"
	if len(paths) > 0 {
		what = countLabel(len(paths), "entry", "entries")
	}
	s.runOp(func() func() {
		err := s.backend.Extract(context.Background(), archivePath, paths, dest)
		return func() {
			if err != nil {
				s.notifier.Error(err.Error())
				return
			}
			s.notifier.Success(fmt.Sprintf("Extracted %s to %s", what, dest))
		}
	})
}

// entryExists reports whether the archive contains path as a file or folder.
func (s *Session) entryExists(path string) bool {
	for _, e := range s.entries {
		if e.Path == path || e.Path == path+"/" {
			return true
		}
	}
	return false
}

func countLabel(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
