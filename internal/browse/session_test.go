package browse

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kk-code-lab/rarc/internal/archive"
)

type fakeBackend struct {
	entries    []archive.Entry
	fetchErr   error
	fetchCount int

	mutations []Mutation
	mutateErr error

	extractCalls int
	extractPaths []string
	extractDest  string
	extractErr   error
}

func (f *fakeBackend) FetchEntries(ctx context.Context, archivePath string) ([]archive.Entry, error) {
	f.fetchCount++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.entries, nil
}

func (f *fakeBackend) Mutate(ctx context.Context, archivePath string, m Mutation) error {
	f.mutations = append(f.mutations, m)
	return f.mutateErr
}

func (f *fakeBackend) Extract(ctx context.Context, archivePath string, paths []string, dest string) error {
	f.extractCalls++
	f.extractPaths = paths
	f.extractDest = dest
	return f.extractErr
}

type recordingNotifier struct {
	errors    []string
	infos     []string
	successes []string
}

func (n *recordingNotifier) Error(message string)   { n.errors = append(n.errors, message) }
func (n *recordingNotifier) Info(message string)    { n.infos = append(n.infos, message) }
func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }

type cannedPicker struct {
	dest  string
	ok    bool
	calls int
}

func (p *cannedPicker) PickDestination() (string, bool) {
	p.calls++
	return p.dest, p.ok
}

// manualRunner holds operations until the test settles them, standing in for
// the app's goroutine executor.
type manualRunner struct {
	ops []func() func()
}

func (r *manualRunner) Run(op func() func()) { r.ops = append(r.ops, op) }

func (r *manualRunner) settleAll() {
	ops := r.ops
	r.ops = nil
	for _, op := range ops {
		op()()
	}
}

func dirEntry(path string) archive.Entry {
	return archive.Entry{Path: path, IsDir: true, TypeLabel: "Folder"}
}

func fileEntry(path string) archive.Entry {
	return archive.Entry{Path: path, TypeLabel: "File"}
}

func newTestSession(entries ...archive.Entry) (*Session, *fakeBackend, *recordingNotifier, *cannedPicker) {
	backend := &fakeBackend{entries: entries}
	notifier := &recordingNotifier{}
	picker := &cannedPicker{dest: "/tmp/out", ok: true}
	s := NewSession(Config{Backend: backend, Notifier: notifier, Picker: picker, Log: zerolog.Nop()})
	return s, backend, notifier, picker
}

func openTestArchive(t *testing.T, s *Session) {
	t.Helper()
	s.OpenArchive("test.zip")
	if s.ArchivePath() != "test.zip" {
		t.Fatalf("Failed to open test archive")
	}
}

// Scenario: open an archive holding x/ (a folder), x/y.txt and z.txt. The
// root shows x/ then z.txt, entering x/ shows its file, and going up returns
// to the identical root view.
func TestOpenArchiveScenario(t *testing.T) {
	s, _, _, _ := newTestSession(dirEntry("x/"), fileEntry("x/y.txt"), fileEntry("z.txt"))
	openTestArchive(t, s)

	if !equalPaths(s.VisibleEntries(), "x/", "z.txt") {
		t.Fatalf("Expected root view [x/ z.txt], got %v", paths(s.VisibleEntries()))
	}

	s.HandleItemDoubleClick("x/")
	if s.CurrentFolder() != "x/" {
		t.Fatalf("Expected to enter x/, got %q", s.CurrentFolder())
	}
	if !equalPaths(s.VisibleEntries(), "x/y.txt") {
		t.Errorf("Expected x/ view [x/y.txt], got %v", paths(s.VisibleEntries()))
	}

	s.GoUp()
	if s.CurrentFolder() != "" {
		t.Fatalf("Expected to return to root, got %q", s.CurrentFolder())
	}
	if !equalPaths(s.VisibleEntries(), "x/", "z.txt") {
		t.Errorf("Expected root view restored, got %v", paths(s.VisibleEntries()))
	}
	if !s.CanGoBack() {
		t.Errorf("Expected back history after navigating")
	}
}

func TestOpenFailureFallsBackToHome(t *testing.T) {
	s, backend, notifier, _ := newTestSession()
	backend.fetchErr = errors.New("broken archive")

	s.OpenArchive("bad.zip")

	if s.ArchivePath() != "" {
		t.Errorf("Expected home state after failed open, got %q", s.ArchivePath())
	}
	if len(s.VisibleEntries()) != 0 {
		t.Errorf("Expected no visible entries, got %v", paths(s.VisibleEntries()))
	}
	if len(notifier.errors) != 1 {
		t.Errorf("Expected one error notification, got %v", notifier.errors)
	}
}

func TestRefreshFailureKeepsStaleList(t *testing.T) {
	s, backend, notifier, _ := newTestSession(dirEntry("x/"), fileEntry("z.txt"))
	openTestArchive(t, s)

	backend.fetchErr = errors.New("archive vanished")
	s.Refresh()

	if !equalPaths(s.VisibleEntries(), "x/", "z.txt") {
		t.Errorf("Expected stale list kept, got %v", paths(s.VisibleEntries()))
	}
	if s.ArchivePath() != "test.zip" || s.CurrentFolder() != "" {
		t.Errorf("Expected navigation state kept")
	}
	if len(notifier.errors) != 1 {
		t.Errorf("Expected one error notification, got %v", notifier.errors)
	}
}

// Replacing the entry list clears the selection even when the selected paths
// still exist afterward.
func TestReloadClearsSelection(t *testing.T) {
	s, _, _, _ := newTestSession(dirEntry("x/"), fileEntry("z.txt"))
	openTestArchive(t, s)

	s.HandleItemClick("z.txt", 1, Modifiers{})
	if got := s.SelectedPaths(); !reflect.DeepEqual(got, []string{"z.txt"}) {
		t.Fatalf("Failed to select z.txt: %v", got)
	}

	s.Refresh()
	if got := s.SelectedPaths(); len(got) != 0 {
		t.Errorf("Expected selection cleared by reload, got %v", got)
	}
}

// While an operation is outstanding, navigation and new commands are dropped
// silently.
func TestBusyRejectsNavigationAndCommands(t *testing.T) {
	s, backend, notifier, _ := newTestSession(dirEntry("x/"), fileEntry("z.txt"))
	openTestArchive(t, s)
	s.NavigateTo("x/")
	if !s.CanGoBack() {
		t.Fatalf("Failed to build history")
	}

	if !s.gate.TryAcquire() {
		t.Fatalf("Failed to hold the gate")
	}
	infos, errs := len(notifier.infos), len(notifier.errors)

	s.GoBack()
	if s.CurrentFolder() != "x/" {
		t.Errorf("Expected goBack rejected while busy, now at %q", s.CurrentFolder())
	}
	s.GoUp()
	s.NavigateTo("")
	if s.CurrentFolder() != "x/" {
		t.Errorf("Expected navigation rejected while busy, now at %q", s.CurrentFolder())
	}
	s.DeleteSelection()
	s.Refresh()
	if len(backend.mutations) != 0 {
		t.Errorf("Expected no mutations while busy, got %v", backend.mutations)
	}
	if backend.fetchCount != 1 {
		t.Errorf("Expected no fetches while busy, got %d", backend.fetchCount)
	}
	if len(notifier.infos) != infos || len(notifier.errors) != errs {
		t.Errorf("Expected silent rejection, got %v / %v", notifier.infos, notifier.errors)
	}

	s.gate.Release()
	s.GoBack()
	if s.CurrentFolder() != "" {
		t.Errorf("Expected goBack to work after release, got %q", s.CurrentFolder())
	}
}

// The async runner path: the gate is held from dispatch until the settle
// closure runs on the owning goroutine.
func TestAsyncOperationHoldsGate(t *testing.T) {
	s, backend, _, _ := newTestSession(fileEntry("z.txt"))
	openTestArchive(t, s)

	runner := &manualRunner{}
	s.SetRunner(runner)

	s.Refresh()
	if !s.Loading() {
		t.Fatalf("Expected session loading while the op is pending")
	}
	if len(runner.ops) != 1 {
		t.Fatalf("Expected one pending op, got %d", len(runner.ops))
	}

	s.Refresh() // dropped: gate already held
	if len(runner.ops) != 1 {
		t.Errorf("Expected second refresh dropped, got %d ops", len(runner.ops))
	}

	runner.settleAll()
	if s.Loading() {
		t.Errorf("Expected gate released after settle")
	}
	if backend.fetchCount != 2 {
		t.Errorf("Expected open plus one refresh fetch, got %d", backend.fetchCount)
	}
}

func TestStaleItemClickNoOp(t *testing.T) {
	s, _, _, _ := newTestSession(dirEntry("x/"), fileEntry("z.txt"))
	openTestArchive(t, s)

	s.HandleItemClick("z.txt", 0, Modifiers{}) // z.txt renders at index 1
	s.HandleItemClick("x/", 7, Modifiers{})
	if got := s.SelectedPaths(); len(got) != 0 {
		t.Errorf("Expected stale clicks ignored, got %v", got)
	}
}

func TestFilterNarrowsAndClearsSelection(t *testing.T) {
	s, _, _, _ := newTestSession(fileEntry("alpha.txt"), fileEntry("beta.txt"), dirEntry("gamma/"))
	openTestArchive(t, s)

	s.HandleItemClick("alpha.txt", 1, Modifiers{})
	if len(s.SelectedPaths()) != 1 {
		t.Fatalf("Failed to select alpha.txt")
	}

	s.SetFilter("bet")
	if !equalPaths(s.VisibleEntries(), "beta.txt") {
		t.Errorf("Expected filtered view [beta.txt], got %v", paths(s.VisibleEntries()))
	}
	if len(s.SelectedPaths()) != 0 {
		t.Errorf("Expected filter change to clear selection")
	}

	s.SetFilter("")
	if !equalPaths(s.VisibleEntries(), "gamma/", "alpha.txt", "beta.txt") {
		t.Errorf("Expected full view restored, got %v", paths(s.VisibleEntries()))
	}
}

func TestFilterResetsOnNavigation(t *testing.T) {
	s, _, _, _ := newTestSession(dirEntry("x/"), fileEntry("x/y.txt"), fileEntry("z.txt"))
	openTestArchive(t, s)

	s.SetFilter("z")
	if !equalPaths(s.VisibleEntries(), "z.txt") {
		t.Fatalf("Failed to filter root view: %v", paths(s.VisibleEntries()))
	}

	s.NavigateTo("x/")
	if s.FilterQuery() != "" {
		t.Errorf("Expected filter reset on navigation, got %q", s.FilterQuery())
	}
	if !equalPaths(s.VisibleEntries(), "x/y.txt") {
		t.Errorf("Expected unfiltered x/ view, got %v", paths(s.VisibleEntries()))
	}
}

func TestClipboardCutPasteFlow(t *testing.T) {
	s, backend, _, _ := newTestSession(dirEntry("docs/"), fileEntry("docs/a.txt"), fileEntry("b.txt"))
	openTestArchive(t, s)

	s.HandleItemClick("b.txt", 1, Modifiers{})
	s.CopySelection(true)
	if s.ClipboardLen() != 1 {
		t.Fatalf("Failed to cut b.txt")
	}

	s.NavigateTo("docs/")
	s.Paste()

	want := Mutation{Op: OpTransfer, Paths: []string{"b.txt"}, Dest: "docs/", RemoveOriginal: true}
	if len(backend.mutations) != 1 || !reflect.DeepEqual(backend.mutations[0], want) {
		t.Errorf("Expected transfer %+v, got %+v", want, backend.mutations)
	}
	if s.ClipboardLen() != 0 {
		t.Errorf("Expected cut clipboard consumed by paste")
	}
}

func TestClipboardCopyPersistsAfterPaste(t *testing.T) {
	s, backend, _, _ := newTestSession(dirEntry("docs/"), fileEntry("b.txt"))
	openTestArchive(t, s)

	s.HandleItemClick("b.txt", 1, Modifiers{})
	s.CopySelection(false)
	s.NavigateTo("docs/")

	s.Paste()
	s.Paste()

	if len(backend.mutations) != 2 {
		t.Fatalf("Expected two pastes, got %d", len(backend.mutations))
	}
	if backend.mutations[0].RemoveOriginal {
		t.Errorf("Expected copy to keep the source")
	}
	if s.ClipboardLen() != 1 {
		t.Errorf("Expected copied clipboard to persist, got %d", s.ClipboardLen())
	}
}

func TestPasteEmptyClipboard(t *testing.T) {
	s, backend, notifier, _ := newTestSession(fileEntry("b.txt"))
	openTestArchive(t, s)

	s.Paste()
	if len(backend.mutations) != 0 {
		t.Errorf("Expected no mutation, got %v", backend.mutations)
	}
	if len(notifier.infos) == 0 {
		t.Errorf("Expected an info about the empty clipboard")
	}
}

func TestDeleteSelectionMutatesAndReloads(t *testing.T) {
	s, backend, notifier, _ := newTestSession(dirEntry("x/"), fileEntry("z.txt"))
	openTestArchive(t, s)

	s.HandleItemClick("x/", 0, Modifiers{})
	s.HandleItemClick("z.txt", 1, Modifiers{Toggle: true})
	s.DeleteSelection()

	want := Mutation{Op: OpDelete, Paths: []string{"x/", "z.txt"}}
	if len(backend.mutations) != 1 || !reflect.DeepEqual(backend.mutations[0], want) {
		t.Fatalf("Expected delete %+v, got %+v", want, backend.mutations)
	}
	if backend.fetchCount != 2 {
		t.Errorf("Expected re-fetch after mutation, got %d fetches", backend.fetchCount)
	}
	if len(notifier.successes) != 1 {
		t.Errorf("Expected success notification, got %v", notifier.successes)
	}
	if len(s.SelectedPaths()) != 0 {
		t.Errorf("Expected selection cleared after reload")
	}
}

func TestDeleteWithNothingSelected(t *testing.T) {
	s, backend, notifier, _ := newTestSession(fileEntry("z.txt"))
	openTestArchive(t, s)

	s.DeleteSelection()
	if len(backend.mutations) != 0 {
		t.Errorf("Expected no mutation, got %v", backend.mutations)
	}
	if len(notifier.infos) == 0 {
		t.Errorf("Expected an info about the empty selection")
	}
}

func TestRenameSelected(t *testing.T) {
	s, backend, _, _ := newTestSession(dirEntry("docs/"), fileEntry("docs/a.txt"), fileEntry("b.txt"))
	openTestArchive(t, s)
	s.NavigateTo("docs/")

	s.HandleItemClick("docs/a.txt", 0, Modifiers{})
	s.RenameSelected("renamed.txt")

	want := Mutation{Op: OpRename, Paths: []string{"docs/a.txt"}, NewName: "renamed.txt"}
	if len(backend.mutations) != 1 || !reflect.DeepEqual(backend.mutations[0], want) {
		t.Errorf("Expected rename %+v, got %+v", want, backend.mutations)
	}
}

func TestRenameRejections(t *testing.T) {
	s, backend, notifier, _ := newTestSession(dirEntry("docs/"), fileEntry("b.txt"), fileEntry("c.txt"))
	openTestArchive(t, s)

	// Nothing selected.
	s.RenameSelected("x")
	if len(notifier.infos) == 0 {
		t.Errorf("Expected info for empty selection")
	}

	// Folders cannot be renamed.
	s.HandleItemClick("docs/", 0, Modifiers{})
	s.RenameSelected("stuff")
	if len(notifier.errors) != 1 {
		t.Fatalf("Expected folder rename rejected, got %v", notifier.errors)
	}

	// Target name already taken.
	s.HandleItemClick("b.txt", 1, Modifiers{})
	s.RenameSelected("c.txt")
	if len(notifier.errors) != 2 {
		t.Fatalf("Expected duplicate target rejected, got %v", notifier.errors)
	}

	// Renaming to the current name is a no-op.
	s.RenameSelected("b.txt")

	if len(backend.mutations) != 0 {
		t.Errorf("Expected no mutations, got %v", backend.mutations)
	}
}

func TestCreateFolder(t *testing.T) {
	s, backend, notifier, _ := newTestSession(dirEntry("docs/"))
	openTestArchive(t, s)

	s.CreateFolder("docs")
	if len(notifier.errors) != 1 {
		t.Fatalf("Expected duplicate folder rejected, got %v", notifier.errors)
	}
	if len(backend.mutations) != 0 {
		t.Fatalf("Expected no mutation for duplicate, got %v", backend.mutations)
	}

	s.CreateFolder("fresh")
	want := Mutation{Op: OpCreateFolder, Dest: "fresh/"}
	if len(backend.mutations) != 1 || !reflect.DeepEqual(backend.mutations[0], want) {
		t.Errorf("Expected create %+v, got %+v", want, backend.mutations)
	}
}

func TestCreateFolderInsideCurrent(t *testing.T) {
	s, backend, _, _ := newTestSession(dirEntry("docs/"))
	openTestArchive(t, s)
	s.NavigateTo("docs/")

	s.CreateFolder("sub")
	want := Mutation{Op: OpCreateFolder, Dest: "docs/sub/"}
	if len(backend.mutations) != 1 || !reflect.DeepEqual(backend.mutations[0], want) {
		t.Errorf("Expected create %+v, got %+v", want, backend.mutations)
	}
}

func TestExtractSelectionUsesPicker(t *testing.T) {
	s, backend, notifier, picker := newTestSession(dirEntry("x/"), fileEntry("z.txt"))
	openTestArchive(t, s)

	s.HandleItemClick("z.txt", 1, Modifiers{})
	s.ExtractSelection()

	if picker.calls != 1 {
		t.Fatalf("Expected destination picked once, got %d", picker.calls)
	}
	if backend.extractCalls != 1 || !reflect.DeepEqual(backend.extractPaths, []string{"z.txt"}) {
		t.Errorf("Expected extract of z.txt, got %v", backend.extractPaths)
	}
	if backend.extractDest != "/tmp/out" {
		t.Errorf("Expected dest /tmp/out, got %q", backend.extractDest)
	}
	if len(notifier.successes) != 1 {
		t.Errorf("Expected success notification, got %v", notifier.successes)
	}
}

func TestExtractCancelled(t *testing.T) {
	s, backend, _, picker := newTestSession(fileEntry("z.txt"))
	openTestArchive(t, s)
	picker.ok = false

	s.ExtractSelection()
	if backend.extractCalls != 0 {
		t.Errorf("Expected no extraction after cancel")
	}
	if s.Loading() {
		t.Errorf("Expected gate idle after cancel")
	}
}

// With nothing selected the whole archive is extracted.
func TestExtractAllWhenNothingSelected(t *testing.T) {
	s, backend, notifier, _ := newTestSession(dirEntry("x/"), fileEntry("z.txt"))
	openTestArchive(t, s)

	s.ExtractSelection()
	if backend.extractCalls != 1 || len(backend.extractPaths) != 0 {
		t.Fatalf("Expected whole-archive extract, got %v", backend.extractPaths)
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != "Extracted archive to /tmp/out" {
		t.Errorf("Unexpected notification %v", notifier.successes)
	}
}

func TestMutationFailureKeepsEntries(t *testing.T) {
	s, backend, notifier, _ := newTestSession(dirEntry("x/"), fileEntry("z.txt"))
	openTestArchive(t, s)

	backend.mutateErr = errors.New("disk full")
	s.HandleItemClick("z.txt", 1, Modifiers{})
	s.DeleteSelection()

	if len(notifier.errors) != 1 {
		t.Fatalf("Expected error notification, got %v", notifier.errors)
	}
	if backend.fetchCount != 1 {
		t.Errorf("Expected no re-fetch after failed mutation, got %d", backend.fetchCount)
	}
	if !equalPaths(s.VisibleEntries(), "x/", "z.txt") {
		t.Errorf("Expected stale list kept, got %v", paths(s.VisibleEntries()))
	}
	if got := s.SelectedPaths(); !reflect.DeepEqual(got, []string{"z.txt"}) {
		t.Errorf("Expected selection kept, got %v", got)
	}
}

func TestDoubleClickFileIsNoOp(t *testing.T) {
	s, _, notifier, _ := newTestSession(fileEntry("z.txt"))
	openTestArchive(t, s)

	s.HandleItemDoubleClick("z.txt")
	if s.CurrentFolder() != "" {
		t.Errorf("Expected to stay at root, got %q", s.CurrentFolder())
	}
	if len(notifier.errors) != 0 {
		t.Errorf("Expected no error, got %v", notifier.errors)
	}
}

func TestGoUpFromRootNoOp(t *testing.T) {
	s, _, _, _ := newTestSession(fileEntry("z.txt"))
	openTestArchive(t, s)

	s.GoUp()
	if s.CurrentFolder() != "" || s.CanGoBack() {
		t.Errorf("Expected goUp at root to do nothing")
	}
}

func TestCounts(t *testing.T) {
	s, _, _, _ := newTestSession(dirEntry("x/"), fileEntry("z.txt"), fileEntry("w.txt"))
	openTestArchive(t, s)

	s.HandleItemClick("z.txt", 2, Modifiers{})
	got := s.Counts()
	want := Counts{Folders: 1, Files: 2, Selected: 1}
	if got != want {
		t.Errorf("Expected counts %+v, got %+v", want, got)
	}
}

func TestResetToEmpty(t *testing.T) {
	s, _, _, _ := newTestSession(dirEntry("x/"), fileEntry("x/y.txt"), fileEntry("z.txt"))
	openTestArchive(t, s)
	s.NavigateTo("x/")
	s.HandleItemClick("x/y.txt", 0, Modifiers{})

	s.ResetToEmpty()
	if s.ArchivePath() != "" || len(s.VisibleEntries()) != 0 {
		t.Errorf("Expected empty state")
	}
	if s.CanGoBack() || s.CanGoForward() {
		t.Errorf("Expected history reset")
	}
	if len(s.SelectedPaths()) != 0 {
		t.Errorf("Expected selection cleared")
	}
}
