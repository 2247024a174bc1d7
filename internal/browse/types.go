package browse

import (
	"context"

	"github.com/kk-code-lab/rarc/internal/archive"
)

// Modifiers carries the keyboard state of an item click.
type Modifiers struct {
	Toggle bool // ctrl: flip membership
	Range  bool // shift: select from the anchor
}

// MutationOp identifies an archive-changing command.
type MutationOp int

const (
	OpDelete MutationOp = 1 + iota
	OpRename
	OpCreateFolder
	OpAdd
	OpTransfer
)

// Mutation describes one archive-changing command for the backend. Which
// fields matter depends on Op: Delete and Transfer read Paths, Rename reads
// Paths[0] and NewName, CreateFolder reads Dest, Add reads LocalPaths.
type Mutation struct {
	Op             MutationOp
	Paths          []string
	Dest           string
	NewName        string
	LocalPaths     []string
	RemoveOriginal bool
}

// Backend is the external archive service the session calls into. Mutations
// do not return updated listings; the session re-fetches afterward.
type Backend interface {
	FetchEntries(ctx context.Context, archivePath string) ([]archive.Entry, error)
	Mutate(ctx context.Context, archivePath string, m Mutation) error
	Extract(ctx context.Context, archivePath string, paths []string, dest string) error
}

// Picker asks the user for an extraction destination. ok is false when the
// user cancels.
type Picker interface {
	PickDestination() (dest string, ok bool)
}

// Notifier is the user-visible message channel.
type Notifier interface {
	Error(message string)
	Info(message string)
	Success(message string)
}

// Counts summarizes the visible list for the status bar.
type Counts struct {
	Folders  int
	Files    int
	Selected int
}
