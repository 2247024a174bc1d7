package browse

import (
	"context"
	"fmt"

	"github.com/kk-code-lab/rarc/internal/archive"
)

// EngineBackend adapts the 7-Zip engine to the Backend interface the session
// consumes.
type EngineBackend struct {
	Engine *archive.SevenZip
}

func (b EngineBackend) FetchEntries(ctx context.Context, archivePath string) ([]archive.Entry, error) {
	return b.Engine.List(ctx, archivePath)
}

func (b EngineBackend) Mutate(ctx context.Context, archivePath string, m Mutation) error {
	switch m.Op {
	case OpDelete:
		return b.Engine.Delete(ctx, archivePath, m.Paths)
	case OpRename:
		if len(m.Paths) != 1 {
			return &archive.BackendError{Op: "rename", Err: fmt.Errorf("expected one path, got %d", len(m.Paths))}
		}
		return b.Engine.Rename(ctx, archivePath, m.Paths[0], m.NewName)
	case OpCreateFolder:
		return b.Engine.CreateFolder(ctx, archivePath, m.Dest)
	case OpAdd:
		return b.Engine.AddPaths(ctx, archivePath, m.LocalPaths)
	case OpTransfer:
		return b.Engine.Transfer(ctx, archivePath, m.Paths, m.Dest, m.RemoveOriginal)
	}
	return &archive.BackendError{Op: "mutate", Err: fmt.Errorf("unknown operation %d", m.Op)}
}

func (b EngineBackend) Extract(ctx context.Context, archivePath string, paths []string, dest string) error {
	return b.Engine.Extract(ctx, archivePath, paths, dest)
}
