package archive

import (
	"strings"
	"time"
)

// Entry is one file or directory record inside an archive. Paths are
// slash-delimited and unique within a listing; directory paths carry a
// trailing slash.
type Entry struct {
	Path      string
	IsDir     bool
	Size      int64
	Modified  time.Time
	TypeLabel string
}

// Name returns the final path segment, without the directory slash.
func (e Entry) Name() string {
	p := strings.TrimSuffix(e.Path, "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}
