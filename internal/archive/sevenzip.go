package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// candidateBinaries lists the 7-Zip executable names probed on PATH, in
// order. Linux packages ship the modern build as 7zz.
var candidateBinaries = []string{"7z", "7zz", "7za"}

// ResolveBinary locates the 7-Zip executable. An explicit name or path wins;
// otherwise the conventional names are probed on PATH.
func ResolveBinary(explicit string) (string, error) {
	if explicit != "" {
		resolved, err := exec.LookPath(explicit)
		if err != nil {
			return "", fmt.Errorf("seven-zip binary %q: %w", explicit, err)
		}
		return resolved, nil
	}
	for _, name := range candidateBinaries {
		if resolved, err := exec.LookPath(name); err == nil {
			return resolved, nil
		}
	}
	return "", fmt.Errorf("no 7-Zip binary on PATH (tried %s)", strings.Join(candidateBinaries, ", "))
}

// runFunc executes the external binary and returns its stdout and stderr.
// Tests substitute it to script engine behavior.
type runFunc func(ctx context.Context, stdin io.Reader, bin string, args ...string) (stdout, stderr []byte, err error)

// SevenZip drives an external 7-Zip binary. The engine holds no archive
// state: every operation names the archive it works on.
type SevenZip struct {
	bin string
	log zerolog.Logger
	run runFunc
}

// NewSevenZip returns an engine using the given binary.
func NewSevenZip(bin string, log zerolog.Logger) *SevenZip {
	return &SevenZip{bin: bin, log: log, run: runCommand}
}

func runCommand(ctx context.Context, stdin io.Reader, bin string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// exec runs one 7-Zip invocation, shaping failures into BackendErrors that
// carry the operation name and the stderr tail.
func (z *SevenZip) exec(ctx context.Context, op string, stdin io.Reader, args ...string) ([]byte, error) {
	z.log.Debug().Str("op", op).Strs("args", args).Msg("running 7z")
	stdout, stderr, err := z.run(ctx, stdin, z.bin, args...)
	if err != nil {
		if detail := strings.TrimSpace(string(stderr)); detail != "" {
			err = fmt.Errorf("%w: %s", err, tail(detail, 300))
		}
		z.log.Error().Str("op", op).Err(err).Msg("7z failed")
		return nil, &BackendError{Op: op, Err: err}
	}
	return stdout, nil
}

// List reads the archive's entry table.
func (z *SevenZip) List(ctx context.Context, archivePath string) ([]Entry, error) {
	if _, err := os.Stat(archivePath); err != nil {
		return nil, &BackendError{Op: "open archive", Err: err}
	}
	out, err := z.exec(ctx, "open archive", nil, "l", "-slt", archivePath)
	if err != nil {
		return nil, err
	}
	entries := ParseListing(string(out))
	z.log.Info().Str("archive", archivePath).Int("entries", len(entries)).Msg("listed archive")
	return entries, nil
}

// Extract unpacks the named archive paths (everything when paths is empty)
// into dest, creating the directory if needed. Existing files are
// overwritten.
func (z *SevenZip) Extract(ctx context.Context, archivePath string, paths []string, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return &BackendError{Op: "extract", Err: err}
	}
	args := append([]string{"x", archivePath, "-o" + dest, "-aoa"}, paths...)
	_, err := z.exec(ctx, "extract", nil, args...)
	return err
}

// Delete removes entries from the archive. A directory path also removes its
// descendants.
func (z *SevenZip) Delete(ctx context.Context, archivePath string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := []string{"d", archivePath}
	for _, p := range paths {
		args = append(args, p)
		if strings.HasSuffix(p, "/") {
			args = append(args, p+"*")
		}
	}
	args = append(args, "-y")
	_, err := z.exec(ctx, "delete", nil, args...)
	return err
}

// Rename gives one file a new name in place: extract to a temp dir, delete
// the old entry, re-add the content under the new path. Folders are rejected;
// the flat-extract pipeline would lose their structure.
func (z *SevenZip) Rename(ctx context.Context, archivePath, oldPath, newName string) error {
	if strings.HasSuffix(oldPath, "/") {
		return &BackendError{Op: "rename", Err: errors.New("renaming folders is not supported")}
	}
	if err := ValidateEntryName(newName); err != nil {
		return &BackendError{Op: "rename", Err: err}
	}

	tmp, err := os.MkdirTemp("", "rarc-rename-")
	if err != nil {
		return &BackendError{Op: "rename", Err: err}
	}
	defer os.RemoveAll(tmp)

	if _, err := z.exec(ctx, "rename", nil, "e", archivePath, oldPath, "-o"+tmp, "-y"); err != nil {
		return err
	}
	if _, err := z.exec(ctx, "rename", nil, "d", archivePath, oldPath, "-y"); err != nil {
		return err
	}

	src, err := os.Open(filepath.Join(tmp, Entry{Path: oldPath}.Name()))
	if err != nil {
		return &BackendError{Op: "rename", Err: err}
	}
	defer src.Close()
	newPath := ParentFolder(oldPath) + newName
	_, err = z.exec(ctx, "rename", src, "a", archivePath, "-si"+newPath, "-y")
	return err
}

// CreateFolder records an explicit directory entry inside the archive. The
// direct route stores an empty stdin stream under the folder's name; formats
// that refuse it get a placeholder file that is added and then deleted.
func (z *SevenZip) CreateFolder(ctx context.Context, archivePath, folder string) error {
	folder = NormalizeFolder(folder)
	if folder == "" || strings.Contains(folder, "..") {
		return &BackendError{Op: "create folder", Err: fmt.Errorf("invalid folder path %q", folder)}
	}

	if _, err := z.exec(ctx, "create folder", strings.NewReader(""), "a", archivePath, "-si"+folder, "-y"); err == nil {
		return nil
	}

	placeholder := folder + ".rarc_placeholder"
	if _, err := z.exec(ctx, "create folder", strings.NewReader(""), "a", archivePath, "-si"+placeholder, "-y"); err != nil {
		return err
	}
	if _, err := z.exec(ctx, "create folder", nil, "d", archivePath, placeholder, "-y"); err != nil {
		// The folder exists; a stuck placeholder only clutters it.
		z.log.Warn().Str("placeholder", placeholder).Msg("could not remove placeholder")
	}
	return nil
}

// AddPaths compresses local files and directories (recursively) into the
// archive root, keeping their base names.
func (z *SevenZip) AddPaths(ctx context.Context, archivePath string, localPaths []string) error {
	if len(localPaths) == 0 {
		return nil
	}
	args := append([]string{"a", archivePath, "-y"}, localPaths...)
	_, err := z.exec(ctx, "add", nil, args...)
	return err
}

// Transfer re-homes file entries under destFolder: extract each to a temp
// dir, add the content back under the destination path, and, when
// removeOriginal is set, delete the source entry. Folder sources are
// rejected for the same reason as in Rename.
func (z *SevenZip) Transfer(ctx context.Context, archivePath string, paths []string, destFolder string, removeOriginal bool) error {
	op := "copy"
	if removeOriginal {
		op = "move"
	}
	destFolder = NormalizeFolder(destFolder)
	for _, p := range paths {
		if strings.HasSuffix(p, "/") {
			return &BackendError{Op: op, Err: fmt.Errorf("moving folders is not supported (%s)", p)}
		}
	}

	tmp, err := os.MkdirTemp("", "rarc-transfer-")
	if err != nil {
		return &BackendError{Op: op, Err: err}
	}
	defer os.RemoveAll(tmp)

	for _, p := range paths {
		name := Entry{Path: p}.Name()
		newPath := destFolder + name
		if newPath == p {
			continue
		}
		if _, err := z.exec(ctx, op, nil, "e", archivePath, p, "-o"+tmp, "-y"); err != nil {
			return err
		}
		src, err := os.Open(filepath.Join(tmp, name))
		if err != nil {
			return &BackendError{Op: op, Err: err}
		}
		_, addErr := z.exec(ctx, op, src, "a", archivePath, "-si"+newPath, "-y")
		src.Close()
		if addErr != nil {
			return addErr
		}
		if removeOriginal {
			if _, err := z.exec(ctx, op, nil, "d", archivePath, p, "-y"); err != nil {
				return err
			}
		}
	}
	return nil
}

// Create makes a new empty archive of the given kind ("zip", "7z", ...):
// compress one empty temp file, then delete it from the result. 7-Zip has no
// direct way to write an empty container.
func (z *SevenZip) Create(ctx context.Context, archivePath, kind string) error {
	if _, err := os.Stat(archivePath); err == nil {
		return &BackendError{Op: "create archive", Err: fmt.Errorf("%s already exists", archivePath)}
	}

	tmp, err := os.CreateTemp("", "rarc-empty-*.tmp")
	if err != nil {
		return &BackendError{Op: "create archive", Err: err}
	}
	tmpName := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpName)

	args := []string{"a", "-t" + kind, "-y"}
	if kind == "7z" {
		args = append(args, "-mx=9")
	}
	args = append(args, archivePath, tmpName)
	if _, err := z.exec(ctx, "create archive", nil, args...); err != nil {
		return err
	}
	_, err = z.exec(ctx, "create archive", nil, "d", archivePath, filepath.Base(tmpName), "-y")
	return err
}

// KindForPath maps an archive filename to the 7-Zip type identifier used when
// creating it.
func KindForPath(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "7z":
		return "7z"
	case "tar":
		return "tar"
	case "gz", "gzip":
		return "gzip"
	case "bz2", "bzip2":
		return "bzip2"
	default:
		return "zip"
	}
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "…" + s[len(s)-n:]
}
