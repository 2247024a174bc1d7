// Package fsnav lists local directories for the destination and add-entry
// pickers. Archive contents never pass through here.
package fsnav

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Entry is a single file or directory on the local filesystem.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.FullPath, e.Name)
}

// List reads dir and returns its entries sorted directories-first, then by
// name. Hidden entries are skipped unless showHidden is set. Names come back
// NFC-normalized; symlinks to directories count as directories.
func List(dir string, showHidden bool) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			continue
		}

		rawName := de.Name()
		fullPath := filepath.Join(dir, rawName)
		if shouldHideFromListing(fullPath) {
			continue
		}
		if !showHidden && IsHidden(fullPath, rawName) {
			continue
		}

		isDir := de.IsDir()
		isSymlink := info.Mode()&os.ModeSymlink != 0
		if isSymlink {
			if target, err := os.Stat(fullPath); err == nil {
				isDir = target.IsDir()
			}
		}

		entries = append(entries, Entry{
			Name:      norm.NFC.String(rawName),
			FullPath:  fullPath,
			IsDir:     isDir,
			IsSymlink: isSymlink,
			Size:      info.Size(),
			Modified:  info.ModTime(),
			Mode:      info.Mode(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// ListDirs is List restricted to directories, for destination picking.
func ListDirs(dir string, showHidden bool) ([]Entry, error) {
	entries, err := List(dir, showHidden)
	if err != nil {
		return nil, err
	}
	dirs := entries[:0]
	for _, e := range entries {
		if e.IsDir {
			dirs = append(dirs, e)
		}
	}
	return dirs, nil
}
