package archive

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// modifiedLayout is the timestamp format 7-Zip prints in -slt listings.
const modifiedLayout = "2006-01-02 15:04:05"

// ParseListing converts `7z l -slt` output into entries. Directory paths gain
// a trailing slash, duplicate paths collapse, and intermediate directories the
// listing never names are synthesized so every deep path is reachable by
// walking child folders down from the root.
func ParseListing(output string) []Entry {
	var (
		entries []Entry
		seen    = make(map[string]struct{})

		path  string
		size  int64
		isDir bool
		mod   time.Time
		have  bool
		body  bool
	)

	commit := func() {
		if !have {
			return
		}
		p := strings.ReplaceAll(path, `\`, "/")
		p = strings.TrimPrefix(p, "/")
		if isDir && !strings.HasSuffix(p, "/") {
			p += "/"
		}
		entrySize, entryMod := size, mod
		path, size, isDir, mod, have = "", 0, false, time.Time{}, false

		if junkPath(p) {
			return
		}
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		dir := strings.HasSuffix(p, "/")
		if dir {
			entrySize = 0
		}
		entries = append(entries, Entry{
			Path:      p,
			IsDir:     dir,
			Size:      entrySize,
			Modified:  entryMod,
			TypeLabel: TypeLabelFor(p, dir),
		})
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))

		// Entry blocks follow the "----------" separator; everything above
		// it describes the archive container itself.
		if !body {
			body = strings.HasPrefix(line, "----------")
			continue
		}

		switch {
		case strings.HasPrefix(line, "Path = "):
			commit()
			path = strings.TrimPrefix(line, "Path = ")
			have = true
		case strings.HasPrefix(line, "Size = "):
			if n, err := strconv.ParseInt(strings.TrimPrefix(line, "Size = "), 10, 64); err == nil {
				size = n
			}
		case strings.HasPrefix(line, "Folder = "):
			isDir = isDir || strings.TrimPrefix(line, "Folder = ") == "+"
		case strings.HasPrefix(line, "Attributes = "):
			// Formats without the Folder field mark directories through the
			// attribute string.
			isDir = isDir || strings.HasPrefix(strings.TrimPrefix(line, "Attributes = "), "D")
		case strings.HasPrefix(line, "Modified = "):
			if t, ok := parseModified(strings.TrimPrefix(line, "Modified = ")); ok {
				mod = t
			}
		case line == "":
			commit()
		}
	}
	commit()

	entries = append(entries, synthesizeParents(entries, seen)...)
	sortListing(entries)
	return entries
}

func parseModified(value string) (time.Time, bool) {
	// Recent 7-Zip builds append sub-second precision; the leading
	// "YYYY-MM-DD HH:MM:SS" part is stable.
	if len(value) > len(modifiedLayout) {
		value = value[:len(modifiedLayout)]
	}
	t, err := time.Parse(modifiedLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// synthesizeParents returns directory entries for every intermediate folder
// the listing references but does not itself contain.
func synthesizeParents(entries []Entry, seen map[string]struct{}) []Entry {
	var extra []Entry
	for _, e := range entries {
		for folder := ParentFolder(e.Path); folder != ""; folder = ParentFolder(folder) {
			if _, ok := seen[folder]; ok {
				continue
			}
			seen[folder] = struct{}{}
			extra = append(extra, Entry{
				Path:      folder,
				IsDir:     true,
				TypeLabel: TypeLabelFor(folder, true),
			})
		}
	}
	return extra
}

// junkPath reports whether a path value is listing noise rather than an
// archive member.
func junkPath(p string) bool {
	if p == "" {
		return true
	}
	if strings.Contains(p, "[MESSAGES]") ||
		strings.Contains(p, "Errors:") ||
		strings.Contains(p, "Warnings:") {
		return true
	}
	for _, prefix := range []string{
		"Scanning the drive for archives",
		"7-Zip",
		"Listing archive:",
		"----------",
		"Path = ",
		"Size = ",
		"Folder = ",
		"Modified = ",
	} {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// sortListing orders dirs first, then by path. The browse layer re-sorts for
// display; this keeps engine output deterministic.
func sortListing(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Path < entries[j].Path
	})
}
