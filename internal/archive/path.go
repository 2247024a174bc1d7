package archive

import (
	"fmt"
	"strings"
)

// Folder paths name virtual directories inside an archive. The empty string
// is the root; any other folder is slash-joined segments with exactly one
// trailing slash and no leading slash.

// NormalizeFolder converts free-form folder text to canonical form.
func NormalizeFolder(folder string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return ""
	}
	return folder + "/"
}

// ParentFolder returns the folder one level above path, which may be a folder
// path or an entry path. Top-level paths, and malformed input with a leading
// slash, clamp to the root.
func ParentFolder(path string) string {
	trimmed := strings.TrimSuffix(path, "/")
	i := strings.LastIndexByte(trimmed, '/')
	if i <= 0 {
		return ""
	}
	return trimmed[:i+1]
}

// FolderName returns the last segment of a folder path, or "" for the root.
func FolderName(folder string) string {
	trimmed := strings.TrimSuffix(folder, "/")
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// JoinFolder appends one segment to a folder path.
func JoinFolder(folder, name string) string {
	return NormalizeFolder(strings.TrimSuffix(folder, "/") + "/" + name)
}

// Crumb is one breadcrumb segment: a display label plus the folder path
// navigating to it would use.
type Crumb struct {
	Label  string
	Folder string
}

// SplitCrumbs expands a folder path into cumulative breadcrumb segments,
// outermost first. The root produces no segments.
func SplitCrumbs(folder string) []Crumb {
	folder = NormalizeFolder(folder)
	if folder == "" {
		return nil
	}
	segments := strings.Split(strings.TrimSuffix(folder, "/"), "/")
	crumbs := make([]Crumb, 0, len(segments))
	acc := ""
	for _, seg := range segments {
		acc += seg + "/"
		crumbs = append(crumbs, Crumb{Label: seg, Folder: acc})
	}
	return crumbs
}

// ValidateEntryName rejects names that cannot appear as a single path segment
// inside an archive.
func ValidateEntryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name %q must not contain path separators", name)
	}
	return nil
}
