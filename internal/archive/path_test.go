package archive

import (
	"reflect"
	"testing"
)

func TestNormalizeFolder(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"/", ""},
		{"docs", "docs/"},
		{"docs/", "docs/"},
		{"/docs/", "docs/"},
		{"a/b", "a/b/"},
		{"//a/b//", "a/b/"},
	}
	for _, c := range cases {
		if got := NormalizeFolder(c.in); got != c.want {
			t.Errorf("NormalizeFolder(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// The parent of a top-level path is the root. Input with a leading slash is
// malformed (folder paths never start with one) and clamps to the root
// instead of producing a distinct "/" marker.
func TestParentFolder(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"docs/", ""},
		{"docs/sub/", "docs/"},
		{"a/b/c/", "a/b/"},
		{"docs/readme.txt", "docs/"},
		{"readme.txt", ""},
		{"/rooted", ""},
		{"/rooted/deep", "rooted/"},
	}
	for _, c := range cases {
		if got := ParentFolder(c.in); got != c.want {
			t.Errorf("ParentFolder(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestJoinFolder(t *testing.T) {
	if got := JoinFolder("", "docs"); got != "docs/" {
		t.Errorf("JoinFolder root: got %q, want %q", got, "docs/")
	}
	if got := JoinFolder("a/", "b"); got != "a/b/" {
		t.Errorf("JoinFolder nested: got %q, want %q", got, "a/b/")
	}
}

func TestFolderName(t *testing.T) {
	if got := FolderName(""); got != "" {
		t.Errorf("FolderName root: got %q, want empty", got)
	}
	if got := FolderName("a/b/"); got != "b" {
		t.Errorf("FolderName nested: got %q, want %q", got, "b")
	}
	if got := FolderName("top/"); got != "top" {
		t.Errorf("FolderName top-level: got %q, want %q", got, "top")
	}
}

func TestSplitCrumbs(t *testing.T) {
	got := SplitCrumbs("a/b/c/")
	want := []Crumb{
		{Label: "a", Folder: "a/"},
		{Label: "b", Folder: "a/b/"},
		{Label: "c", Folder: "a/b/c/"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitCrumbs: got %v, want %v", got, want)
	}

	if crumbs := SplitCrumbs(""); len(crumbs) != 0 {
		t.Errorf("SplitCrumbs root: expected no segments, got %v", crumbs)
	}
}

func TestValidateEntryName(t *testing.T) {
	for _, bad := range []string{"", "  ", ".", "..", "a/b", `a\b`} {
		if err := ValidateEntryName(bad); err == nil {
			t.Errorf("ValidateEntryName(%q): expected error", bad)
		}
	}
	for _, good := range []string{"readme.txt", "New Folder", "архив", "a.b.c"} {
		if err := ValidateEntryName(good); err != nil {
			t.Errorf("ValidateEntryName(%q): unexpected error %v", good, err)
		}
	}
}

func TestEntryName(t *testing.T) {
	cases := []struct {
		path, want string
	}{
		{"readme.txt", "readme.txt"},
		{"docs/readme.txt", "readme.txt"},
		{"docs/", "docs"},
		{"a/b/c/", "c"},
	}
	for _, c := range cases {
		if got := (Entry{Path: c.path}).Name(); got != c.want {
			t.Errorf("Name of %q: got %q, want %q", c.path, got, c.want)
		}
	}
}

func TestTypeLabelFor(t *testing.T) {
	cases := []struct {
		path  string
		isDir bool
		want  string
	}{
		{"docs/", true, "Folder"},
		{"readme.txt", false, "Text document"},
		{"photo.JPG", false, "Image"},
		{"notes.md", false, "Markdown document"},
		{"data.xyz", false, "XYZ file"},
		{"Makefile", false, "File"},
	}
	for _, c := range cases {
		if got := TypeLabelFor(c.path, c.isDir); got != c.want {
			t.Errorf("TypeLabelFor(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}
