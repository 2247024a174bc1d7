//go:build !windows

package fsnav

// IsHidden reports whether a file is hidden on Unix-like platforms: a name
// starting with a dot.
func IsHidden(_ string, name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// shouldHideFromListing is a no-op outside Windows.
func shouldHideFromListing(string) bool {
	return false
}
