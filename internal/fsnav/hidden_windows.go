//go:build windows

package fsnav

import "syscall"

const (
	fileAttributeHidden       = 0x02
	fileAttributeSystem       = 0x04
	fileAttributeReparsePoint = 0x0400
)

func attributesOf(path string) (uint32, bool) {
	if path == "" {
		return 0, false
	}
	ptr, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return 0, false
	}
	attrs, err := syscall.GetFileAttributes(ptr)
	if err != nil {
		return 0, false
	}
	return attrs, true
}

// IsHidden reports whether a file carries the Windows hidden attribute,
// falling back to the dot-prefix convention when attributes are unreadable.
func IsHidden(fullPath string, name string) bool {
	if attrs, ok := attributesOf(fullPath); ok {
		return attrs&fileAttributeHidden != 0
	}
	return len(name) > 0 && name[0] == '.'
}

// shouldHideFromListing reports entries that never appear in listings even
// when hidden files are shown, such as compatibility junctions.
func shouldHideFromListing(fullPath string) bool {
	attrs, ok := attributesOf(fullPath)
	if !ok {
		return false
	}
	const protectedMask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protectedMask == protectedMask
}
