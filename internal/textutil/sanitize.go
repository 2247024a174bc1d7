// Package textutil sanitizes untrusted text before it reaches the terminal.
package textutil

import "strings"

// formattingRuneLabels makes invisible bidi and zero-width characters
// visible. Archive entry names are attacker-controlled, and a right-to-left
// override can disguise an executable as a harmless document name.
var formattingRuneLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x00AD: "⟪SHY⟫",
	0x180E: "⟪MVS⟫",
	0x2060: "⟪WJ⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0x206A: "⟪ISS⟫",
	0x206B: "⟪ASS⟫",
	0x206C: "⟪IAFS⟫",
	0x206D: "⟪AAFS⟫",
	0x206E: "⟪NADS⟫",
	0x206F: "⟪NODS⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeText replaces characters that could corrupt the display: terminal
// controls become '?', whitespace controls become spaces, and invisible
// formatting runes become visible labels. Clean text is returned unchanged
// without allocating.
func SanitizeText(text string) string {
	for _, r := range text {
		if needsReplacement(r) {
			return replaceUnsafe(text)
		}
	}
	return text
}

func needsReplacement(r rune) bool {
	if _, ok := formattingRuneLabels[r]; ok {
		return true
	}
	return (r >= 0 && r < 0x20) || r == 0x7f
}

func replaceUnsafe(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case formattingRuneLabels[r] != "":
			b.WriteString(formattingRuneLabels[r])
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case (r >= 0 && r < 0x20) || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
