package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	DirectoryFg tcell.Color
	FileFg      tcell.Color
	MutedFg     tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	CursorBg    tcell.Color
	CursorFg    tcell.Color
	StatusBg    tcell.Color
	StatusFg    tcell.Color
	ErrorFg     tcell.Color
	SuccessFg   tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		DirectoryFg: tcell.Color33,
		FileFg:      tcell.ColorDefault,
		MutedFg:     tcell.ColorLightSlateGray,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		CursorBg:    tcell.Color237, // dark grey row under the keyboard cursor
		CursorFg:    tcell.ColorWhite,
		StatusBg:    tcell.ColorDefault,
		StatusFg:    tcell.ColorDefault,
		ErrorFg:     tcell.ColorRed,
		SuccessFg:   tcell.ColorGreen,
	}
}
