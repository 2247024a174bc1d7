// Package input translates terminal events into typed actions.
package input

import "github.com/kk-code-lab/rarc/internal/browse"

// Action is one user intent derived from a terminal event. The application
// applies actions to the session and to its own view state.
type Action interface{}

// Cursor movement over the visible list.
type (
	CursorUpAction       struct{}
	CursorDownAction     struct{}
	CursorPageUpAction   struct{}
	CursorPageDownAction struct{}
	CursorHomeAction     struct{}
	CursorEndAction      struct{}
)

// Selection.
type (
	ToggleCursorAction   struct{} // Space
	RangeUpAction        struct{} // Shift+Up
	RangeDownAction      struct{} // Shift+Down
	ClearSelectionAction struct{} // Esc with no filter set
)

// Navigation.
type (
	OpenCursorAction struct{} // Enter on the cursor row
	GoBackAction     struct{}
	GoForwardAction  struct{}
	GoUpAction       struct{}
	RefreshAction    struct{}
)

// Filter editing.
type (
	FilterStartAction     struct{}
	FilterCharAction      struct{ Char rune }
	FilterBackspaceAction struct{}
	FilterAcceptAction    struct{} // Enter: keep the query, leave input mode
	FilterClearAction     struct{} // Esc: drop the query
)

// Archive commands.
type (
	ExtractAction      struct{}
	DeleteAction       struct{}
	RenameAction       struct{}
	NewFolderAction    struct{}
	AddFilesAction     struct{}
	CopyAction         struct{}
	CutAction          struct{}
	PasteAction        struct{}
	OpenArchiveAction  struct{}
	CloseArchiveAction struct{}
)

// Application control.
type (
	QuitAction    struct{}
	SuspendAction struct{}
	ResizeAction  struct{ Width, Height int }
)

// ClickAction is a primary-button press. Hit-testing happens in the
// application, which knows the current layout.
type ClickAction struct {
	X, Y int
	Mods browse.Modifiers
}

// WheelAction scrolls the list by Delta rows; negative scrolls up.
type WheelAction struct{ Delta int }
