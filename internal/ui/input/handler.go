package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rarc/internal/browse"
)

// Modes exposes the view state the handler needs to route keys.
type Modes interface {
	FilterFocused() bool
	FilterSet() bool
}

// InputHandler converts tcell events to Actions.
type InputHandler struct {
	actionChan  chan Action
	modes       Modes
	prevButtons tcell.ButtonMask
}

// NewInputHandler creates a new input handler.
func NewInputHandler(actionChan chan Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetModes sets the view-mode source for key routing.
func (ih *InputHandler) SetModes(modes Modes) {
	ih.modes = modes
}

// ProcessEvent converts a tcell event into an Action. Returns false when the
// application should quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventMouse:
		return ih.processMouseEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

// processMouseEvent emits wheel scrolls and primary-button presses. Motion
// events with the button still held are suppressed so a drag does not repeat
// the click.
func (ih *InputHandler) processMouseEvent(ev *tcell.EventMouse) bool {
	buttons := ev.Buttons()
	pressed := buttons &^ ih.prevButtons
	ih.prevButtons = buttons

	if buttons&tcell.WheelUp != 0 {
		ih.actionChan <- WheelAction{Delta: -wheelStep}
		return true
	}
	if buttons&tcell.WheelDown != 0 {
		ih.actionChan <- WheelAction{Delta: wheelStep}
		return true
	}
	if pressed&tcell.Button1 == 0 {
		return true
	}

	x, y := ev.Position()
	ih.actionChan <- ClickAction{X: x, Y: y, Mods: clickModifiers(ev.Modifiers())}
	return true
}

const wheelStep = 3

// clickModifiers maps modifier keys to selection behavior: ctrl toggles,
// shift ranges, ctrl+shift extends a range into the existing selection.
func clickModifiers(mods tcell.ModMask) browse.Modifiers {
	return browse.Modifiers{
		Toggle: mods&tcell.ModCtrl != 0,
		Range:  mods&tcell.ModShift != 0,
	}
}

// processKeyEvent handles keyboard input.
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	inFilter := ih.modes != nil && ih.modes.FilterFocused()
	filterSet := ih.modes != nil && ih.modes.FilterSet()

	switch ev.Key() {
	case tcell.KeyEscape:
		if inFilter || filterSet {
			ih.actionChan <- FilterClearAction{}
		} else {
			ih.actionChan <- ClearSelectionAction{}
		}
		return true

	case tcell.KeyCtrlC:
		ih.actionChan <- QuitAction{}
		return false

	case tcell.KeyCtrlW:
		ih.actionChan <- CloseArchiveAction{}
		return true

	case tcell.KeyCtrlZ:
		ih.actionChan <- SuspendAction{}
		return true

	case tcell.KeyUp:
		if ev.Modifiers()&tcell.ModShift != 0 {
			ih.actionChan <- RangeUpAction{}
		} else {
			ih.actionChan <- CursorUpAction{}
		}
		return true

	case tcell.KeyDown:
		if ev.Modifiers()&tcell.ModShift != 0 {
			ih.actionChan <- RangeDownAction{}
		} else {
			ih.actionChan <- CursorDownAction{}
		}
		return true

	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			ih.actionChan <- GoBackAction{}
		}
		return true

	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			ih.actionChan <- GoForwardAction{}
		}
		return true

	case tcell.KeyEnter:
		if inFilter {
			ih.actionChan <- FilterAcceptAction{}
		} else {
			ih.actionChan <- OpenCursorAction{}
		}
		return true

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if inFilter {
			ih.actionChan <- FilterBackspaceAction{}
		} else {
			ih.actionChan <- GoUpAction{}
		}
		return true

	case tcell.KeyDelete:
		if !inFilter {
			ih.actionChan <- DeleteAction{}
		}
		return true

	case tcell.KeyF2:
		if !inFilter {
			ih.actionChan <- RenameAction{}
		}
		return true

	case tcell.KeyF5:
		if !inFilter {
			ih.actionChan <- RefreshAction{}
		}
		return true

	case tcell.KeyPgUp:
		ih.actionChan <- CursorPageUpAction{}
		return true

	case tcell.KeyPgDn:
		ih.actionChan <- CursorPageDownAction{}
		return true

	case tcell.KeyHome:
		ih.actionChan <- CursorHomeAction{}
		return true

	case tcell.KeyEnd:
		ih.actionChan <- CursorEndAction{}
		return true

	case tcell.KeyRune:
		return ih.processRune(ev, inFilter)

	default:
		return true
	}
}

func (ih *InputHandler) processRune(ev *tcell.EventKey, inFilter bool) bool {
	r := ev.Rune()

	// While the filter input has focus every printable rune extends the
	// query, including command letters and spaces.
	if inFilter {
		ih.actionChan <- FilterCharAction{Char: r}
		return true
	}

	if ev.Modifiers()&tcell.ModShift != 0 {
		// Some terminals deliver Shift+r as 'r' with the shift bit set;
		// fold to uppercase so the 'R' binding still fires.
		r = unicode.ToUpper(r)
	}

	switch r {
	case 'q':
		ih.actionChan <- QuitAction{}
		return false

	case '/':
		ih.actionChan <- FilterStartAction{}

	case '[':
		ih.actionChan <- GoBackAction{}

	case ']':
		ih.actionChan <- GoForwardAction{}

	case 'u':
		ih.actionChan <- GoUpAction{}

	case 'r':
		ih.actionChan <- RefreshAction{}

	case 'R':
		ih.actionChan <- RenameAction{}

	case ' ':
		ih.actionChan <- ToggleCursorAction{}

	case 'e':
		ih.actionChan <- ExtractAction{}

	case 'd':
		ih.actionChan <- DeleteAction{}

	case 'n':
		ih.actionChan <- NewFolderAction{}

	case 'a':
		ih.actionChan <- AddFilesAction{}

	case 'c':
		ih.actionChan <- CopyAction{}

	case 'x':
		ih.actionChan <- CutAction{}

	case 'p':
		ih.actionChan <- PasteAction{}

	case 'o':
		ih.actionChan <- OpenArchiveAction{}
	}

	return true
}
