package browse

// History is a stack-with-cursor over folder paths with browser semantics:
// going back and then visiting somewhere new discards the forward branch.
type History struct {
	entries []string
	cursor  int
}

// NewHistory returns a history positioned at the archive root.
func NewHistory() *History {
	return &History{entries: []string{""}}
}

// Reset restarts the history at the given folder.
func (h *History) Reset(initial string) {
	h.entries = append(h.entries[:0], initial)
	h.cursor = 0
}

// Visit records a move to folder. Visiting the current folder again is a
// no-op so traversal never produces consecutive duplicates.
func (h *History) Visit(folder string) {
	if len(h.entries) == 0 {
		h.Reset(folder)
		return
	}
	if folder == h.entries[h.cursor] {
		return
	}
	h.entries = append(h.entries[:h.cursor+1], folder)
	h.cursor = len(h.entries) - 1
}

// Back moves the cursor one step toward the oldest entry. ok is false at the
// start of history, with the state untouched.
func (h *History) Back() (folder string, ok bool) {
	if h.cursor <= 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Forward moves the cursor one step toward the newest entry.
func (h *History) Forward() (folder string, ok bool) {
	if h.cursor >= len(h.entries)-1 {
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

func (h *History) CanGoBack() bool { return h.cursor > 0 }

func (h *History) CanGoForward() bool { return h.cursor < len(h.entries)-1 }

// Current returns the folder under the cursor.
func (h *History) Current() string {
	if len(h.entries) == 0 {
		return ""
	}
	return h.entries[h.cursor]
}
