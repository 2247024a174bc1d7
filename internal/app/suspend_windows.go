//go:build windows

package app

import "os"

// Windows has no SIGTSTP/SIGCONT, so suspending does nothing and no signal
// announces a resume.
func resumeSignals() []os.Signal { return nil }

func (app *Application) suspendToShell() {
}

func (app *Application) resumeAfterStop() bool {
	return false
}
