package browse

// DispatchFunc delivers a closure to the goroutine that owns the session,
// typically by posting it into the application's event loop.
type DispatchFunc func(func())

// Runner executes a session operation off the owning goroutine. op performs
// the blocking work and returns a settle closure; the runner must hand that
// closure back to the owning goroutine.
type Runner interface {
	Run(op func() func())
}

// NewGoroutineRunner constructs the default runner: op runs on a fresh
// goroutine and its settle closure comes back through dispatch.
func NewGoroutineRunner(dispatch DispatchFunc) Runner {
	return &goroutineRunner{dispatch: dispatch}
}

type goroutineRunner struct {
	dispatch DispatchFunc
}

func (r *goroutineRunner) Run(op func() func()) {
	go func() {
		settle := op()
		r.dispatch(settle)
	}()
}
