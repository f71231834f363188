package batch

// Progress receives a notification per processed input file. Runs
// inject one; the CLI wires it to logging.
type Progress interface {
	// File reports that one input file has been handled, whether it
	// succeeded or failed.
	File(path string)
}

// ProgressFunc adapts a plain function to the Progress interface.
type ProgressFunc func(path string)

// File calls f(path).
func (f ProgressFunc) File(path string) {
	f(path)
}

// nopProgress is used when no reporter is injected.
type nopProgress struct{}

func (nopProgress) File(string) {}
