package release

// Notifier receives progress and result events from the pipeline. The
// pipeline treats it as fire-and-forget: implementations must not block,
// and their failures are invisible to the release run.
//
// The CLI supplies a text/JSON implementation; a host editor embedding the
// pipeline would supply one backed by its notification service.
type Notifier interface {
	// Info reports a non-terminal event (gate skip, step progress).
	Info(title, detail string)

	// Success reports a completed release.
	Success(title, detail string)

	// Error reports a failed step with its diagnostic text.
	Error(title, detail string)
}

// NopNotifier discards all events. Useful for tests and embedding contexts
// that only consume the returned Outcome.
type NopNotifier struct{}

func (NopNotifier) Info(title, detail string)    {}
func (NopNotifier) Success(title, detail string) {}
func (NopNotifier) Error(title, detail string)   {}
