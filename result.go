package fetchcache

// Result is the three-way outcome of a synchronous lookup.
//
// Exactly one of the three states holds:
//   - Ready: the fetch resolved; Value carries the decoded body.
//   - Failed: the fetch resolved with an error; Err carries it.
//   - Pending: the fetch is still in flight; Handle exposes the entry so the
//     caller can suspend on Handle().Done() and re-issue the lookup after it
//     settles.
//
// A failed outcome always outranks pending, and a ready outcome is never
// re-fetched.
type Result struct {
	state resultState
	value any
	err   error
	entry *Entry
}

type resultState int

const (
	statePending resultState = iota
	stateReady
	stateFailed
)

func readyResult(v any) Result      { return Result{state: stateReady, value: v} }
func failedResult(err error) Result { return Result{state: stateFailed, err: err} }
func pendingResult(e *Entry) Result { return Result{state: statePending, entry: e} }

func (r Result) Ready() bool   { return r.state == stateReady }
func (r Result) Failed() bool  { return r.state == stateFailed }
func (r Result) Pending() bool { return r.state == statePending }

// Value is the decoded response body; meaningful only when Ready.
func (r Result) Value() any { return r.value }

// Err is the cached failure; non-nil exactly when Failed.
func (r Result) Err() error { return r.err }

// Handle is the in-flight entry; non-nil exactly when Pending.
func (r Result) Handle() *Entry { return r.entry }
