// Package jobs coordinates long-running git operations in the background.
//
// A Controller owns one job kind (push today). The UI goroutine calls
// Request to start a run and then keeps polling the accessors; it never
// blocks on the operation itself. Each accepted request spawns exactly
// two goroutines for the duration of one run:
//
//   - the worker, which drives the blocking backend call and owns the
//     run's lifecycle, and
//   - the progress relay, which drains the raw backend progress events,
//     normalizes them into a stable {phase, percent} shape, and wakes
//     the UI through the Notifier.
//
// At most one run per controller is in flight; a Request issued while a
// run is pending is rejected without disturbing it. Completion is
// observable through a payload-less notification: receivers re-poll
// IsPending, Progress, and LastResult to learn what changed.
//
// Coordination happens over three independently locked slots (pending
// request, latest progress, last result) with copy-in/copy-out access,
// and one raw-event channel per run whose close is the terminal
// sentinel. No slot is ever held across a call into another slot or
// across I/O, and every worker exit path releases the pending state, so
// a failed run can never leave the controller stuck busy.
package jobs
