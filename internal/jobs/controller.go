package jobs

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Configuration errors.
var (
	// ErrNoRun indicates Config.Run was not set.
	ErrNoRun = errors.New("jobs: run function required")

	// ErrNoNormalize indicates Config.Normalize was not set.
	ErrNoNormalize = errors.New("jobs: normalize function required")

	// ErrNoNotifier indicates Config.Notifier was not set.
	ErrNoNotifier = errors.New("jobs: notifier required")
)

// defaultEventBuffer is the raw progress channel capacity. It only
// smooths bursts; correctness does not depend on it because the worker
// keeps the channel open until the backend has returned.
const defaultEventBuffer = 64

// Result is the outcome of one completed run. Backend failures are
// recorded here as data; they are never propagated as panics.
type Result struct {
	// OK is true when the backend call succeeded.
	OK bool

	// Message carries the human-readable failure description when OK is
	// false.
	Message string
}

// Config configures a Controller for one job kind.
//
// R is the request parameter type, E the raw progress event type the
// backend emits.
type Config[R, E any] struct {
	// Kind names the job kind.
	Kind Kind

	// Run performs the blocking backend operation. It may emit zero or
	// more progress events to sink before returning and must not close
	// sink; run termination is signaled by the worker.
	Run func(req R, sink chan<- E) error

	// Normalize maps one raw event to the stable progress shape.
	Normalize func(ev E) Progress

	// Notifier receives a wake signal for every published progress value
	// and one for run completion.
	Notifier *Notifier

	// Logger is used for worker and relay diagnostics.
	Logger zerolog.Logger

	// Pacing is an optional delay between successive progress publishes,
	// purely to keep fast operations visible to a human observer.
	// Zero (the default) disables it.
	Pacing time.Duration

	// Buffer overrides the raw event channel capacity when positive.
	Buffer int
}

// Controller coordinates background runs of one job kind. All methods
// are safe for concurrent use; the accessors are non-blocking snapshot
// reads intended for a polling UI.
type Controller[R, E any] struct {
	kind      Kind
	run       func(req R, sink chan<- E) error
	normalize func(ev E) Progress
	notifier  *Notifier
	log       zerolog.Logger
	pacing    time.Duration
	buffer    int

	guard    guard[R]
	progress slot[Progress]
	result   slot[Result]
}

// NewController validates cfg and creates a controller in the idle state.
func NewController[R, E any](cfg Config[R, E]) (*Controller[R, E], error) {
	if cfg.Run == nil {
		return nil, ErrNoRun
	}
	if cfg.Normalize == nil {
		return nil, ErrNoNormalize
	}
	if cfg.Notifier == nil {
		return nil, ErrNoNotifier
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = defaultEventBuffer
	}

	return &Controller[R, E]{
		kind:      cfg.Kind,
		run:       cfg.Run,
		normalize: cfg.Normalize,
		notifier:  cfg.Notifier,
		log:       cfg.Logger.With().Str("job", string(cfg.Kind)).Logger(),
		pacing:    cfg.Pacing,
		buffer:    cfg.Buffer,
	}, nil
}

// Kind returns the job kind this controller owns.
func (c *Controller[R, E]) Kind() Kind {
	return c.kind
}

// Request accepts req and starts a background run, returning true, or
// returns false when a run is already in flight. A rejected request
// leaves the pending run completely untouched; it never queues.
// Request itself returns immediately in both cases.
func (c *Controller[R, E]) Request(req R) bool {
	if !c.guard.accept(req) {
		c.log.Debug().Msg("request rejected, run in flight")
		return false
	}

	// A fresh run starts with no progress; last_result intentionally
	// keeps the previous run's outcome until this run completes.
	c.progress.clear()

	go c.work(req)

	return true
}

// IsPending reports whether a run is currently in flight.
func (c *Controller[R, E]) IsPending() bool {
	return c.guard.isPending()
}

// PendingRequest returns a copy of the in-flight request, if any.
func (c *Controller[R, E]) PendingRequest() (R, bool) {
	return c.guard.current()
}

// LastResult returns the most recent completed run's outcome, or nil
// before the first run completes. The value persists across runs until
// the next one finishes; reading never clears it.
func (c *Controller[R, E]) LastResult() *Result {
	res, ok := c.result.load()
	if !ok {
		return nil
	}
	return &res
}

// Progress returns the latest normalized progress for the current or
// most recent run, and false if none has been published yet.
func (c *Controller[R, E]) Progress() (Progress, bool) {
	return c.progress.load()
}

// work drives one run on its own goroutine: it wires the backend's raw
// events into the relay, captures the outcome, and publishes completion.
//
// Side effects are strictly ordered: the relay has exited and the result
// is stored before the guard releases, and the guard releases before the
// completion notification. An observer woken by the notification
// therefore always sees an idle controller whose result matches the
// finished run.
func (c *Controller[R, E]) work(req R) {
	log := c.log.With().Str("run_id", uuid.NewString()).Logger()
	log.Debug().Msg("worker started")

	raw := make(chan E, c.buffer)
	relayDone := make(chan struct{})
	go c.relay(raw, relayDone, log)

	res := c.invoke(req, raw, log)

	// Closing the raw channel is the terminal sentinel: it is ordered
	// after every send, so the relay drains all remaining events before
	// observing it and no event can be lost or reordered.
	close(raw)
	<-relayDone

	c.result.store(res)
	c.guard.release()
	c.notifier.Notify(c.kind)

	log.Debug().Bool("ok", res.OK).Msg("worker finished")
}

// invoke calls the backend, converting both errors and panics into a
// Result. A panicking backend must not wedge the controller: the caller
// still runs the release path.
func (c *Controller[R, E]) invoke(req R, raw chan<- E, log zerolog.Logger) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("backend panicked")
			res = Result{OK: false, Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	if err := c.run(req, raw); err != nil {
		log.Warn().Err(err).Msg("backend failed")
		return Result{OK: false, Message: err.Error()}
	}

	return Result{OK: true}
}

// relay drains raw progress events in order until the channel closes,
// publishing each normalized value and waking the consumer. It performs
// exactly one normalize-and-publish step per event and publishes nothing
// for the close itself; the worker owns the final visible state.
func (c *Controller[R, E]) relay(raw <-chan E, done chan<- struct{}, log zerolog.Logger) {
	defer close(done)

	for ev := range raw {
		p := c.normalize(ev)
		c.progress.store(p)
		c.notifier.Notify(c.kind)

		log.Debug().Str("phase", string(p.Phase)).Int("percent", p.Percent).Msg("progress")

		if c.pacing > 0 {
			time.Sleep(c.pacing)
		}
	}

	log.Debug().Msg("progress relay exited")
}
