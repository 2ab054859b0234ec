package jobs

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/gitward/internal/git"
)

// PushRequest describes one requested push. It is immutable once
// accepted; the worker reads it, nothing mutates it.
type PushRequest struct {
	// Remote is the remote name (e.g., "origin").
	Remote string

	// Branch is the branch to push.
	Branch string

	// Force forces the push.
	Force bool

	// ForceWithLease forces the push but refuses to overwrite refs
	// moved by someone else.
	ForceWithLease bool

	// SetUpstream sets upstream tracking.
	SetUpstream bool
}

// PushConfig configures the push controller.
type PushConfig struct {
	// Notifier receives progress and completion wake signals.
	Notifier *Notifier

	// Logger is used for worker and relay diagnostics.
	Logger zerolog.Logger

	// Pacing is an optional delay between progress publishes (default
	// none).
	Pacing time.Duration
}

// NewPush creates the push job controller bound to repo.
func NewPush(repo *git.Repository, cfg PushConfig) (*Controller[PushRequest, git.ProgressEvent], error) {
	return NewController(Config[PushRequest, git.ProgressEvent]{
		Kind: KindPush,
		Run: func(req PushRequest, sink chan<- git.ProgressEvent) error {
			return repo.Push(git.PushOptions{
				Remote:         req.Remote,
				Branch:         req.Branch,
				Force:          req.Force,
				ForceWithLease: req.ForceWithLease,
				SetUpstream:    req.SetUpstream,
			}, sink)
		},
		Normalize: normalizePushProgress,
		Notifier:  cfg.Notifier,
		Logger:    cfg.Logger,
		Pacing:    cfg.Pacing,
	})
}

// normalizePushProgress maps a raw push progress event to the stable
// progress shape. Every known variant is matched explicitly; adding a
// new git.ProgressKind should force a decision here rather than fall
// through silently.
func normalizePushProgress(ev git.ProgressEvent) Progress {
	switch ev.Kind {
	case git.ProgressPacking:
		switch ev.Stage {
		case git.StageAddingObjects:
			return Progress{Phase: PhasePackingObjects, Percent: percent(ev.Current, ev.Total)}
		case git.StageBuildingDeltas:
			return Progress{Phase: PhasePackingDeltas, Percent: percent(ev.Current, ev.Total)}
		}
	case git.ProgressTransfer:
		return Progress{Phase: PhaseTransferring, Percent: percent(ev.Current, ev.Total)}
	}

	// Last resort for kinds this build does not know (reserved for
	// future backend phases): report complete instead of stalling the
	// display on a phase we cannot name.
	return Progress{Phase: PhaseTransferring, Percent: 100}
}
