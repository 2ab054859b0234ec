// Package app wires the git backend, the push job controller, and the
// terminal UI into one application and runs the event loop.
//
// The loop is the single consumer of both terminal events and job
// notifications. All job state is read through poll accessors on the
// controller; a notification only means "look again".
package app

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/gitward/internal/config"
	"github.com/dshills/gitward/internal/git"
	"github.com/dshills/gitward/internal/jobs"
	"github.com/dshills/gitward/internal/ui/textinput"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// RepoPath is the repository (or any path inside it). Defaults to
	// the current directory.
	RepoPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string
}

// Application is the central coordinator.
type Application struct {
	cfg    config.Config
	logger zerolog.Logger

	manager *git.Manager
	repo    *git.Repository

	notifier *jobs.Notifier
	push     *jobs.Controller[jobs.PushRequest, git.ProgressEvent]

	input  *textinput.Input
	screen tcell.Screen

	// Display state, owned by the event loop goroutine.
	status    *git.Status
	statusMsg string
	forcePush bool

	logCloser io.Closer
	running   atomic.Bool
	done      chan struct{}
	quitOnce  sync.Once
}

// New creates an Application from options, loading configuration and
// opening the repository.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, &InitError{Component: "config", Err: err}
		}
	}

	logger, logCloser, err := newLogger(cfg.Log)
	if err != nil {
		return nil, &InitError{Component: "logging", Err: err}
	}

	repoPath := opts.RepoPath
	if repoPath == "" {
		repoPath, err = os.Getwd()
		if err != nil {
			return nil, &InitError{Component: "repository", Err: err}
		}
	}

	manager := git.NewManager(git.ManagerConfig{})
	repo, err := manager.Discover(repoPath)
	if err != nil {
		return nil, &InitError{Component: "repository", Err: err}
	}

	notifier := jobs.NewNotifier(cfg.Push.NotifyBuffer)
	push, err := jobs.NewPush(repo, jobs.PushConfig{
		Notifier: notifier,
		Logger:   logger,
		Pacing:   cfg.Push.ProgressDelay,
	})
	if err != nil {
		return nil, &InitError{Component: "push controller", Err: err}
	}

	logger.Info().Str("repo", repo.Path()).Msg("application initialized")

	return &Application{
		cfg:       cfg,
		logger:    logger,
		logCloser: logCloser,
		manager:   manager,
		repo:      repo,
		notifier:  notifier,
		push:      push,
		input:     textinput.New("push", "branch name"),
		done:      make(chan struct{}),
	}, nil
}

// SetScreen injects a screen before Run. Run creates a real terminal
// screen when none was injected.
func (app *Application) SetScreen(s tcell.Screen) {
	app.screen = s
}

// Repository returns the repository the application operates on.
func (app *Application) Repository() *git.Repository {
	return app.repo
}

// Shutdown requests the event loop to exit. Safe to call from any
// goroutine and more than once.
func (app *Application) Shutdown() {
	app.quitOnce.Do(func() {
		close(app.done)
	})
}

// close releases resources after the event loop has exited.
func (app *Application) close() {
	if err := app.manager.Close(); err != nil {
		app.logger.Warn().Err(err).Msg("close repository manager")
	}
	if app.logCloser != nil {
		app.logCloser.Close()
	}
}
