package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/gitward/internal/git"
	"github.com/dshills/gitward/internal/jobs"
)

// statusRefreshInterval bounds how stale the displayed working-tree
// status can get without user input.
const statusRefreshInterval = 2 * time.Second

// Run executes the event loop until quit. It returns ErrQuit on a
// normal exit.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return &InitError{Component: "screen", Err: err}
		}
		app.screen = screen
	}
	if err := app.screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer app.screen.Fini()
	defer app.close()

	app.refreshStatus()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go app.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(statusRefreshInterval)
	defer ticker.Stop()

	for {
		app.draw()

		select {
		case ev, ok := <-events:
			if !ok {
				return ErrQuit
			}
			if app.handleEvent(ev) {
				close(quit)
				return ErrQuit
			}

		case n := <-app.notifier.C():
			app.handleNotification(n)

		case <-ticker.C:
			app.refreshStatus()

		case <-app.done:
			close(quit)
			return ErrQuit
		}
	}
}

// handleEvent processes one terminal event and reports whether the
// application should quit.
func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		app.screen.Sync()
	case *tcell.EventKey:
		return app.handleKey(ev)
	}
	return false
}

// handleKey routes a key press. While the popup is visible it owns the
// keyboard except for Enter, which submits.
func (app *Application) handleKey(ev *tcell.EventKey) bool {
	if app.input.IsVisible() {
		if ev.Key() == tcell.KeyEnter {
			app.submitPush()
			return false
		}
		app.input.HandleKey(ev)
		return false
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'p':
			app.openPushPopup(false)
		case 'P':
			app.openPushPopup(true)
		case 'r':
			app.repo.InvalidateStatus()
			app.refreshStatus()
		}
	}
	return false
}

// openPushPopup shows the branch entry popup prefilled with the current
// branch.
func (app *Application) openPushPopup(force bool) {
	app.forcePush = force
	if force {
		app.input.SetTitle("force push")
	} else {
		app.input.SetTitle("push")
	}

	branch := ""
	if app.status != nil {
		branch = app.status.Branch
	}
	if branch == "" && app.repo != nil {
		// Status may not have loaded yet; ask git directly.
		if b, err := app.repo.CurrentBranch(); err == nil {
			branch = b
		}
	}
	app.input.SetText(branch)
	app.input.Show()
	app.statusMsg = ""
}

// submitPush turns the popup contents into a push request. A rejected
// request (one already in flight) surfaces as a status message; the
// in-flight job is never disturbed.
func (app *Application) submitPush() {
	branch := app.input.Text()
	if branch == "" {
		app.statusMsg = "branch name required"
		return
	}

	req := jobs.PushRequest{
		Remote:      app.cfg.Push.DefaultRemote,
		Branch:      branch,
		SetUpstream: app.needsUpstream(),
	}
	if app.forcePush {
		if app.cfg.Push.ForceWithLease {
			req.ForceWithLease = true
		} else {
			req.Force = true
		}
	}

	// Catch a missing remote here instead of spending a job on it.
	if app.repo != nil {
		remote, err := app.repo.GetRemote(req.Remote)
		if errors.Is(err, git.ErrRemoteNotFound) {
			app.statusMsg = fmt.Sprintf("unknown remote %q", req.Remote)
			return
		}
		if err == nil {
			app.logger.Debug().Str("url", remote.PushURL).Msg("push target")
		}
	}

	if !app.push.Request(req) {
		app.statusMsg = "a push is already running"
		app.input.Hide()
		return
	}

	app.logger.Info().
		Str("remote", req.Remote).
		Str("branch", req.Branch).
		Bool("force", req.Force || req.ForceWithLease).
		Msg("push requested")
	app.statusMsg = ""
	app.input.Hide()
}

// needsUpstream decides whether the push should establish tracking. The
// cached status answers when present; otherwise git is asked directly.
func (app *Application) needsUpstream() bool {
	if app.status != nil {
		return app.status.Upstream == "" && !app.status.IsDetached
	}
	if app.repo != nil {
		if _, err := app.repo.GetUpstream(); errors.Is(err, git.ErrNoUpstream) {
			return true
		}
	}
	return false
}

// handleNotification reacts to a job wake signal by re-polling state.
func (app *Application) handleNotification(n jobs.Notification) {
	if n.Kind != jobs.KindPush {
		return
	}

	// A completed push changes ahead/behind counts.
	if !app.push.IsPending() {
		app.repo.InvalidateStatus()
		app.refreshStatus()

		if res := app.push.LastResult(); res != nil {
			app.logger.Info().
				Bool("ok", res.OK).
				Str("message", res.Message).
				Msg("push finished")
		}
	}
}

// refreshStatus re-reads the working-tree status for display.
func (app *Application) refreshStatus() {
	status, err := app.repo.Status()
	if err != nil {
		app.logger.Warn().Err(err).Msg("read status")
		app.statusMsg = "status unavailable"
		return
	}
	app.status = status
}
