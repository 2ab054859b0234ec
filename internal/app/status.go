package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/gitward/internal/git"
	"github.com/dshills/gitward/internal/jobs"
)

// statusLine renders the working-tree summary for the top row.
func statusLine(s *git.Status) string {
	if s == nil {
		return "(no status)"
	}

	var b strings.Builder

	if s.IsDetached {
		fmt.Fprintf(&b, "HEAD detached at %s", s.HeadCommit)
	} else {
		b.WriteString(s.Branch)
		if s.Upstream != "" {
			fmt.Fprintf(&b, " -> %s", s.Upstream)
		} else {
			b.WriteString(" (no upstream)")
		}
	}

	if s.Ahead > 0 {
		fmt.Fprintf(&b, " ahead %d", s.Ahead)
	}
	if s.Behind > 0 {
		fmt.Fprintf(&b, " behind %d", s.Behind)
	}

	if s.HasChanges() {
		b.WriteString(" |")
		if s.Staged > 0 {
			fmt.Fprintf(&b, " staged %d", s.Staged)
		}
		if s.Unstaged > 0 {
			fmt.Fprintf(&b, " unstaged %d", s.Unstaged)
		}
		if s.Untracked > 0 {
			fmt.Fprintf(&b, " untracked %d", s.Untracked)
		}
		if s.Conflicts > 0 {
			fmt.Fprintf(&b, " conflicts %d", s.Conflicts)
		}
	} else {
		b.WriteString(" | clean")
	}

	return b.String()
}

// pushLine renders the push job state for the second row. While a job
// is in flight it shows live progress; otherwise the last outcome.
func pushLine(c *jobs.Controller[jobs.PushRequest, git.ProgressEvent]) string {
	if c.IsPending() {
		if p, ok := c.Progress(); ok {
			return fmt.Sprintf("push: %s", p)
		}
		return "push: starting"
	}

	res := c.LastResult()
	switch {
	case res == nil:
		return "push: idle (p to push, P to force push, q to quit)"
	case res.OK:
		return "push: done"
	default:
		return fmt.Sprintf("push failed: %s", res.Message)
	}
}

// draw repaints the whole screen.
func (app *Application) draw() {
	app.screen.Clear()
	width, height := app.screen.Size()

	style := tcell.StyleDefault
	drawLine(app.screen, 0, width, statusLine(app.status), style.Bold(true))
	drawLine(app.screen, 1, width, pushLine(app.push), style)

	if app.statusMsg != "" && height > 2 {
		drawLine(app.screen, height-1, width, app.statusMsg, style.Reverse(true))
	}

	if app.input.IsVisible() && height > 5 {
		app.input.Draw(app.screen, 2, 3, width-4, style)
	}

	app.screen.Show()
}

// drawLine writes one row of plain text.
func drawLine(screen tcell.Screen, y, width int, s string, style tcell.Style) {
	col := 0
	for _, r := range s {
		if col >= width {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}
