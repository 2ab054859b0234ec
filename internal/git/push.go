package git

import (
	"fmt"
	"io"
	"strings"
)

// PushOptions configures push behavior.
type PushOptions struct {
	// Remote is the remote to push to.
	Remote string

	// Branch is the branch to push. Empty pushes the current branch.
	Branch string

	// SetUpstream sets upstream tracking.
	SetUpstream bool

	// Force forces the push.
	Force bool

	// ForceWithLease is a safer force push.
	ForceWithLease bool
}

// args builds the git argv for the push.
func (o PushOptions) args() []string {
	args := []string{"push", "--progress"}

	if o.SetUpstream {
		args = append(args, "-u")
	}
	if o.Force {
		args = append(args, "--force")
	}
	if o.ForceWithLease {
		args = append(args, "--force-with-lease")
	}

	if o.Remote != "" {
		args = append(args, o.Remote)
		if o.Branch != "" {
			args = append(args, o.Branch)
		}
	}

	return args
}

// Push pushes changes to a remote, emitting raw progress events to sink
// as git reports them. The call blocks for the full duration of the
// operation, including network I/O. It emits zero or more events and
// never closes sink; termination signaling belongs to the caller.
//
// Push deliberately does not hold the repository lock: a push can run
// for minutes and status polling must stay responsive meanwhile.
func (r *Repository) Push(opts PushOptions, sink chan<- ProgressEvent) error {
	cmd := newGitCommand(r.path, opts.args()...).toExecCmd()

	// Progress goes to stderr. Keep the full transcript for error
	// reporting while feeding each update to the parser as it arrives.
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start push: %w", err)
	}

	transcript, scanErr := streamProgress(stderr, sink)
	waitErr := cmd.Wait()

	r.InvalidateStatus()

	// A failed push is diagnosed from the transcript even when the
	// stream broke; a broken stream on a successful push is still an
	// error, because the transcript the caller may log is incomplete.
	switch {
	case waitErr != nil:
		return pushError(transcript)
	case scanErr != nil:
		return fmt.Errorf("read push progress: %w", scanErr)
	}

	return nil
}

// streamProgress feeds each stderr update to sink as it arrives and
// accumulates the full transcript for error mapping. The returned error
// is the scanner's: a mid-stream read failure, not a push failure.
func streamProgress(r io.Reader, sink chan<- ProgressEvent) (string, error) {
	var transcript strings.Builder
	scanner := newProgressScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			transcript.WriteString(line)
			transcript.WriteByte('\n')
		}

		if ev, ok := parseProgressLine(line); ok {
			sink <- ev
		}
	}

	return transcript.String(), scanner.Err()
}

// pushError maps a failed push's stderr transcript to a sentinel error
// carrying a human-readable message.
func pushError(transcript string) error {
	msg := lastNonEmptyLine(transcript)

	lower := strings.ToLower(transcript)
	switch {
	case strings.Contains(lower, "rejected"):
		return fmt.Errorf("%w: %s", ErrPushRejected, msg)
	case strings.Contains(lower, "no upstream"),
		strings.Contains(lower, "has no upstream branch"):
		return fmt.Errorf("%w: %s", ErrNoUpstream, msg)
	case strings.Contains(lower, "authentication failed"),
		strings.Contains(lower, "could not read username"),
		strings.Contains(lower, "permission denied"):
		return fmt.Errorf("%w: %s", ErrAuthenticationFailed, msg)
	default:
		return fmt.Errorf("push: %s", msg)
	}
}

// lastNonEmptyLine returns the final informative line of a transcript,
// preferring lines git prefixes with "error:" or "fatal:".
func lastNonEmptyLine(transcript string) string {
	lines := strings.Split(transcript, "\n")

	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "error:") || strings.HasPrefix(line, "fatal:") {
			return line
		}
	}

	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}

	return "push failed"
}
