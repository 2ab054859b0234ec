package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Repository represents a git repository.
type Repository struct {
	path string

	mu sync.RWMutex

	// Status cache
	statusCache     *Status
	statusCacheTime time.Time
	statusCacheTTL  time.Duration
}

// Status summarizes the working tree for display purposes.
type Status struct {
	// Branch is the current branch name, empty when HEAD is detached.
	Branch string

	// Upstream is the upstream branch name (e.g., "origin/main").
	Upstream string

	// Ahead is the number of commits ahead of upstream.
	Ahead int

	// Behind is the number of commits behind upstream.
	Behind int

	// Staged is the number of staged changes.
	Staged int

	// Unstaged is the number of unstaged changes.
	Unstaged int

	// Untracked is the number of untracked files.
	Untracked int

	// Conflicts is the number of unmerged paths.
	Conflicts int

	// IsDetached indicates detached HEAD state.
	IsDetached bool

	// HeadCommit is the current HEAD commit hash (short), set when detached.
	HeadCommit string
}

// HasChanges returns true if there are any changes in the working tree.
func (s *Status) HasChanges() bool {
	return s.Staged > 0 || s.Unstaged > 0 || s.Untracked > 0 || s.Conflicts > 0
}

// openRepository opens an existing git repository.
func openRepository(path string, cacheTTL time.Duration) (*Repository, error) {
	// Verify it's a git repository. .git can be a directory or a file
	// (for worktrees).
	gitDir := filepath.Join(path, ".git")
	info, err := os.Stat(gitDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("stat .git: %w", err)
	}

	if !info.IsDir() {
		content, err := os.ReadFile(gitDir)
		if err != nil {
			return nil, fmt.Errorf("read .git file: %w", err)
		}
		if !bytes.HasPrefix(content, []byte("gitdir:")) {
			return nil, ErrNotRepository
		}
	}

	return &Repository{
		path:           path,
		statusCacheTTL: cacheTTL,
	}, nil
}

// discoverRepository finds the repository root from any path within it.
func discoverRepository(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs path: %w", err)
	}

	current := absPath
	for {
		gitDir := filepath.Join(current, ".git")
		if _, err := os.Stat(gitDir); err == nil {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached root
			return "", ErrRepositoryNotFound
		}
		current = parent
	}
}

// Path returns the repository root path.
func (r *Repository) Path() string {
	return r.path
}

// git executes a git command in the repository and returns its stdout.
func (r *Repository) git(args ...string) (string, error) {
	cmd := newGitCommand(r.path, args...)
	return cmd.run()
}

// gitCommand represents a git invocation.
type gitCommand struct {
	dir  string
	args []string
}

// newGitCommand creates a new git command.
func newGitCommand(dir string, args ...string) *gitCommand {
	return &gitCommand{dir: dir, args: args}
}

// run executes the git command and captures its output.
func (c *gitCommand) run() (string, error) {
	cmd := exec.Command("git", c.args...)
	if c.dir != "" {
		cmd.Dir = c.dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %s", strings.Join(c.args, " "), strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}

// toExecCmd converts gitCommand to an exec.Cmd for custom stream handling.
func (c *gitCommand) toExecCmd() *exec.Cmd {
	cmd := exec.Command("git", c.args...)
	if c.dir != "" {
		cmd.Dir = c.dir
	}
	return cmd
}

// Status returns the working tree status.
// Results are cached for performance.
func (r *Repository) Status() (*Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.statusCache != nil && time.Since(r.statusCacheTime) < r.statusCacheTTL {
		return r.statusCache, nil
	}

	status, err := r.statusLocked()
	if err != nil {
		return nil, err
	}

	r.statusCache = status
	r.statusCacheTime = time.Now()
	return status, nil
}

// statusLocked fetches fresh status (caller must hold lock).
func (r *Repository) statusLocked() (*Status, error) {
	output, err := r.git("status", "--porcelain=v2", "--branch", "--untracked-files=all")
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}

	status := &Status{}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		switch line[0] {
		case '#':
			parseBranchHeader(status, line)
		case '1', '2':
			// Ordinary or renamed entry: XY flags are at fields[1].
			fields := strings.Fields(line)
			if len(fields) < 2 || len(fields[1]) < 2 {
				continue
			}
			if fields[1][0] != '.' {
				status.Staged++
			}
			if fields[1][1] != '.' {
				status.Unstaged++
			}
		case 'u':
			status.Conflicts++
		case '?':
			status.Untracked++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if status.Branch == "" || status.Branch == "(detached)" {
		status.Branch = ""
		status.IsDetached = true
	}

	return status, nil
}

// parseBranchHeader parses a porcelain v2 branch header line.
// Headers: "# branch.oid <hash>", "# branch.head <name>",
// "# branch.upstream <remote>/<name>", "# branch.ab +<ahead> -<behind>".
func parseBranchHeader(status *Status, line string) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return
	}

	switch fields[1] {
	case "branch.oid":
		if fields[2] != "(initial)" && len(fields[2]) >= 7 {
			status.HeadCommit = fields[2][:7]
		}
	case "branch.head":
		status.Branch = fields[2]
	case "branch.upstream":
		status.Upstream = fields[2]
	case "branch.ab":
		if len(fields) >= 4 {
			status.Ahead, _ = strconv.Atoi(strings.TrimPrefix(fields[2], "+"))
			status.Behind, _ = strconv.Atoi(strings.TrimPrefix(fields[3], "-"))
		}
	}
}

// CurrentBranch returns the checked-out branch name, or an empty string
// when HEAD is detached.
func (r *Repository) CurrentBranch() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	output, err := r.git("branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}
	return strings.TrimSpace(output), nil
}

// InvalidateStatus drops the cached status so the next Status call
// re-reads the working tree.
func (r *Repository) InvalidateStatus() {
	r.mu.Lock()
	r.statusCache = nil
	r.mu.Unlock()
}

// close closes the repository.
func (r *Repository) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statusCache = nil
}
