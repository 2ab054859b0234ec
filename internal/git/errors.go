package git

import "errors"

// Error types for git operations.
var (
	// ErrNotRepository indicates the path is not a git repository.
	ErrNotRepository = errors.New("not a git repository")

	// ErrRepositoryNotFound indicates no repository was found.
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrRemoteNotFound indicates the remote was not found.
	ErrRemoteNotFound = errors.New("remote not found")

	// ErrNoUpstream indicates the current branch has no upstream.
	ErrNoUpstream = errors.New("no upstream configured")

	// ErrPushRejected indicates the remote rejected the push.
	ErrPushRejected = errors.New("push rejected")

	// ErrAuthenticationFailed indicates authentication failed.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrManagerClosed indicates the manager has been closed.
	ErrManagerClosed = errors.New("manager closed")
)
