// Package git provides the git backend for gitward.
//
// This package shells out to the system git binary. It implements
// repository discovery, working tree status with caching, remote
// inspection, and a blocking push operation that streams live progress
// events parsed from git's stderr.
//
// # Architecture
//
// The package is organized around these core types:
//
//   - Manager: entry point, discovers and opens repositories
//   - Repository: a git repository with all operations
//   - ProgressEvent: a raw progress value emitted during a push
//
// Create a manager and open a repository:
//
//	mgr := git.NewManager(git.ManagerConfig{})
//	repo, err := mgr.Discover("/path/to/project/src")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Push with live progress:
//
//	events := make(chan git.ProgressEvent, 16)
//	go func() {
//	    for ev := range events {
//	        fmt.Println(ev)
//	    }
//	}()
//	err = repo.Push(git.PushOptions{Remote: "origin", Branch: "main"}, events)
//
// Push blocks for the full duration of the operation, including network
// I/O. Callers that need a responsive UI should invoke it from a worker
// goroutine; the jobs package provides that coordination.
package git
