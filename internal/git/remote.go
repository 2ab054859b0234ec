package git

import (
	"fmt"
	"sort"
	"strings"
)

// Remote represents a git remote.
type Remote struct {
	// Name is the remote name (e.g., "origin").
	Name string

	// FetchURL is the URL used for fetching.
	FetchURL string

	// PushURL is the URL used for pushing.
	PushURL string
}

// ListRemotes returns all configured remotes, sorted by name.
func (r *Repository) ListRemotes() ([]Remote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	output, err := r.git("remote", "-v")
	if err != nil {
		return nil, fmt.Errorf("list remotes: %w", err)
	}

	// Parse output: name\turl (fetch|push)
	remotes := make(map[string]*Remote)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}

		name := parts[0]
		url := parts[1]
		kind := strings.Trim(parts[2], "()")

		remote, ok := remotes[name]
		if !ok {
			remote = &Remote{Name: name}
			remotes[name] = remote
		}

		switch kind {
		case "fetch":
			remote.FetchURL = url
		case "push":
			remote.PushURL = url
		}
	}

	result := make([]Remote, 0, len(remotes))
	for _, remote := range remotes {
		result = append(result, *remote)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}

// GetRemote returns information about a specific remote.
func (r *Repository) GetRemote(name string) (*Remote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fetchURL, err := r.git("remote", "get-url", name)
	if err != nil {
		return nil, fmt.Errorf("get remote %s: %w", name, ErrRemoteNotFound)
	}

	pushURL, err := r.git("remote", "get-url", "--push", name)
	if err != nil {
		pushURL = fetchURL
	}

	return &Remote{
		Name:     name,
		FetchURL: strings.TrimSpace(fetchURL),
		PushURL:  strings.TrimSpace(pushURL),
	}, nil
}

// AddRemote adds a new remote.
func (r *Repository) AddRemote(name, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.git("remote", "add", name, url); err != nil {
		return fmt.Errorf("add remote %s: %w", name, err)
	}

	return nil
}

// GetUpstream returns the upstream branch for the current branch.
func (r *Repository) GetUpstream() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	output, err := r.git("rev-parse", "--abbrev-ref", "@{upstream}")
	if err != nil {
		if strings.Contains(err.Error(), "no upstream") {
			return "", ErrNoUpstream
		}
		return "", fmt.Errorf("get upstream: %w", err)
	}

	return strings.TrimSpace(output), nil
}
