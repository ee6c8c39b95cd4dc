// Package gitops publishes the dataset file by committing and pushing
// it to the repository it lives in.
package gitops

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"
)

// Committer stages, commits, and pushes a single file. When disabled
// every call is a logged no-op, which keeps local and test runs from
// touching a repository.
type Committer struct {
	enabled bool
	// repoDir is the working directory for git invocations. Empty
	// means the process working directory.
	repoDir string
}

func NewCommitter(enabled bool, repoDir string) *Committer {
	return &Committer{enabled: enabled, repoDir: repoDir}
}

func (c *Committer) Enabled() bool { return c.enabled }

// Publish runs git add, commit, push for the given file. A commit that
// fails because nothing changed is not an error.
func (c *Committer) Publish(ctx context.Context, path string, now time.Time) error {
	if !c.enabled {
		log.Printf("gitops: disabled, skipping publish of %s", path)
		return nil
	}

	if err := c.run(ctx, "add", path); err != nil {
		return fmt.Errorf("git add: %w", err)
	}

	msg := fmt.Sprintf("Update data at %s", now.Format(time.RFC1123))
	if err := c.run(ctx, "commit", "-n", "-m", msg); err != nil {
		// git exits nonzero when the tree is clean; an unchanged
		// dataset is a normal outcome of an idempotent update.
		if strings.Contains(err.Error(), "nothing to commit") {
			log.Printf("gitops: no changes to commit for %s", path)
			return nil
		}
		return fmt.Errorf("git commit: %w", err)
	}

	if err := c.run(ctx, "push"); err != nil {
		return fmt.Errorf("git push: %w", err)
	}

	log.Printf("gitops: published %s", path)
	return nil
}

func (c *Committer) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.repoDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %v: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
