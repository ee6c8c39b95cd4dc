package gitops

import (
	"context"
	"testing"
	"time"
)

func TestDisabledCommitterIsNoOp(t *testing.T) {
	c := NewCommitter(false, t.TempDir())
	if c.Enabled() {
		t.Fatal("committer should be disabled")
	}
	// Must not invoke git at all; the temp dir is not a repository,
	// so any git call would fail.
	if err := c.Publish(context.Background(), "data.json", time.Now()); err != nil {
		t.Fatalf("disabled publish returned error: %v", err)
	}
}
