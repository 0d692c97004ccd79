package setup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// RepoSyncer clones the platform repository on first install and pulls
// on subsequent runs.
type RepoSyncer struct {
	repoURL string
	branch  string
	dir     string
}

// NewRepoSyncer creates a syncer for one checkout directory.
func NewRepoSyncer(repoURL, branch, dir string) *RepoSyncer {
	return &RepoSyncer{repoURL: repoURL, branch: branch, dir: dir}
}

// Sync ensures the checkout exists and is on the requested branch.
func (rs *RepoSyncer) Sync(ctx context.Context) error {
	if _, err := os.Stat(filepath.Join(rs.dir, ".git")); err == nil {
		return rs.pull(ctx)
	}
	return rs.clone(ctx)
}

func (rs *RepoSyncer) clone(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "git", "clone", "--branch", rs.branch, "--depth", "1", rs.repoURL, rs.dir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to clone %s: %w", rs.repoURL, err)
	}
	return nil
}

func (rs *RepoSyncer) pull(ctx context.Context) error {
	checkout := exec.CommandContext(ctx, "git", "checkout", rs.branch)
	checkout.Dir = rs.dir
	if output, err := checkout.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w\n%s", rs.branch, err, string(output))
	}

	pull := exec.CommandContext(ctx, "git", "pull", "--ff-only")
	pull.Dir = rs.dir
	if output, err := pull.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to pull latest changes: %w\n%s", err, string(output))
	}
	return nil
}
