// Package compose drives the external container orchestrator (docker
// compose). The orchestrator is a black box: every operation shells out
// and its own concurrency, registries, and service graph are opaque here.
package compose

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// BootstrapService is the one-shot job that seeds the platform database
// (tenant account, credentials) and exits.
const BootstrapService = "bootstrap"

// Driver wraps docker compose for one project directory.
type Driver struct {
	projectDir string
}

// NewDriver creates a driver rooted at the platform checkout.
func NewDriver(projectDir string) *Driver {
	return &Driver{projectDir: projectDir}
}

// Available reports whether the docker binary and its compose plugin are
// both present and usable.
func Available(ctx context.Context) error {
	if _, err := exec.LookPath("docker"); err != nil {
		return fmt.Errorf("docker is not installed or not in PATH")
	}
	if err := exec.CommandContext(ctx, "docker", "compose", "version").Run(); err != nil {
		return fmt.Errorf("docker compose plugin is not available: %w", err)
	}
	return nil
}

// command builds a docker compose invocation in the project directory.
func (d *Driver) command(ctx context.Context, args ...string) *exec.Cmd {
	full := append([]string{"compose"}, args...)
	cmd := exec.CommandContext(ctx, "docker", full...)
	cmd.Dir = d.projectDir
	return cmd
}

// Pull fetches all service images, streaming the orchestrator's own
// progress output to the terminal.
func (d *Driver) Pull(ctx context.Context) error {
	cmd := d.command(ctx, "pull")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("image pull failed: %w", err)
	}
	return nil
}

// RunBootstrap runs the one-shot bootstrap job to completion. Output is
// captured and returned even when the job fails; the returned error
// carries the job's exit status so the operator sees it rather than
// having it silently swallowed.
func (d *Driver) RunBootstrap(ctx context.Context) (string, error) {
	cmd := d.command(ctx, "--profile", BootstrapService, "run", "--rm", BootstrapService)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("bootstrap job failed: %w", err)
	}
	return string(output), nil
}

// Up starts all long-running services and blocks until the orchestrator
// reports them ready.
func (d *Driver) Up(ctx context.Context) error {
	cmd := d.command(ctx, "up", "-d", "--wait")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("service start failed: %w", err)
	}
	return nil
}

// Down stops and removes all services.
func (d *Driver) Down(ctx context.Context) error {
	cmd := d.command(ctx, "down")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("service shutdown failed: %w", err)
	}
	return nil
}

// Logs streams service logs to the terminal. Services may be empty for
// all services.
func (d *Driver) Logs(ctx context.Context, follow bool, services ...string) error {
	args := []string{"logs"}
	if follow {
		args = append(args, "-f")
	}
	args = append(args, services...)
	cmd := d.command(ctx, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// ServiceStatus is one service's state as reported by ps.
type ServiceStatus struct {
	Name    string `json:"Name"`
	Service string `json:"Service"`
	State   string `json:"State"`
	Health  string `json:"Health"`
}

// Ps returns a status snapshot of all project services.
func (d *Driver) Ps(ctx context.Context) ([]ServiceStatus, error) {
	cmd := d.command(ctx, "ps", "-a", "--format", "json")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("service status query failed: %w", err)
	}
	return parsePs(string(output))
}

// parsePs decodes ps --format json output, one JSON object per line.
func parsePs(output string) ([]ServiceStatus, error) {
	var statuses []ServiceStatus
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var st ServiceStatus
		if err := json.Unmarshal([]byte(line), &st); err != nil {
			return nil, fmt.Errorf("unexpected ps output line %q: %w", line, err)
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}
