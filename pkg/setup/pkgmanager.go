package setup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// PackageManager identifies the system package manager. The set is
// closed; DetectPackageManager selects one once at startup and the rest
// of the flow branches on nothing else.
type PackageManager string

const (
	PackageManagerApt    PackageManager = "apt-get"
	PackageManagerDnf    PackageManager = "dnf"
	PackageManagerYum    PackageManager = "yum"
	PackageManagerPacman PackageManager = "pacman"
	PackageManagerZypper PackageManager = "zypper"
)

// detectionOrder is the fixed probe order; the first binary found wins.
var detectionOrder = []PackageManager{
	PackageManagerApt,
	PackageManagerDnf,
	PackageManagerYum,
	PackageManagerPacman,
	PackageManagerZypper,
}

// DetectPackageManager returns the first available package manager.
func DetectPackageManager() (PackageManager, error) {
	for _, pm := range detectionOrder {
		if _, err := exec.LookPath(string(pm)); err == nil {
			return pm, nil
		}
	}
	return "", fmt.Errorf("no supported package manager found (looked for apt-get, dnf, yum, pacman, zypper)")
}

// InstallCommand returns the argv that installs the given packages with
// this package manager.
func (pm PackageManager) InstallCommand(packages ...string) []string {
	switch pm {
	case PackageManagerApt:
		return append([]string{"apt-get", "install", "-y"}, packages...)
	case PackageManagerDnf:
		return append([]string{"dnf", "install", "-y"}, packages...)
	case PackageManagerYum:
		return append([]string{"yum", "install", "-y"}, packages...)
	case PackageManagerPacman:
		return append([]string{"pacman", "-S", "--noconfirm"}, packages...)
	case PackageManagerZypper:
		return append([]string{"zypper", "install", "-y"}, packages...)
	}
	return nil
}

// DockerPackages returns the distro-specific package names that provide
// docker plus the compose plugin.
func (pm PackageManager) DockerPackages() []string {
	switch pm {
	case PackageManagerApt, PackageManagerDnf, PackageManagerYum, PackageManagerZypper:
		return []string{"docker-ce", "docker-ce-cli", "containerd.io", "docker-compose-plugin"}
	case PackageManagerPacman:
		return []string{"docker", "docker-compose"}
	}
	return nil
}

// DockerInstaller installs the container runtime via the selected
// package manager, falling back to Docker's convenience script when the
// distro repositories don't carry the docker-ce packages.
type DockerInstaller struct {
	pm PackageManager
}

// NewDockerInstaller creates an installer bound to one package manager.
func NewDockerInstaller(pm PackageManager) *DockerInstaller {
	return &DockerInstaller{pm: pm}
}

// Install installs docker and the compose plugin. Requires root.
func (di *DockerInstaller) Install(ctx context.Context) error {
	if _, err := exec.LookPath("docker"); err == nil {
		return nil
	}

	argv := di.pm.InstallCommand(di.pm.DockerPackages()...)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err == nil {
		return di.enableService(ctx)
	}

	// Repo packages unavailable, use the upstream convenience script
	script := exec.CommandContext(ctx, "sh", "-c", "curl -fsSL https://get.docker.com | sh")
	script.Stdout = os.Stdout
	script.Stderr = os.Stderr
	if err := script.Run(); err != nil {
		return fmt.Errorf("docker installation failed: %w", err)
	}

	return di.enableService(ctx)
}

func (di *DockerInstaller) enableService(ctx context.Context) error {
	if err := exec.CommandContext(ctx, "systemctl", "enable", "--now", "docker").Run(); err != nil {
		return fmt.Errorf("failed to enable docker service: %w", err)
	}
	return nil
}
