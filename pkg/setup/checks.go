package setup

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// OSInfo contains detected operating system information
type OSInfo struct {
	ID      string // ubuntu, debian, fedora, etc.
	Version string // 22.04, 24.04, 12, etc.
	Name    string // Full name: "ubuntu 24.04"
}

// PrivilegeChecker validates root access and user context
type PrivilegeChecker struct{}

// CheckRoot verifies the process is running as root
func (pc *PrivilegeChecker) CheckRoot() error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("this command must be run as root (use sudo)")
	}
	return nil
}

// CheckLinuxOS verifies the process is running on Linux
func (pc *PrivilegeChecker) CheckLinuxOS() error {
	if runtime.GOOS != "linux" {
		return fmt.Errorf("the install flow is only supported on Linux (detected: %s)", runtime.GOOS)
	}
	return nil
}

// OSDetector detects the Linux distribution
type OSDetector struct{}

// Detect returns information about the detected OS
func (od *OSDetector) Detect() (*OSInfo, error) {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return nil, fmt.Errorf("cannot detect operating system: %w", err)
	}
	return parseOSRelease(string(data))
}

// parseOSRelease extracts ID and VERSION_ID from os-release content.
func parseOSRelease(content string) (*OSInfo, error) {
	var id, version string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "ID=") {
			id = strings.Trim(strings.TrimPrefix(line, "ID="), "\"")
		}
		if strings.HasPrefix(line, "VERSION_ID=") {
			version = strings.Trim(strings.TrimPrefix(line, "VERSION_ID="), "\"")
		}
	}

	if id == "" {
		return nil, fmt.Errorf("could not detect OS ID from /etc/os-release")
	}

	name := id
	if version != "" {
		name = fmt.Sprintf("%s %s", id, version)
	}

	return &OSInfo{ID: id, Version: version, Name: name}, nil
}

// IsSupportedOS checks if the OS is one the platform is tested on
func (od *OSDetector) IsSupportedOS(info *OSInfo) bool {
	supported := map[string][]string{
		"ubuntu": {"22.04", "24.04"},
		"debian": {"11", "12"},
	}

	versions, ok := supported[info.ID]
	if !ok {
		return false
	}
	for _, v := range versions {
		if info.Version == v {
			return true
		}
	}
	return false
}

// Dependency represents an external binary dependency
type Dependency struct {
	Name        string
	Command     string
	InstallHint string
}

// DependencyChecker validates external tool availability
type DependencyChecker struct{}

// CheckAll validates the tools the install flow shells out to
func (dc *DependencyChecker) CheckAll() ([]Dependency, error) {
	dependencies := []Dependency{
		{
			Name:        "git",
			Command:     "git",
			InstallHint: "Install with your package manager, e.g. apt-get install git",
		},
		{
			Name:        "curl",
			Command:     "curl",
			InstallHint: "Usually pre-installed; if missing: apt-get install curl",
		},
	}

	var missing []Dependency
	for _, dep := range dependencies {
		if _, err := exec.LookPath(dep.Command); err != nil {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		errMsg := "missing required dependencies:\n"
		for _, dep := range missing {
			errMsg += fmt.Sprintf("  - %s: %s\n", dep.Name, dep.InstallHint)
		}
		return missing, fmt.Errorf("%s", errMsg)
	}

	return nil, nil
}
