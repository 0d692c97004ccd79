package setup

import (
	"strings"
	"testing"
)

func TestPackageManager_InstallCommand(t *testing.T) {
	tests := []struct {
		pm   PackageManager
		want string
	}{
		{PackageManagerApt, "apt-get install -y docker-ce"},
		{PackageManagerDnf, "dnf install -y docker-ce"},
		{PackageManagerYum, "yum install -y docker-ce"},
		{PackageManagerPacman, "pacman -S --noconfirm docker-ce"},
		{PackageManagerZypper, "zypper install -y docker-ce"},
	}

	for _, tt := range tests {
		t.Run(string(tt.pm), func(t *testing.T) {
			argv := tt.pm.InstallCommand("docker-ce")
			if got := strings.Join(argv, " "); got != tt.want {
				t.Errorf("InstallCommand = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPackageManager_DockerPackages(t *testing.T) {
	for _, pm := range detectionOrder {
		if len(pm.DockerPackages()) == 0 {
			t.Errorf("%s has no docker package set", pm)
		}
	}

	// apt gets the compose plugin as its own package
	found := false
	for _, pkg := range PackageManagerApt.DockerPackages() {
		if pkg == "docker-compose-plugin" {
			found = true
		}
	}
	if !found {
		t.Error("apt docker packages must include docker-compose-plugin")
	}
}

func TestInstallCommand_UnknownManagerIsNil(t *testing.T) {
	if PackageManager("brew").InstallCommand("x") != nil {
		t.Error("unknown package manager should yield nil argv")
	}
}
