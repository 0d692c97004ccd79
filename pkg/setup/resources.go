package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/mackerelio/go-osstat/memory"
)

// Minimum resources for running the full platform stack locally.
const (
	minDiskBytes = 5 * 1024 * 1024 * 1024 // 5GB for images and database volumes
	minRAMBytes  = 4 * 1024 * 1024 * 1024 // 4GB total
)

// ResourceChecker validates system resources before installation
type ResourceChecker struct{}

// NewResourceChecker creates a new resource checker
func NewResourceChecker() *ResourceChecker {
	return &ResourceChecker{}
}

// CheckDiskSpace validates sufficient free disk space under path
func (rc *ResourceChecker) CheckDiskSpace(path string) error {
	checkPath := path

	// If the path doesn't exist yet, check the nearest existing parent
	for checkPath != "/" {
		if _, err := os.Stat(checkPath); err == nil {
			break
		}
		checkPath = filepath.Dir(checkPath)
	}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(checkPath, &stat); err != nil {
		return fmt.Errorf("failed to check disk space: %w", err)
	}

	availableBytes := stat.Bavail * uint64(stat.Bsize)
	if availableBytes < minDiskBytes {
		availableGB := float64(availableBytes) / (1024 * 1024 * 1024)
		return fmt.Errorf("insufficient disk space: %.1fGB available, minimum 5GB required", availableGB)
	}

	return nil
}

// CheckRAM validates sufficient total memory
func (rc *ResourceChecker) CheckRAM() error {
	mem, err := memory.Get()
	if err != nil {
		return fmt.Errorf("failed to check memory: %w", err)
	}

	if mem.Total < minRAMBytes {
		totalGB := float64(mem.Total) / (1024 * 1024 * 1024)
		return fmt.Errorf("insufficient RAM: %.1fGB total, minimum 4GB required", totalGB)
	}

	return nil
}
