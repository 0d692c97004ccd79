// Package installer provides the interactive TUI wizard for the
// RingStack install flow.
package installer

// InstallerConfig holds the configuration gathered from the TUI
type InstallerConfig struct {
	Domain   string
	PublicIP string
	Branch   string
}

// Step represents a step in the installation wizard
type Step int

const (
	StepWelcome Step = iota
	StepDomain
	StepPublicIP
	StepBranch
	StepConfirm
	StepDone
)
