package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
)

// Model is the bubbletea model for the installer wizard
type Model struct {
	step       Step
	config     InstallerConfig
	textInput  textinput.Model
	err        error
	width      int
	height     int
	cursor     int    // For the branch selection menu
	detectedIP string // Pre-detected public IP, may be empty
	confirmed  bool   // Set once the operator confirms the final step
}

// NewModel creates a new installer model. detectedIP pre-fills the
// public IP step and may be empty.
func NewModel(detectedIP string) Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return Model{
		step:       StepWelcome,
		textInput:  ti,
		detectedIP: detectedIP,
		config: InstallerConfig{
			Branch: "main",
		},
	}
}

// GetConfig returns the gathered configuration
func (m Model) GetConfig() InstallerConfig {
	return m.config
}
