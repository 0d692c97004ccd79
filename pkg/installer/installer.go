package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ringstack/deploy/pkg/installer/steps"
	"github.com/ringstack/deploy/pkg/installer/validation"
)

// renderHeader renders the application header
func renderHeader() string {
	logo := `
  ____  _             ____  _             _
 |  _ \(_)_ __   __ _/ ___|| |_ __ _  ___| | __
 | |_) | | '_ \ / _` + "`" + ` \___ \| __/ _` + "`" + ` |/ __| |/ /
 |  _ <| | | | | (_| |___) | || (_| | (__|   <
 |_| \_\_|_| |_|\__, |____/ \__\__,_|\___|_|\_\
                |___/
`
	return steps.TitleStyle.Render(logo) + "\n" + steps.SubtitleStyle.Render("Platform Installation Wizard")
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.step != StepDomain && m.step != StepPublicIP {
				return m, tea.Quit
			}

		case "enter":
			return m.handleEnter()

		case "up", "k":
			if m.step == StepBranch && m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.step == StepBranch && m.cursor < 1 {
				m.cursor++
			}

		case "esc":
			if m.step > StepWelcome && m.step < StepDone {
				m.step--
				m.err = nil
				m.setupStepInput()
			}
		}
	}

	// Update text input for input steps
	if m.step == StepDomain || m.step == StepPublicIP {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.step {
	case StepWelcome:
		m.step = StepDomain
		m.setupStepInput()

	case StepDomain:
		domain := strings.TrimSpace(m.textInput.Value())
		if err := validation.ValidateDomain(domain); err != nil {
			m.err = err
			return m, nil
		}
		m.config.Domain = domain
		m.err = nil
		m.step = StepPublicIP
		m.setupStepInput()

	case StepPublicIP:
		ip := strings.TrimSpace(m.textInput.Value())
		if err := validation.ValidateIP(ip); err != nil {
			m.err = err
			return m, nil
		}
		m.config.PublicIP = ip
		m.err = nil
		m.step = StepBranch
		m.cursor = 0

	case StepBranch:
		branch := &steps.Branch{Cursor: m.cursor}
		m.config.Branch = branch.GetBranch()
		m.step = StepConfirm

	case StepConfirm:
		m.step = StepDone

	case StepDone:
		m.confirmed = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) setupStepInput() {
	m.textInput.Reset()
	m.textInput.Focus()

	switch m.step {
	case StepDomain:
		m.textInput.Placeholder = "e.g., pbx.acme.com"
	case StepPublicIP:
		m.textInput.Placeholder = "e.g., 203.0.113.1"
		if m.detectedIP != "" {
			m.textInput.SetValue(m.detectedIP)
		}
	}
}

// View renders the UI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(renderHeader())
	s.WriteString("\n\n")

	switch m.step {
	case StepWelcome:
		welcome := &steps.Welcome{}
		s.WriteString(welcome.View())
	case StepDomain:
		domain := &steps.Domain{Input: m.textInput, Error: m.err}
		s.WriteString(domain.View())
	case StepPublicIP:
		publicIP := &steps.PublicIP{Input: m.textInput, Error: m.err, Detected: m.detectedIP != ""}
		s.WriteString(publicIP.View())
	case StepBranch:
		branch := &steps.Branch{Cursor: m.cursor}
		s.WriteString(branch.View())
	case StepConfirm:
		confirm := &steps.Confirm{
			Domain:   m.config.Domain,
			PublicIP: m.config.PublicIP,
			Branch:   m.config.Branch,
		}
		s.WriteString(confirm.View())
	case StepDone:
		done := &steps.Done{}
		s.WriteString(done.View())
	}

	return s.String()
}

// Run starts the TUI wizard and returns the gathered configuration.
// detectedIP pre-fills the IP step and may be empty.
func Run(detectedIP string) (*InstallerConfig, error) {
	model := NewModel(detectedIP)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(Model)
	if !m.confirmed {
		return nil, fmt.Errorf("installation cancelled")
	}

	config := m.GetConfig()
	return &config, nil
}
