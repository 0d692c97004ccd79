package steps

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// PublicIP step for confirming the server's public address
type PublicIP struct {
	Input    textinput.Model
	Error    error
	Detected bool
}

// View renders the public IP input step
func (p *PublicIP) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Public IP Address") + "\n\n")
	if p.Detected {
		s.WriteString("Detected your server's public IP; adjust if it's wrong:\n\n")
	} else {
		s.WriteString("Could not auto-detect a public IP; enter it manually:\n\n")
	}
	s.WriteString(p.Input.View())

	if p.Error != nil {
		s.WriteString("\n\n" + errorStyle.Render("✗ "+p.Error.Error()))
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Enter to confirm • Esc to go back"))
	return s.String()
}
