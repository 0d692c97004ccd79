package steps

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// Domain step for entering the platform domain
type Domain struct {
	Input textinput.Model
	Error error
}

// View renders the domain input step
func (d *Domain) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Platform Domain") + "\n\n")
	s.WriteString("Enter the domain your users will reach the platform on:\n\n")
	s.WriteString(d.Input.View())

	if d.Error != nil {
		s.WriteString("\n\n" + errorStyle.Render("✗ "+d.Error.Error()))
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Enter to confirm • Esc to go back"))
	return s.String()
}
