package steps

import (
	"strings"
)

// Done step shown once the wizard hands off to the install flow
type Done struct{}

// View renders the done step
func (d *Done) View() string {
	var s strings.Builder
	s.WriteString(successStyle.Render("✓ Configuration complete") + "\n\n")
	s.WriteString("The installer will now run in your terminal.\n\n")
	s.WriteString("Useful commands afterwards:\n")
	s.WriteString("  ringstack status   - Check service health\n")
	s.WriteString("  ringstack logs     - View service logs\n")
	s.WriteString("  ringstack down     - Stop all services\n")
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Press Enter to start"))
	return s.String()
}
