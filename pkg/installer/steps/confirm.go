package steps

import (
	"fmt"
	"strings"
)

// Confirm step showing the gathered configuration before install
type Confirm struct {
	Domain   string
	PublicIP string
	Branch   string
}

// View renders the confirmation step
func (c *Confirm) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Ready to Install") + "\n\n")
	s.WriteString("The platform will be installed with:\n\n")
	s.WriteString(fmt.Sprintf("  Domain:     %s\n", c.Domain))
	s.WriteString(fmt.Sprintf("  Public IP:  %s\n", c.PublicIP))
	s.WriteString(fmt.Sprintf("  Branch:     %s\n", c.Branch))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Enter to install • Esc to go back • q to abort"))
	return s.String()
}
