package steps

// Welcome step
type Welcome struct{}

// View renders the welcome step
func (w *Welcome) View() string {
	title := titleStyle.Render("Welcome to RingStack!")
	content := "This wizard will guide you through installing the platform.\n\n" +
		"You'll need:\n" +
		"  • A domain name pointing at this server (e.g., pbx.acme.com)\n" +
		"  • The server's public IP (auto-detected when possible)\n" +
		"  • Roughly ten minutes while images download\n"

	return boxStyle.Render(title+"\n\n"+content) + "\n\n" +
		helpStyle.Render("Press Enter to continue • q to quit")
}
