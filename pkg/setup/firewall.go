package setup

import (
	"fmt"
	"os/exec"
	"strings"
)

// FirewallConfig holds the configuration for UFW firewall rules
type FirewallConfig struct {
	SSHPort      int    // default 22
	SIPPort      int    // default 5060, opened for TCP and UDP
	RTPPortRange string // default "16384:32768", UDP
}

// FirewallProvisioner manages UFW firewall setup for a telephony host
type FirewallProvisioner struct {
	config FirewallConfig
}

// NewFirewallProvisioner creates a new firewall provisioner
func NewFirewallProvisioner(config FirewallConfig) *FirewallProvisioner {
	if config.SSHPort == 0 {
		config.SSHPort = 22
	}
	if config.SIPPort == 0 {
		config.SIPPort = 5060
	}
	if config.RTPPortRange == "" {
		config.RTPPortRange = "16384:32768"
	}
	return &FirewallProvisioner{config: config}
}

// IsInstalled checks if UFW is available
func (fp *FirewallProvisioner) IsInstalled() bool {
	_, err := exec.LookPath("ufw")
	return err == nil
}

// GenerateRules returns the list of UFW commands to apply
func (fp *FirewallProvisioner) GenerateRules() []string {
	return []string{
		"ufw default deny incoming",
		"ufw default allow outgoing",

		// SSH (always required)
		fmt.Sprintf("ufw allow %d/tcp", fp.config.SSHPort),

		// Web UI and TLS
		"ufw allow 80/tcp",
		"ufw allow 443/tcp",

		// SIP signaling
		fmt.Sprintf("ufw allow %d/tcp", fp.config.SIPPort),
		fmt.Sprintf("ufw allow %d/udp", fp.config.SIPPort),

		// RTP media
		fmt.Sprintf("ufw allow %s/udp", fp.config.RTPPortRange),

		"ufw --force enable",
	}
}

// Apply executes the generated rules. Requires root.
func (fp *FirewallProvisioner) Apply() error {
	for _, rule := range fp.GenerateRules() {
		parts := strings.Fields(rule)
		cmd := exec.Command(parts[0], parts[1:]...)
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("firewall rule %q failed: %w\n%s", rule, err, string(output))
		}
	}
	return nil
}
