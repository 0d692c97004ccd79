package validation

import (
	"fmt"
	"net"
	"regexp"

	"github.com/ringstack/deploy/pkg/envfile"
)

var domainRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?)*$`)

// ValidateIP validates an IP address
func ValidateIP(ip string) error {
	if ip == "" {
		return fmt.Errorf("IP address is required")
	}
	if net.ParseIP(ip) == nil {
		return fmt.Errorf("invalid IP address format")
	}
	return nil
}

// ValidateDomain validates a domain name and rejects the template
// placeholder.
func ValidateDomain(domain string) error {
	if domain == "" {
		return fmt.Errorf("domain is required")
	}
	if domain == envfile.PlaceholderDomain {
		return fmt.Errorf("%s is the placeholder domain: enter your real platform domain", domain)
	}
	if !domainRegex.MatchString(domain) {
		return fmt.Errorf("invalid domain format")
	}
	return nil
}
