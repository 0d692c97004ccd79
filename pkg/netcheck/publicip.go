// Package netcheck detects the host's public-facing IP address.
package netcheck

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoints are the IP-echo services queried in order. The first
// non-empty response wins.
var DefaultEndpoints = []string{
	"https://api.ipify.org",
	"https://ifconfig.me/ip",
	"https://icanhazip.com",
}

// echoTimeout caps each individual echo-service call.
const echoTimeout = 5 * time.Second

// Detector resolves the public IP via a fixed chain of HTTP echo
// services, falling back to a local interface scan when none respond.
type Detector struct {
	endpoints []string
	client    *http.Client
}

// NewDetector creates a detector using the default endpoint chain.
func NewDetector() *Detector {
	return NewDetectorWithEndpoints(DefaultEndpoints)
}

// NewDetectorWithEndpoints creates a detector with a custom chain.
func NewDetectorWithEndpoints(endpoints []string) *Detector {
	return &Detector{
		endpoints: endpoints,
		client:    &http.Client{Timeout: echoTimeout},
	}
}

// Detect returns the public IP, or "" when it cannot be determined.
// Echo-service failures are swallowed; this is a best-effort call.
func (d *Detector) Detect(ctx context.Context) string {
	for _, endpoint := range d.endpoints {
		if ip := d.query(ctx, endpoint); ip != "" {
			return ip
		}
	}
	return interfaceScan()
}

// query fetches one echo endpoint and returns a validated IP or "".
func (d *Detector) query(ctx context.Context, endpoint string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ""
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return ""
	}

	ip := strings.TrimSpace(string(body))
	if net.ParseIP(ip) == nil {
		return ""
	}
	return ip
}

// interfaceScan looks for a global unicast address on a local interface.
// Only useful on hosts with a directly-assigned public address.
func interfaceScan() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if ipnet.IP.To4() != nil && !ipnet.IP.IsPrivate() && !ipnet.IP.IsLinkLocalUnicast() {
			return ipnet.IP.String()
		}
	}
	return ""
}
