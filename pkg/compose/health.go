package compose

import (
	"fmt"
	"strings"
)

// HealthReport is a single best-effort snapshot of service health. No
// retries, no blocking: one ps query, evaluated once.
type HealthReport struct {
	Services  []ServiceStatus
	Unhealthy []ServiceStatus
}

// Healthy reports whether no running service has a failing health check.
func (r HealthReport) Healthy() bool {
	return len(r.Unhealthy) == 0
}

// EvaluateHealth flags every service whose state is running but whose
// health check is present and not healthy. Services without a health
// check are not flagged.
func EvaluateHealth(statuses []ServiceStatus) HealthReport {
	report := HealthReport{Services: statuses}
	for _, st := range statuses {
		if st.State == "running" && st.Health != "" && st.Health != "healthy" {
			report.Unhealthy = append(report.Unhealthy, st)
		}
	}
	return report
}

// Summary renders a human-readable status table.
func (r HealthReport) Summary() string {
	var b strings.Builder
	for _, st := range r.Services {
		mark := "✓"
		if st.State != "running" {
			mark = "✗"
		} else if st.Health != "" && st.Health != "healthy" {
			mark = "✗"
		}
		b.WriteString(fmt.Sprintf("  %s %-24s %-10s", mark, st.Service, st.State))
		if st.Health != "" {
			b.WriteString(fmt.Sprintf(" (%s)", st.Health))
		}
		b.WriteString("\n")
	}
	if r.Healthy() {
		b.WriteString("All services healthy\n")
	} else {
		b.WriteString(fmt.Sprintf("%d service(s) unhealthy\n", len(r.Unhealthy)))
	}
	return b.String()
}
