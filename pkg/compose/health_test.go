package compose

import (
	"strings"
	"testing"
)

func TestEvaluateHealth(t *testing.T) {
	statuses := []ServiceStatus{
		{Service: "web", State: "running", Health: "healthy"},
		{Service: "freeswitch", State: "running", Health: "unhealthy"},
		{Service: "db", State: "running", Health: ""},
		{Service: "worker", State: "exited", Health: ""},
	}

	report := EvaluateHealth(statuses)

	if report.Healthy() {
		t.Error("report should not be healthy")
	}
	if len(report.Unhealthy) != 1 {
		t.Fatalf("Unhealthy count = %d, want 1", len(report.Unhealthy))
	}
	if report.Unhealthy[0].Service != "freeswitch" {
		t.Errorf("flagged %q, want freeswitch", report.Unhealthy[0].Service)
	}
}

func TestEvaluateHealth_AllHealthy(t *testing.T) {
	statuses := []ServiceStatus{
		{Service: "web", State: "running", Health: "healthy"},
		{Service: "db", State: "running"},
	}

	report := EvaluateHealth(statuses)
	if !report.Healthy() {
		t.Errorf("report should be healthy, flagged: %+v", report.Unhealthy)
	}
	if !strings.Contains(report.Summary(), "All services healthy") {
		t.Errorf("summary missing healthy line:\n%s", report.Summary())
	}
}

func TestParsePs(t *testing.T) {
	output := `{"Name":"ringstack-web-1","Service":"web","State":"running","Health":"healthy"}
{"Name":"ringstack-db-1","Service":"db","State":"running","Health":""}

{"Name":"ringstack-freeswitch-1","Service":"freeswitch","State":"running","Health":"starting"}
`
	statuses, err := parsePs(output)
	if err != nil {
		t.Fatalf("parsePs failed: %v", err)
	}
	if len(statuses) != 3 {
		t.Fatalf("got %d statuses, want 3", len(statuses))
	}
	if statuses[2].Health != "starting" {
		t.Errorf("freeswitch health = %q, want starting", statuses[2].Health)
	}
}

func TestParsePs_Malformed(t *testing.T) {
	if _, err := parsePs("not json at all"); err == nil {
		t.Error("expected error for malformed ps output")
	}
}
