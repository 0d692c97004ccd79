package setup

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ringstack/deploy/pkg/envfile"
)

func TestPhase5MaterializeConfig_CreatesAndValidates(t *testing.T) {
	dir := t.TempDir()
	var log bytes.Buffer

	flow := NewFlow(Config{
		Domain:     "pbx.acme.test",
		PublicIP:   "203.0.113.5",
		InstallDir: dir,
	}, &log)

	if err := flow.Phase5MaterializeConfig(); err != nil {
		t.Fatalf("Phase5MaterializeConfig failed: %v", err)
	}

	f, err := envfile.Load(flow.EnvFilePath())
	if err != nil {
		t.Fatalf("env file not created: %v", err)
	}
	if v, _ := f.Get(envfile.KeySIPExternalIP); v != "203.0.113.5" {
		t.Errorf("FS_EXTERNAL_SIP_IP = %q, want 203.0.113.5", v)
	}
	if !strings.Contains(log.String(), "Configuration created") {
		t.Errorf("log missing creation line:\n%s", log.String())
	}
}

func TestPhase5MaterializeConfig_PlaceholderDomainFailsBeforeOrchestrator(t *testing.T) {
	dir := t.TempDir()

	// No domain supplied: the embedded template's placeholder survives
	// and validation must reject it.
	flow := NewFlow(Config{
		PublicIP:   "203.0.113.5",
		InstallDir: dir,
	}, nil)

	err := flow.Phase5MaterializeConfig()
	if err == nil {
		t.Fatal("expected validation failure for placeholder domain")
	}
	if !strings.Contains(err.Error(), "placeholder") {
		t.Errorf("error = %q, want placeholder complaint", err)
	}
}

func TestPhase5MaterializeConfig_PrefersCheckoutTemplate(t *testing.T) {
	dir := t.TempDir()
	sample := "DOMAIN=\nFS_EXTERNAL_SIP_IP=\nFS_EXTERNAL_RTP_IP=\nPOSTGRES_PASSWORD=\nCHECKOUT_MARKER=yes\n"
	if err := os.WriteFile(filepath.Join(dir, ".env.sample"), []byte(sample), 0644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	flow := NewFlow(Config{
		Domain:     "pbx.acme.test",
		PublicIP:   "203.0.113.5",
		InstallDir: dir,
	}, nil)

	if err := flow.Phase5MaterializeConfig(); err != nil {
		t.Fatalf("Phase5MaterializeConfig failed: %v", err)
	}

	f, err := envfile.Load(flow.EnvFilePath())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := f.Get("CHECKOUT_MARKER"); v != "yes" {
		t.Error("checkout .env.sample was not used as the template")
	}
}
