package envfile

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func TestMaterialize_GeneratesSecretsAndSubstitutions(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, ".env")

	m := NewMaterializer("")
	created, err := m.Materialize(target, Overrides{
		Domain:        "pbx.acme.test",
		SIPExternalIP: "203.0.113.5",
		RTPExternalIP: "203.0.113.5",
	})
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	if !created {
		t.Fatal("expected file to be created")
	}

	f, err := Load(target)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v, _ := f.Get(KeyDomain); v != "pbx.acme.test" {
		t.Errorf("DOMAIN = %q, want pbx.acme.test", v)
	}
	if v, _ := f.Get(KeySIPExternalIP); v != "203.0.113.5" {
		t.Errorf("FS_EXTERNAL_SIP_IP = %q, want 203.0.113.5", v)
	}

	hexPattern := regexp.MustCompile(`^[0-9a-f]{128}$`)
	seen := map[string]bool{}
	for _, key := range []string{KeyPostgresPassword, KeySecretKeyBase, KeyAnycableSecret, KeyRatingEnginePassword} {
		v, ok := f.Get(key)
		if !ok || v == "" {
			t.Errorf("%s not generated", key)
			continue
		}
		if !hexPattern.MatchString(v) {
			t.Errorf("%s = %q, want 128 hex chars", key, v)
		}
		if seen[v] {
			t.Errorf("%s reuses another key's secret", key)
		}
		seen[v] = true
	}

	// Non-secret keys with values stay untouched
	if v, _ := f.Get("POSTGRES_USER"); v != "ringstack" {
		t.Errorf("POSTGRES_USER = %q, want ringstack", v)
	}
}

func TestMaterialize_NeverOverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, ".env")

	m := NewMaterializer("")
	if _, err := m.Materialize(target, Overrides{Domain: "first.test"}); err != nil {
		t.Fatalf("first Materialize failed: %v", err)
	}
	before, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	created, err := m.Materialize(target, Overrides{Domain: "second.test"})
	if err != nil {
		t.Fatalf("second Materialize failed: %v", err)
	}
	if created {
		t.Error("second invocation must not report creation")
	}

	after, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(before) != string(after) {
		t.Error("existing file contents changed on re-invocation")
	}
}

func TestMaterialize_CustomTemplatePreservesUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "env.sample")
	content := "# custom\nDOMAIN=ringstack.example.com\nPOSTGRES_PASSWORD=\nEXTRA_KEY=\nKEPT=value\n"
	if err := os.WriteFile(tmpl, []byte(content), 0644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	target := filepath.Join(dir, ".env")
	m := NewMaterializer(tmpl)
	if _, err := m.Materialize(target, Overrides{Domain: "pbx.acme.test"}); err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}

	f, err := Load(target)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Blank keys outside the secret set stay blank
	if v, _ := f.Get("EXTRA_KEY"); v != "" {
		t.Errorf("EXTRA_KEY = %q, want empty", v)
	}
	if v, _ := f.Get("KEPT"); v != "value" {
		t.Errorf("KEPT = %q, want value", v)
	}
	if v, _ := f.Get(KeyPostgresPassword); len(v) != 128 {
		t.Errorf("POSTGRES_PASSWORD length = %d, want 128", len(v))
	}
}

func TestParse_RoundTripsCommentsAndBlanks(t *testing.T) {
	content := "# header\n\nA=1\nnot an assignment\nB=x=y\n"
	f := Parse(content)
	if got := f.String(); got != content {
		t.Errorf("round trip mismatch:\ngot  %q\nwant %q", got, content)
	}
	if v, _ := f.Get("B"); v != "x=y" {
		t.Errorf("B = %q, want x=y (split on first = only)", v)
	}
}
