package infra

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTrustPolicyDocument(t *testing.T) {
	doc, err := trustPolicyDocument()
	if err != nil {
		t.Fatalf("trustPolicyDocument failed: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("trust policy is not valid JSON: %v", err)
	}
	if !strings.Contains(doc, "ec2.amazonaws.com") {
		t.Error("trust policy must name the EC2 service principal")
	}
	if !strings.Contains(doc, "sts:AssumeRole") {
		t.Error("trust policy must allow sts:AssumeRole")
	}
}

func TestBackupPolicyDocument_LeastPrivilege(t *testing.T) {
	cfg := validConfig()
	cfg.BackupBucket = "acme-backups"

	doc, err := backupPolicyDocument(&cfg)
	if err != nil {
		t.Fatalf("backupPolicyDocument failed: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("policy is not valid JSON: %v", err)
	}

	for _, want := range []string{
		"arn:aws:s3:::acme-backups/*",
		"arn:aws:s3:::acme-backups",
		"arn:aws:ssm:eu-central-1:*:parameter/prod-db/postgres-password",
		"s3:GetObject",
		"s3:ListBucket",
		"ssm:GetParameter",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("policy missing %q:\n%s", want, doc)
		}
	}

	// Nothing broader than the three read actions
	for _, forbidden := range []string{"s3:*", "s3:PutObject", "ssm:PutParameter", "\"*\""} {
		if strings.Contains(doc, forbidden) {
			t.Errorf("policy must not contain %q", forbidden)
		}
	}
}

func TestNormalizeParameterPath(t *testing.T) {
	if got := normalizeParameterPath("db/password"); got != "/db/password" {
		t.Errorf("normalizeParameterPath = %q, want /db/password", got)
	}
	if got := normalizeParameterPath("/db/password"); got != "/db/password" {
		t.Errorf("normalizeParameterPath = %q, want /db/password", got)
	}
}

func TestRenderUserData(t *testing.T) {
	cfg := validConfig()
	cfg.BackupEnabled = true

	encoded, err := renderUserData(&cfg)
	if err != nil {
		t.Fatalf("renderUserData failed: %v", err)
	}
	if encoded == "" {
		t.Fatal("user data is empty")
	}
	if strings.HasPrefix(encoded, "#!") {
		t.Error("user data must be base64-encoded")
	}
}
