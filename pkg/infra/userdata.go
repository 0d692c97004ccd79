package infra

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"fmt"
	"text/template"
)

//go:embed userdata.sh.tmpl
var userDataTemplate string

// userDataValues feeds the user-data script template.
type userDataValues struct {
	Region            string
	DatabaseName      string
	ClusterID         string
	PasswordParameter string
	BackupBucket      string
	BackupEnabled     bool
}

// renderUserData renders the instance bootstrap script and returns it
// base64-encoded as RunInstances requires.
func renderUserData(cfg *Config) (string, error) {
	tmpl, err := template.New("userdata").Parse(userDataTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse user-data template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, userDataValues{
		Region:            cfg.Region,
		DatabaseName:      cfg.DatabaseName,
		ClusterID:         cfg.ClusterID,
		PasswordParameter: cfg.PasswordParameter,
		BackupBucket:      cfg.Bucket(),
		BackupEnabled:     cfg.BackupEnabled,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render user-data: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
