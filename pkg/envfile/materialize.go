package envfile

import (
	"crypto/rand"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
)

// secretLen is the number of random bytes per generated secret. Encoded
// as hex, a secret is twice this many characters.
const secretLen = 64

//go:embed template.env
var defaultTemplate string

// Overrides carries the operator-supplied identity and network values
// substituted into the template during materialization.
type Overrides struct {
	Domain        string
	SIPExternalIP string
	RTPExternalIP string
}

// Materializer produces a concrete .env file from a template. Secrets
// are generated once; an existing target file is never touched again
// (idempotence by existence check — concurrent invocations on the same
// target path are a race and are not handled).
type Materializer struct {
	templatePath string
}

// NewMaterializer creates a materializer. templatePath may be empty, in
// which case the embedded default template is used.
func NewMaterializer(templatePath string) *Materializer {
	return &Materializer{templatePath: templatePath}
}

// Materialize writes the concrete configuration to targetPath. Returns
// (false, nil) when the target already exists; nothing is regenerated.
func (m *Materializer) Materialize(targetPath string, ov Overrides) (bool, error) {
	if _, err := os.Stat(targetPath); err == nil {
		return false, nil
	}

	content := defaultTemplate
	if m.templatePath != "" {
		data, err := os.ReadFile(m.templatePath)
		if err != nil {
			return false, fmt.Errorf("failed to read template %s: %w", m.templatePath, err)
		}
		content = string(data)
	}

	f := Parse(content)

	if ov.Domain != "" {
		f.Set(KeyDomain, ov.Domain)
	}
	if ov.SIPExternalIP != "" {
		f.Set(KeySIPExternalIP, ov.SIPExternalIP)
	}
	if ov.RTPExternalIP != "" {
		f.Set(KeyRTPExternalIP, ov.RTPExternalIP)
	}

	for _, key := range f.Keys() {
		value, _ := f.Get(key)
		if value == "" && secretKeys[key] {
			secret, err := generateSecret()
			if err != nil {
				return false, fmt.Errorf("failed to generate secret for %s: %w", key, err)
			}
			f.Set(key, secret)
		}
	}

	if err := os.WriteFile(targetPath, []byte(f.String()), 0600); err != nil {
		return false, fmt.Errorf("failed to write env file: %w", err)
	}

	return true, nil
}

// generateSecret returns secretLen bytes of randomness, hex-encoded.
func generateSecret() (string, error) {
	buf := make([]byte, secretLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
