// Package envfile materializes and validates the platform's .env
// configuration file from a template plus generated secrets.
package envfile

import (
	"fmt"
	"os"
	"strings"
)

// Well-known keys in the platform .env file
const (
	KeyDomain        = "DOMAIN"
	KeySIPExternalIP = "FS_EXTERNAL_SIP_IP"
	KeyRTPExternalIP = "FS_EXTERNAL_RTP_IP"

	KeyPostgresPassword     = "POSTGRES_PASSWORD"
	KeySecretKeyBase        = "SECRET_KEY_BASE"
	KeyAnycableSecret       = "ANYCABLE_SECRET"
	KeyRatingEnginePassword = "RATING_ENGINE_PASSWORD"
)

// PlaceholderDomain is the sentinel default shipped in the template. A
// configuration still carrying it has not been customized by the operator.
const PlaceholderDomain = "ringstack.example.com"

// secretKeys is the closed set of keys that receive a generated secret
// when their template value is blank.
var secretKeys = map[string]bool{
	KeyPostgresPassword:     true,
	KeySecretKeyBase:        true,
	KeyAnycableSecret:       true,
	KeyRatingEnginePassword: true,
}

// File is a parsed KEY=VALUE configuration file. Lines that are not
// assignments (comments, blanks) are preserved verbatim so a rewrite
// round-trips the operator's file.
type File struct {
	lines []line
}

type line struct {
	raw   string // original text, used when key == ""
	key   string
	value string
}

// Parse parses line-oriented KEY=VALUE content. Values are taken as-is
// up to the end of line; no quoting or escaping is interpreted.
func Parse(content string) *File {
	f := &File{}
	for _, raw := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			f.lines = append(f.lines, line{raw: raw})
			continue
		}
		idx := strings.Index(raw, "=")
		if idx < 0 {
			f.lines = append(f.lines, line{raw: raw})
			continue
		}
		f.lines = append(f.lines, line{
			key:   strings.TrimSpace(raw[:idx]),
			value: raw[idx+1:],
		})
	}
	return f
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return Parse(string(data)), nil
}

// Get returns the value for key and whether the key is present.
func (f *File) Get(key string) (string, bool) {
	for _, l := range f.lines {
		if l.key == key {
			return l.value, true
		}
	}
	return "", false
}

// Set replaces the value of an existing key or appends a new assignment.
func (f *File) Set(key, value string) {
	for i, l := range f.lines {
		if l.key == key {
			f.lines[i].value = value
			return
		}
	}
	f.lines = append(f.lines, line{key: key, value: value})
}

// Keys returns all assignment keys in file order.
func (f *File) Keys() []string {
	var keys []string
	for _, l := range f.lines {
		if l.key != "" {
			keys = append(keys, l.key)
		}
	}
	return keys
}

// String serializes the file back to its textual form.
func (f *File) String() string {
	var b strings.Builder
	for _, l := range f.lines {
		if l.key == "" {
			b.WriteString(l.raw)
		} else {
			b.WriteString(l.key)
			b.WriteString("=")
			b.WriteString(l.value)
		}
		b.WriteString("\n")
	}
	return b.String()
}
