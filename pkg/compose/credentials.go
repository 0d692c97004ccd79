package compose

import "strings"

// Credentials are the tenant credentials printed by the bootstrap job.
// They exist only in process output and are never persisted.
type Credentials struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
}

// Empty reports whether nothing was extracted.
func (c Credentials) Empty() bool {
	return c.AccountSID == "" && c.AuthToken == "" && c.PhoneNumber == ""
}

// ExtractCredentials scans unstructured bootstrap output for the known
// labels and takes the whitespace-delimited token following each. This
// is a deliberate best-effort parse, not a contract with the bootstrap
// job's output format: missing labels yield empty fields, never an error.
func ExtractCredentials(output string) Credentials {
	return Credentials{
		AccountSID:  tokenAfterLabel(output, "account_sid:"),
		AuthToken:   tokenAfterLabel(output, "auth_token:"),
		PhoneNumber: tokenAfterLabel(output, "phone_number:"),
	}
}

// tokenAfterLabel returns the token following the last occurrence of
// label on any line containing it, or "".
func tokenAfterLabel(output, label string) string {
	var found string
	for _, line := range strings.Split(output, "\n") {
		idx := strings.Index(line, label)
		if idx < 0 {
			continue
		}
		fields := strings.Fields(line[idx+len(label):])
		if len(fields) > 0 {
			found = fields[0]
		}
	}
	return found
}
