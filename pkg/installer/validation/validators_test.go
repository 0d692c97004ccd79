package validation

import "testing"

func TestValidateIP(t *testing.T) {
	tests := []struct {
		ip      string
		wantErr bool
	}{
		{"203.0.113.5", false},
		{"2001:db8::1", false},
		{"", true},
		{"not-an-ip", true},
		{"300.1.1.1", true},
	}

	for _, tt := range tests {
		err := ValidateIP(tt.ip)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateIP(%q) error = %v, wantErr %v", tt.ip, err, tt.wantErr)
		}
	}
}

func TestValidateDomain(t *testing.T) {
	tests := []struct {
		domain  string
		wantErr bool
	}{
		{"pbx.acme.test", false},
		{"acme.com", false},
		{"", true},
		{"ringstack.example.com", true}, // placeholder
		{"-bad.com", true},
		{"spaces in domain", true},
	}

	for _, tt := range tests {
		err := ValidateDomain(tt.domain)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDomain(%q) error = %v, wantErr %v", tt.domain, err, tt.wantErr)
		}
	}
}
