package envfile

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "domain unset",
			content: "DOMAIN=\nFS_EXTERNAL_SIP_IP=1.2.3.4\nFS_EXTERNAL_RTP_IP=1.2.3.4\n",
			wantErr: "DOMAIN is not set",
		},
		{
			name:    "domain placeholder",
			content: "DOMAIN=ringstack.example.com\nFS_EXTERNAL_SIP_IP=1.2.3.4\nFS_EXTERNAL_RTP_IP=1.2.3.4\n",
			wantErr: "placeholder",
		},
		{
			name:    "sip ip unset",
			content: "DOMAIN=pbx.acme.test\nFS_EXTERNAL_SIP_IP=\nFS_EXTERNAL_RTP_IP=1.2.3.4\n",
			wantErr: "FS_EXTERNAL_SIP_IP is not set",
		},
		{
			name:    "rtp ip unset",
			content: "DOMAIN=pbx.acme.test\nFS_EXTERNAL_SIP_IP=1.2.3.4\nFS_EXTERNAL_RTP_IP=\n",
			wantErr: "FS_EXTERNAL_RTP_IP is not set",
		},
		{
			name:    "valid",
			content: "DOMAIN=pbx.acme.test\nFS_EXTERNAL_SIP_IP=1.2.3.4\nFS_EXTERNAL_RTP_IP=1.2.3.4\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(Parse(tt.content))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
