package compose

import "testing"

func TestExtractCredentials(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   Credentials
	}{
		{
			name:   "single line with both labels",
			output: "account_sid: AC123 auth_token: tok456",
			want:   Credentials{AccountSID: "AC123", AuthToken: "tok456"},
		},
		{
			name: "labels on separate lines with noise",
			output: "Seeding database...\n" +
				"created tenant account_sid: AC9f2\n" +
				"created token auth_token: 8d41aa\n" +
				"assigned phone_number: +15550100\n" +
				"done.",
			want: Credentials{AccountSID: "AC9f2", AuthToken: "8d41aa", PhoneNumber: "+15550100"},
		},
		{
			name:   "no labels yields empty values",
			output: "migrations ran\nnothing to seed\n",
			want:   Credentials{},
		},
		{
			name:   "later occurrence wins",
			output: "account_sid: OLD\naccount_sid: NEW\n",
			want:   Credentials{AccountSID: "NEW"},
		},
		{
			name:   "label with no trailing token",
			output: "account_sid:\n",
			want:   Credentials{},
		},
		{
			name:   "empty output",
			output: "",
			want:   Credentials{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCredentials(tt.output)
			if got != tt.want {
				t.Errorf("ExtractCredentials() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCredentialsEmpty(t *testing.T) {
	if !(Credentials{}).Empty() {
		t.Error("zero credentials should be empty")
	}
	if (Credentials{AccountSID: "AC1"}).Empty() {
		t.Error("credentials with a sid should not be empty")
	}
}
