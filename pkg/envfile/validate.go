package envfile

import "fmt"

// Validate checks the materialized configuration for the fields the
// platform cannot run without. Only presence and the placeholder
// sentinel are checked; no DNS resolution or IP format validation is
// performed here, the platform itself reports those at runtime.
func Validate(f *File) error {
	domain, _ := f.Get(KeyDomain)
	if domain == "" {
		return fmt.Errorf("%s is not set: set your platform domain in the env file", KeyDomain)
	}
	if domain == PlaceholderDomain {
		return fmt.Errorf("%s is still the placeholder %q: set your real platform domain", KeyDomain, PlaceholderDomain)
	}

	if ip, _ := f.Get(KeySIPExternalIP); ip == "" {
		return fmt.Errorf("%s is not set: set the public IP the media server advertises for SIP", KeySIPExternalIP)
	}
	if ip, _ := f.Get(KeyRTPExternalIP); ip == "" {
		return fmt.Errorf("%s is not set: set the public IP the media server advertises for RTP", KeyRTPExternalIP)
	}

	return nil
}

// ValidateFile loads the file at path and validates it.
func ValidateFile(path string) error {
	f, err := Load(path)
	if err != nil {
		return err
	}
	return Validate(f)
}
