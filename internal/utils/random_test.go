package utils

import (
	"strings"
	"testing"
)

func TestGenerateValidationToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := GenerateValidationToken()
		if len(token) != 48 {
			t.Fatalf("token length = %d, want 48", len(token))
		}
		if strings.Trim(token, "0123456789abcdef") != "" {
			t.Fatalf("token %q is not lowercase hex", token)
		}
		if seen[token] {
			t.Fatalf("token %q generated twice", token)
		}
		seen[token] = true
	}
}

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp := GenerateRandomOTP()
		if len(otp) != 6 {
			t.Fatalf("otp %q is not 6 digits", otp)
		}
		if strings.Trim(otp, "0123456789") != "" {
			t.Fatalf("otp %q contains non-digits", otp)
		}
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	if got := len(GenerateRandomPassword(16)); got != 16 {
		t.Fatalf("password length = %d, want 16", got)
	}
}

func TestGenerateEmailFromName(t *testing.T) {
	email := GenerateEmailFromName("Jean", "Martin", "exemple.fr")
	if !strings.HasPrefix(email, "jean.martin") {
		t.Fatalf("email %q does not start with jean.martin", email)
	}
	if !strings.HasSuffix(email, "@exemple.fr") {
		t.Fatalf("email %q has the wrong domain", email)
	}
}
