package service

import (
	"strings"
	"testing"

	"github.com/taskboard/taskboard-api/internal/core/ports"
)

func TestValidateRegistration_Valid(t *testing.T) {
	result := ValidateRegistration(ports.RegisterInput{
		Username: "alice_1",
		Email:    "alice@example.com",
		Password: "Str0ng!Pw",
	})
	if !result.Valid {
		t.Fatalf("expected valid, got errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", result.Errors)
	}
}

func TestValidateRegistration_CollectsAllViolations(t *testing.T) {
	// Short username plus weak password must report every violated rule
	// at once, not stop at the first.
	result := ValidateRegistration(ports.RegisterInput{
		Username: "ab",
		Email:    "alice@example.com",
		Password: "weak",
	})
	if result.Valid {
		t.Fatalf("expected invalid")
	}
	if len(result.Errors) < 2 {
		t.Fatalf("expected at least 2 errors, got %v", result.Errors)
	}
}

func TestValidateRegistration_EmptyInput(t *testing.T) {
	result := ValidateRegistration(ports.RegisterInput{})
	if result.Valid {
		t.Fatalf("expected invalid")
	}
	// One violation per field: username, email, password-required.
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestValidateRegistration_UsernameCharset(t *testing.T) {
	result := ValidateRegistration(ports.RegisterInput{
		Username: "alice-1",
		Email:    "alice@example.com",
		Password: "Str0ng!Pw",
	})
	if result.Valid {
		t.Fatalf("hyphenated username should be rejected")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", result.Errors)
	}
}

func TestValidateRegistration_EmailShape(t *testing.T) {
	for _, email := range []string{"", "plainaddress", "missing@tld", "two words@example.com"} {
		result := ValidateRegistration(ports.RegisterInput{
			Username: "alice_1",
			Email:    email,
			Password: "Str0ng!Pw",
		})
		if result.Valid {
			t.Fatalf("email %q should be rejected", email)
		}
	}
}

func TestValidateRegistration_PasswordTooLong(t *testing.T) {
	// bcrypt caps input at 72 bytes; anything longer must be a validation
	// error, not a hashing failure later on.
	result := ValidateRegistration(ports.RegisterInput{
		Username: "alice_1",
		Email:    "alice@example.com",
		Password: "Aa1!" + strings.Repeat("x", 80),
	})
	if result.Valid {
		t.Fatalf("overlong password should be rejected")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "at most 72") {
		t.Fatalf("unexpected message: %q", result.Errors[0])
	}

	// Exactly 72 bytes is still fine.
	result = ValidateRegistration(ports.RegisterInput{
		Username: "alice_1",
		Email:    "alice@example.com",
		Password: "Aa1!" + strings.Repeat("x", 68),
	})
	if !result.Valid {
		t.Fatalf("72-byte password should pass, got %v", result.Errors)
	}
}

func TestValidateRegistration_PasswordRules(t *testing.T) {
	cases := []struct {
		password string
		want     int
	}{
		{"Aa1!xxxx", 0},
		{"aa1!xxxx", 1}, // missing uppercase
		{"AA1!XXXX", 1}, // missing lowercase
		{"Aax!xxxx", 1}, // missing digit
		{"Aa1xxxxx", 1}, // missing symbol
		{"Aa1!", 1},     // too short
		{"a", 4},        // short, no upper, no digit, no symbol
	}
	for _, tc := range cases {
		result := ValidateRegistration(ports.RegisterInput{
			Username: "alice_1",
			Email:    "alice@example.com",
			Password: tc.password,
		})
		if got := len(result.Errors); got != tc.want {
			t.Fatalf("password %q: expected %d errors, got %d: %v", tc.password, tc.want, got, result.Errors)
		}
	}
}
