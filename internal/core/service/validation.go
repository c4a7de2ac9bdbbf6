package service

import (
	"regexp"
	"strings"

	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// bcrypt reads at most 72 bytes of input; longer passwords must be rejected
// up front or hashing fails after validation already passed.
const passwordMaxLen = 72

var (
	usernameCharset = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailShape      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperLetter     = regexp.MustCompile(`[A-Z]`)
	lowerLetter     = regexp.MustCompile(`[a-z]`)
	digit           = regexp.MustCompile(`[0-9]`)
	symbol          = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// ValidationResult reports every rule a registration payload violated, not
// just the first one, so a client can surface all problems at once.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateRegistration checks a registration payload against all field rules
// independently and collects every violation.
func ValidateRegistration(input ports.RegisterInput) ValidationResult {
	var errs []string

	if username := strings.TrimSpace(input.Username); len(username) < 3 {
		errs = append(errs, "Username must be at least 3 characters long")
	} else if !usernameCharset.MatchString(username) {
		errs = append(errs, "Username can only contain letters, numbers, and underscores")
	}

	if input.Email == "" || !emailShape.MatchString(input.Email) {
		errs = append(errs, "Please enter a valid email address")
	}

	if input.Password == "" {
		errs = append(errs, "Password is required")
	} else {
		if len(input.Password) < 8 {
			errs = append(errs, "Password must be at least 8 characters long")
		}
		if len(input.Password) > passwordMaxLen {
			errs = append(errs, "Password must be at most 72 characters long")
		}
		if !upperLetter.MatchString(input.Password) {
			errs = append(errs, "Password must contain at least one uppercase letter")
		}
		if !lowerLetter.MatchString(input.Password) {
			errs = append(errs, "Password must contain at least one lowercase letter")
		}
		if !digit.MatchString(input.Password) {
			errs = append(errs, "Password must contain at least one number")
		}
		if !symbol.MatchString(input.Password) {
			errs = append(errs, "Password must contain at least one special character")
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
