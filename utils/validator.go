package utils

import (
	"regexp"
	"unicode"
)

// ValidationResult carries every problem found, not just the first.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func result(errs []string) ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

func ValidateEmail(email string) ValidationResult {
	var errs []string
	if email == "" {
		errs = append(errs, "Email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "Please enter a valid email address")
	}
	return result(errs)
}

func ValidatePassword(password string) ValidationResult {
	var errs []string
	if len(password) < 6 {
		errs = append(errs, "Password must be at least 6 characters long")
	}
	var digit, upper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	if !digit {
		errs = append(errs, "Password must contain at least one number")
	}
	if !upper {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	return result(errs)
}

func ValidatePasswordMatch(password, confirm string) ValidationResult {
	if password != confirm {
		return result([]string{"Passwords do not match"})
	}
	return result(nil)
}

// ValidateSignUp runs every sign-up check and returns the failures keyed by
// field. An empty map means the form may be submitted.
func ValidateSignUp(email, password, confirm string) map[string][]string {
	fields := map[string][]string{}
	if r := ValidateEmail(email); !r.IsValid {
		fields["email"] = r.Errors
	}
	if r := ValidatePassword(password); !r.IsValid {
		fields["password"] = r.Errors
	}
	if r := ValidatePasswordMatch(password, confirm); !r.IsValid {
		fields["confirm_password"] = r.Errors
	}
	return fields
}
