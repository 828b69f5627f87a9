package auth

import (
	"regexp"
	"strings"
	"unicode"

	"taskboard-api/domain"
)

// emailPattern accepts a local part, an at-sign and a dotted domain with a
// TLD of 2-6 letters.
var emailPattern = regexp.MustCompile("^[\\w!#$%&'*+/=?`{|}~^-]+(?:\\.[\\w!#$%&'*+/=?`{|}~^-]+)*@(?:[a-zA-Z0-9-]+\\.)+[a-zA-Z]{2,6}$")

const passwordSpecials = "@#$%^&+="

const passwordPolicyMessage = "Password is not valid, must be more than 8 characters and contains at least one special character and one digit and one uppercase letter and one lowercase letter"

// validateCredentials checks that the already-trimmed email and password are
// present and well formed. The same check guards both sign-up and login: it
// is a precondition for any credential operation, not the authorization
// decision itself.
func validateCredentials(email, password string) error {
	if email == "" {
		return domain.Validationf("Email is null")
	}
	if password == "" {
		return domain.Validationf("Password is null")
	}
	if !emailPattern.MatchString(email) {
		return domain.Validationf("Email is not valid")
	}
	if !validPassword(password) {
		return domain.Validationf(passwordPolicyMessage)
	}
	return nil
}

// validPassword enforces the strength policy: at least 8 characters, no
// embedded whitespace, and at least one digit, lowercase letter, uppercase
// letter and special character.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var digit, lower, upper, special bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return false
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return digit && lower && upper && special
}
