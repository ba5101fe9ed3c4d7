package waitlist

import (
	"strings"

	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Locale-independent lowercasing, so e.g. Turkish dotless-I input folds the
// same way regardless of server locale.
var lowerCaser = cases.Lower(language.Und)

const (
	// MaxEmailLength follows RFC 5321's upper bound on address length.
	MaxEmailLength = 254
	// MaxWebsiteLength caps stored URLs; longer input is truncated, not rejected.
	MaxWebsiteLength = 500
)

// NormalizeSignup lowercases and trims the email, validates its shape, and
// trims/truncates the website. Checks are purely syntactic; there is no DNS
// or deliverability validation. The function has no side effects.
func NormalizeSignup(rawEmail, rawWebsite string) (email, website string, err error) {
	email = lowerCaser.String(strings.TrimSpace(rawEmail))

	if err := validateEmail(email); err != nil {
		return "", "", err
	}

	website = strings.TrimSpace(rawWebsite)
	if runes := []rune(website); len(runes) > MaxWebsiteLength {
		website = string(runes[:MaxWebsiteLength])
	}

	return email, website, nil
}

func validateEmail(email string) error {
	switch {
	case email == "":
		return apperrors.NewInvalidRequestError("Invalid email format", nil)
	case len([]rune(email)) > MaxEmailLength:
		return apperrors.NewInvalidRequestError("Invalid email format", nil)
	case strings.Count(email, "@") != 1:
		return apperrors.NewInvalidRequestError("Invalid email format", nil)
	case strings.Contains(email, ".."):
		return apperrors.NewInvalidRequestError("Invalid email format", nil)
	}

	return nil
}
