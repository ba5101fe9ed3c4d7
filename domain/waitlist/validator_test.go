package waitlist

import (
	"strings"
	"testing"

	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSignup_NormalizesEmail(t *testing.T) {
	email, website, err := NormalizeSignup("  Foo@Bar.com ", "  https://example.com  ")

	assert.NoError(t, err)
	assert.Equal(t, "foo@bar.com", email)
	assert.Equal(t, "https://example.com", website)
}

func TestNormalizeSignup_IsIdempotent(t *testing.T) {
	first, _, err := NormalizeSignup("  Foo@Bar.com ", "")
	assert.NoError(t, err)

	second, _, err := NormalizeSignup(first, "")
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizeSignup_RejectsMalformedEmails(t *testing.T) {
	cases := []struct {
		name  string
		email string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"no at sign", "no-at-sign"},
		{"two at signs", "a@@b.com"},
		{"consecutive dots", "a@b..com"},
		{"too long", strings.Repeat("a", 250) + "@b.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := NormalizeSignup(tc.email, "")

			assert.Error(t, err)
			assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
		})
	}
}

func TestNormalizeSignup_AcceptsBoundaryLengthEmail(t *testing.T) {
	local := strings.Repeat("a", MaxEmailLength-len("@b.com"))
	email, _, err := NormalizeSignup(local+"@b.com", "")

	assert.NoError(t, err)
	assert.Len(t, email, MaxEmailLength)
}

func TestNormalizeSignup_TruncatesLongWebsite(t *testing.T) {
	long := strings.Repeat("x", MaxWebsiteLength+100)

	_, website, err := NormalizeSignup("a@b.com", long)

	assert.NoError(t, err)
	assert.Len(t, website, MaxWebsiteLength)
}

func TestNormalizeSignup_AllowsEmptyWebsite(t *testing.T) {
	_, website, err := NormalizeSignup("a@b.com", "")

	assert.NoError(t, err)
	assert.Empty(t, website)
}
