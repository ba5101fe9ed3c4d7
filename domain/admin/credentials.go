package admin

import (
	"crypto/subtle"

	"github.com/akeren/waitlist-api/pkg/utils"
)

// Development-only defaults; deployers must override both.
const (
	defaultUsername = "admin"
	defaultPassword = "changeme123"
)

// Credentials is the single static admin pair. There is no user table and no
// hashing at rest; the password arrives over the login form in plaintext, so
// any real deployment must terminate TLS in front of this service.
type Credentials struct {
	Username string
	Password string
}

func CredentialsFromEnv() Credentials {
	return Credentials{
		Username: utils.GetEnvTrimmedOrDefault("ADMIN_USERNAME", defaultUsername),
		Password: utils.GetEnvOrDefault("ADMIN_PASSWORD", defaultPassword),
	}
}

// Verify compares both fields in constant time and combines the results so
// timing cannot reveal which field mismatched.
func (c Credentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password))

	return userOK&passOK == 1
}
