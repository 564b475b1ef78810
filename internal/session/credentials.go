package session

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned when the username or password is empty.
var ErrMissingCredentials = errors.New("username and password are required")

// Credentials are the account details used to log in.
type Credentials struct {
	Username string
	Password string
}

// Validate checks that both fields are set.
func (c Credentials) Validate() error {
	if c.Username == "" || c.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

// String never includes the password.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Username: %q}", c.Username)
}
