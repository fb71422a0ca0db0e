package core

import (
	"errors"
	"strings"
)

var (
	ErrEmptyUsername = errors.New("empty username")
	ErrEmptyPassword = errors.New("empty password")
)

// User is a credential record. Password holds the encoded Argon2id hash,
// never the plaintext. SecurityAnswer may be stored AES-GCM encrypted.
type User struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	SecurityQuestion string `json:"securityQuestion"`
	SecurityAnswer   string `json:"securityAnswer"`
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if u.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}

// UsernameEqualFold reports whether two usernames collide under the
// case-insensitive uniqueness rule.
func UsernameEqualFold(a, b string) bool {
	return strings.EqualFold(a, b)
}
