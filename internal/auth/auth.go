package auth

import (
	"context"
	"errors"
)

// ErrEmptyAuthToken is returned when a provider resolves to nothing
var ErrEmptyAuthToken = errors.New("empty auth token")

// CredentialProvider resolves the bearer token attached to webcast
// control requests. Failures propagate to the caller unchanged.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// Static is a provider returning a fixed token
type Static string

func (s Static) Token(ctx context.Context) (string, error) {
	if s == "" {
		return "", ErrEmptyAuthToken
	}
	return string(s), nil
}
