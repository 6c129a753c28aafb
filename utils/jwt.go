package utils

import (
	"errors"
	"strings"
)

var (
	ErrMissingAuthorization = errors.New("authorization header is empty")
	ErrNotBearer            = errors.New("authorization scheme is not Bearer")
	ErrEmptyBearerToken     = errors.New("bearer token is empty")
)

// BearerToken returns the credentials of an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingAuthorization
	}
	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", ErrNotBearer
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", ErrEmptyBearerToken
	}
	return token, nil
}
