// Package validation provides functionality for validating the inbound bearer
// key to verify request authenticity.
package validation

import (
	"crypto/subtle"
	"errors"
	"strings"
)

const bearerPrefix = "bearer "

// BearerKey represents the static key compared against the Authorization
// header of every inbound REST or Lambda request.
type BearerKey string

// NewBearerKey creates a new BearerKey instance from the provided key string and returns its address.
func NewBearerKey(key string) *BearerKey {
	k := BearerKey(key)
	return &k
}

// ValidateRequest validates the Authorization header of an inbound request.
// A nil or empty key disables validation.
func (k *BearerKey) ValidateRequest(authorization string) error {
	if k == nil || *k == "" {
		return nil
	}
	if authorization == "" {
		return errors.New("missing authorization header")
	}
	if !strings.HasPrefix(strings.ToLower(authorization), bearerPrefix) {
		return errors.New("invalid authentication scheme")
	}
	token := strings.TrimSpace(authorization[len(bearerPrefix):])
	if subtle.ConstantTimeCompare([]byte(token), []byte(*k)) != 1 {
		return errors.New("invalid bearer key")
	}
	return nil
}
