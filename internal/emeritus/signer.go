// Package emeritus provides the client adapter for the Emeritus CRM API:
// credential handling, request signing, and a single pooled HTTP client that
// normalises upstream responses into typed results and errors.
package emeritus

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// Credentials holds the static Emeritus API credential set. Values are loaded
// once at process start and never change afterwards.
type Credentials struct {
	Host   string
	UserID string
	Secret string
}

// Signature header names expected by the Emeritus API.
const (
	HeaderUserID    = "X-User-ID"
	HeaderTimestamp = "X-Timestamp"
	HeaderSignature = "X-Signature"
)

// Sign produces the authentication headers for an Emeritus API request. It is
// a pure function of the credential set and the timestamp: identical inputs
// yield identical headers. The signature is the lowercase hex SHA-256 digest
// of userID + unix-seconds + secret.
func Sign(creds Credentials, timestamp time.Time) map[string]string {
	ts := strconv.FormatInt(timestamp.Unix(), 10)
	sum := sha256.Sum256([]byte(creds.UserID + ts + creds.Secret))
	return map[string]string{
		HeaderUserID:    creds.UserID,
		HeaderTimestamp: ts,
		HeaderSignature: hex.EncodeToString(sum[:]),
		"Content-Type":  "application/json",
	}
}
