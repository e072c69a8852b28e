// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ids

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// DemoPrefix marks response identifiers served from built-in demo content
// instead of the database.
const DemoPrefix = "test"

// IsDemo reports whether a response identifier is a demo link.
func IsDemo(responseID string) bool {
	return strings.HasPrefix(responseID, DemoPrefix)
}

// NewEntityID returns a UUID for organizations and surveys.
func NewEntityID() string {
	return uuid.NewString()
}

// NewResponseID creates the unguessable identifier embedded in a respondent's link.
// Never returns an identifier with the demo prefix.
func NewResponseID() (string, error) {
	for {
		b := make([]byte, 18) // 144 bits, 24 chars encoded
		if _, err := rand.Read(b); err != nil {
			return "", fmt.Errorf("failed to generate response ID: %w", err)
		}
		// URL-safe base64 without padding
		id := strings.TrimRight(base64.URLEncoding.EncodeToString(b), "=")
		if !IsDemo(id) {
			return id, nil
		}
	}
}

// SurveyLink builds the respondent URL for a response.
func SurveyLink(baseURL, responseID string) string {
	return strings.TrimRight(baseURL, "/") + "/survey/" + url.PathEscape(responseID)
}
