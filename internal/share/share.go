// Package share encodes a project list as a URL-safe token so a
// snapshot can be handed to a teammate out of band. Applying a token
// replaces the receiver's project list wholesale.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"trak/internal/models"
)

// Encode serializes projects into a URL-safe base64 token.
func Encode(projects []models.Project) (string, error) {
	payload, err := json.Marshal(projects)
	if err != nil {
		return "", fmt.Errorf("encode share payload: %w", err)
	}
	return base64.URLEncoding.EncodeToString(payload), nil
}

// Decode parses a token back into a project list. Tokens produced with
// standard (non URL-safe) base64 are accepted too.
func Decode(token string) ([]models.Project, error) {
	if token == "" {
		return nil, fmt.Errorf("share token is empty")
	}

	payload, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		payload, err = base64.StdEncoding.DecodeString(token)
		if err != nil {
			return nil, fmt.Errorf("decode share token: %w", err)
		}
	}

	var projects []models.Project
	if err := json.Unmarshal(payload, &projects); err != nil {
		return nil, fmt.Errorf("parse share payload: %w", err)
	}
	return projects, nil
}
