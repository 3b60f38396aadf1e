package model

import "github.com/google/uuid"

// GenerateGUID creates a new random GUID for a node.
func GenerateGUID() string {
	return uuid.New().String()
}
