package utils

import (
	"crypto/rand"
	"encoding/hex"
	"path/filepath"
)

// GenerateBlobKey returns a random hex name for a stored file, keeping the
// original extension so downloads get a sensible filename.
func GenerateBlobKey(originalName string) (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes) + filepath.Ext(originalName), nil
}
