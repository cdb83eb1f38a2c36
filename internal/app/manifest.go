package app

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// fileSHA256Hex returns the lowercase hex SHA-256 of the file at path.
func fileSHA256Hex(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// outputDigest fingerprints a written output so reruns can be compared.
// Failures are logged and leave the digest empty.
func outputDigest(path string) string {
	if path == "" {
		return ""
	}
	sum, err := fileSHA256Hex(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("digest unavailable")
		return ""
	}
	return sum
}
