package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/oklog/ulid/v2"
)

// Token format: wt_{id}_{secret}
// Example: wt_01HV3X0J9QZJ4R8K2M6N7P8Q9R_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b
const (
	// TokenSecretLen is the secret length (hex encoded 16 bytes).
	TokenSecretLen = 32
)

var (
	// ErrInvalidTokenFormat indicates the token format is invalid.
	ErrInvalidTokenFormat = errors.New("invalid write token format")
	// tokenFormatRegex validates the token format.
	tokenFormatRegex = regexp.MustCompile(`^wt_([0-9A-HJKMNP-TV-Z]{26})_([a-f0-9]{32})$`)
)

// GeneratedToken contains the parts of a newly generated write token.
type GeneratedToken struct {
	Plaintext string // Full token (show once only)
	Hash      string // Argon2id hash for WRITE_TOKEN_HASH
	ID        string // ULID, safe to log
}

// GenerateWriteToken creates a new write token. Returns the plaintext
// token (to show once) and the hash to configure the server with.
func GenerateWriteToken() (*GeneratedToken, error) {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()

	secretBytes := make([]byte, 16)
	if _, err := rand.Read(secretBytes); err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	secret := hex.EncodeToString(secretBytes)

	plaintext := fmt.Sprintf("wt_%s_%s", id, secret)

	hash, err := HashToken(plaintext)
	if err != nil {
		return nil, fmt.Errorf("hash token: %w", err)
	}

	return &GeneratedToken{
		Plaintext: plaintext,
		Hash:      hash,
		ID:        id,
	}, nil
}

// TokenID extracts the loggable ULID from a plaintext token.
// Returns an error if the format is invalid.
func TokenID(token string) (string, error) {
	matches := tokenFormatRegex.FindStringSubmatch(token)
	if matches == nil {
		return "", ErrInvalidTokenFormat
	}
	return matches[1], nil
}

// ValidateTokenFormat checks if the token matches the expected format.
func ValidateTokenFormat(token string) bool {
	return tokenFormatRegex.MatchString(token)
}
