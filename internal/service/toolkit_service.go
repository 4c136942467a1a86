package service

import (
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"hash"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// ToolkitService implements the small generator and encoder tools.
type ToolkitService struct{}

// NewToolkitService builds the service.
func NewToolkitService() *ToolkitService {
	return &ToolkitService{}
}

var ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

const (
	passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	passwordSymbols  = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// GeneratePassword returns a random password drawn from a secure source.
func (s *ToolkitService) GeneratePassword(length int, includeSymbols bool) (string, error) {
	if length <= 0 {
		length = 16
	}
	if length > 256 {
		length = 256
	}
	alphabet := passwordAlphabet
	if includeSymbols {
		alphabet += passwordSymbols
	}

	var sb strings.Builder
	sb.Grow(length)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < length; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(alphabet[idx.Int64()])
	}
	return sb.String(), nil
}

// GenerateUUIDs returns count random version-4 UUIDs.
func (s *ToolkitService) GenerateUUIDs(count int) []string {
	if count <= 0 {
		count = 1
	}
	if count > 100 {
		count = 100
	}
	out := make([]string, count)
	for i := range out {
		out[i] = uuid.NewString()
	}
	return out
}

// EncodeBase64 encodes input as standard base64.
func (s *ToolkitService) EncodeBase64(input string) string {
	return base64.StdEncoding.EncodeToString([]byte(input))
}

// DecodeBase64 decodes standard base64 input.
func (s *ToolkitService) DecodeBase64(input string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(input))
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// Hash digests input with the named algorithm and returns lowercase hex.
func (s *ToolkitService) Hash(input, algorithm string) (string, error) {
	var h hash.Hash
	switch strings.ToLower(algorithm) {
	case "md5":
		h = md5.New()
	case "sha1", "sha-1":
		h = sha1.New()
	case "sha256", "sha-256":
		h = sha256.New()
	case "sha512", "sha-512":
		h = sha512.New()
	default:
		return "", ErrUnsupportedAlgorithm
	}
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ValidateJWTStructure checks the three-segment shape of a compact JWT
// without verifying its signature.
func (s *ToolkitService) ValidateJWTStructure(token string) bool {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return false
	}
	return len(strings.Split(token, ".")) == 3
}
