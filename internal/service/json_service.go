package service

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// JSONService implements the JSON and JWT inspection tools.
type JSONService struct{}

// NewJSONService builds the service.
func NewJSONService() *JSONService {
	return &JSONService{}
}

var ErrInvalidJWTStructure = errors.New("jwt must contain 3 dot-separated segments")

// DecodedJWT is the result of structurally decoding a compact JWT. The
// signature segment is kept base64-encoded; no verification is attempted.
type DecodedJWT struct {
	Header    map[string]any `json:"header"`
	Payload   map[string]any `json:"payload"`
	Signature string         `json:"signature"`
	Raw       string         `json:"raw"`
}

// ParseJWT decodes a compact JWT's header and payload without verifying
// the signature.
func (s *JSONService) ParseJWT(token string) (*DecodedJWT, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrInvalidJWTStructure
	}

	header, err := decodeJWTSegment(parts[0])
	if err != nil {
		return nil, err
	}
	payload, err := decodeJWTSegment(parts[1])
	if err != nil {
		return nil, err
	}

	return &DecodedJWT{
		Header:    header,
		Payload:   payload,
		Signature: parts[2],
		Raw:       token,
	}, nil
}

// ParseJSON parses arbitrary JSON into its generic representation.
func (s *JSONService) ParseJSON(input string) (any, error) {
	var parsed any
	if err := json.Unmarshal([]byte(input), &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

// FormatJSON re-serializes JSON, optionally pretty-printed.
func (s *JSONService) FormatJSON(input string, prettify bool) (string, any, error) {
	parsed, err := s.ParseJSON(input)
	if err != nil {
		return "", nil, err
	}

	var out []byte
	if prettify {
		out, err = json.MarshalIndent(parsed, "", "  ")
	} else {
		out, err = json.Marshal(parsed)
	}
	if err != nil {
		return "", nil, err
	}
	return string(out), parsed, nil
}

func decodeJWTSegment(segment string) (map[string]any, error) {
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return nil, err
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}
