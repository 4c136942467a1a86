package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexTest(t *testing.T) {
	svc := NewRegexService()

	result, err := svc.Test(`(\w+)@(\w+)\.com`, "write to alice@example.com or bob@sample.com")
	require.NoError(t, err)
	assert.True(t, result.HasMatch)
	assert.Equal(t, 2, result.MatchCount)
	require.Len(t, result.Matches, 2)

	first := result.Matches[0]
	assert.Equal(t, "alice@example.com", first.Match)
	assert.Equal(t, []string{"alice", "example"}, first.Groups)
	assert.Equal(t, "alice@example.com", "write to alice@example.com or bob@sample.com"[first.Start:first.End])
}

func TestRegexTestNoMatch(t *testing.T) {
	svc := NewRegexService()

	result, err := svc.Test(`\d+`, "no digits here")
	require.NoError(t, err)
	assert.False(t, result.HasMatch)
	assert.Empty(t, result.Matches)
}

func TestRegexTestInvalidPattern(t *testing.T) {
	svc := NewRegexService()

	_, err := svc.Test(`(unclosed`, "text")
	assert.Error(t, err)
}

func TestRegexReplace(t *testing.T) {
	svc := NewRegexService()

	result, err := svc.Replace(`\d+`, "a1 b22 c333", "N")
	require.NoError(t, err)
	assert.Equal(t, "aN bN cN", result.Result)
	assert.Equal(t, 3, result.ReplacementCount)
	assert.Equal(t, "a1 b22 c333", result.Original)
}

func TestRegexPatterns(t *testing.T) {
	svc := NewRegexService()

	patterns := svc.Patterns()
	assert.Contains(t, patterns, "email")
	assert.Contains(t, patterns, "uuid")
	assert.Contains(t, patterns, "ipv4")
}

func TestRegexIdentify(t *testing.T) {
	svc := NewRegexService()

	assert.Contains(t, svc.Identify("alice@example.com"), "email")
	assert.Contains(t, svc.Identify("192.168.1.1"), "ipv4")
	assert.Contains(t, svc.Identify("550e8400-e29b-41d4-a716-446655440000"), "uuid")
	assert.Contains(t, svc.Identify("2024-02-29"), "date_iso")
	assert.NotContains(t, svc.Identify("definitely not an email"), "email")
}
