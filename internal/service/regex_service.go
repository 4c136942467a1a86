package service

import (
	"regexp"
)

// RegexService implements the regex testing tools.
type RegexService struct{}

// NewRegexService builds the service.
func NewRegexService() *RegexService {
	return &RegexService{}
}

// RegexMatch describes one match within the tested text.
type RegexMatch struct {
	Match  string   `json:"match"`
	Start  int      `json:"start"`
	End    int      `json:"end"`
	Groups []string `json:"groups,omitempty"`
}

// RegexTestResult is the outcome of running a pattern over a text.
type RegexTestResult struct {
	Pattern    string       `json:"pattern"`
	Text       string       `json:"text"`
	Matches    []RegexMatch `json:"matches"`
	MatchCount int          `json:"matchCount"`
	HasMatch   bool         `json:"hasMatch"`
}

// RegexReplaceResult is the outcome of a regex replacement.
type RegexReplaceResult struct {
	Pattern          string `json:"pattern"`
	Original         string `json:"original"`
	Replacement      string `json:"replacement"`
	Result           string `json:"result"`
	ReplacementCount int    `json:"replacementCount"`
}

// commonPatterns is the library of well-known patterns exposed by the
// patterns and identify operations.
var commonPatterns = []struct {
	Name    string
	Pattern string
}{
	{"email", `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`},
	{"url", `^(https?://)?(www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}([-a-zA-Z0-9()@:%_+.~#?&/=]*)$`},
	{"ipv4", `^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`},
	{"date_iso", `^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`},
	{"time", `^([01]?[0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`},
	{"hex_color", `^#?([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`},
	{"credit_card", `^(?:4[0-9]{12}(?:[0-9]{3})?|5[1-5][0-9]{14}|3[47][0-9]{13})$`},
	{"username", `^[a-zA-Z0-9_]{3,16}$`},
	{"uuid", `^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`},
	{"base64", `^(?:[A-Za-z0-9+/]{4})*(?:[A-Za-z0-9+/]{2}==|[A-Za-z0-9+/]{3}=)?$`},
	{"jwt", `^[A-Za-z0-9-_]+\.[A-Za-z0-9-_]+\.[A-Za-z0-9-_]*$`},
}

// Test runs the pattern over the text and collects all matches.
func (s *RegexService) Test(pattern, text string) (*RegexTestResult, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	result := &RegexTestResult{
		Pattern: pattern,
		Text:    text,
		Matches: []RegexMatch{},
	}

	for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
		match := RegexMatch{
			Match: text[idx[0]:idx[1]],
			Start: idx[0],
			End:   idx[1],
		}
		for g := 1; g < len(idx)/2; g++ {
			start, end := idx[2*g], idx[2*g+1]
			if start < 0 {
				match.Groups = append(match.Groups, "")
				continue
			}
			match.Groups = append(match.Groups, text[start:end])
		}
		result.Matches = append(result.Matches, match)
	}

	result.MatchCount = len(result.Matches)
	result.HasMatch = result.MatchCount > 0
	return result, nil
}

// Replace substitutes all pattern matches in the text.
func (s *RegexService) Replace(pattern, text, replacement string) (*RegexReplaceResult, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &RegexReplaceResult{
		Pattern:          pattern,
		Original:         text,
		Replacement:      replacement,
		Result:           re.ReplaceAllString(text, replacement),
		ReplacementCount: len(re.FindAllString(text, -1)),
	}, nil
}

// Patterns returns the library of well-known patterns, in stable order.
func (s *RegexService) Patterns() map[string]string {
	out := make(map[string]string, len(commonPatterns))
	for _, p := range commonPatterns {
		out[p.Name] = p.Pattern
	}
	return out
}

// Identify reports which well-known patterns fully match the given text.
func (s *RegexService) Identify(text string) []string {
	matches := []string{}
	for _, p := range commonPatterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		if re.MatchString(text) {
			matches = append(matches, p.Name)
		}
	}
	return matches
}
