package dto

// TextRequest carries a single text input for encoder-style tools.
type TextRequest struct {
	Input string `json:"input"`
}

// HashRequest payload for hash generation.
type HashRequest struct {
	Input     string `json:"input"`
	Algorithm string `json:"algorithm"`
}

// JSONFormatRequest payload for the JSON formatter.
type JSONFormatRequest struct {
	Input    string `json:"input"`
	Prettify bool   `json:"prettify"`
}

// RegexRequest payload for regex operations.
type RegexRequest struct {
	Pattern     string `json:"pattern"`
	Text        string `json:"text"`
	Replacement string `json:"replacement"`
}

// URLParseRequest payload for URL parsing.
type URLParseRequest struct {
	URL string `json:"url"`
}

// FakerGenerateRequest payload for the data generator.
type FakerGenerateRequest struct {
	Type   string `json:"type"`
	Count  int    `json:"count"`
	Locale string `json:"locale"`
}

// PasswordRequest payload for the password generator.
type PasswordRequest struct {
	Length         int  `json:"length"`
	IncludeSymbols bool `json:"include_symbols"`
}

// UUIDRequest payload for the UUID generator.
type UUIDRequest struct {
	Count int `json:"count"`
}

// DNSLookupRequest payload for the DNS tool.
type DNSLookupRequest struct {
	Domain string `json:"domain"`
}

// UsageLogRequest payload for explicit usage recording.
type UsageLogRequest struct {
	ToolName string `json:"tool_name"`
}
