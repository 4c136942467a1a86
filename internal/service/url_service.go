package service

import (
	"net/url"
	"strconv"
	"strings"
)

// URLService implements the URL parsing and building tools.
type URLService struct{}

// NewURLService builds the service.
func NewURLService() *URLService {
	return &URLService{}
}

// ParsedURL is the decomposition of a URL into its components.
type ParsedURL struct {
	Original      string              `json:"original"`
	Protocol      string              `json:"protocol"`
	Host          string              `json:"host"`
	Port          int                 `json:"port"`
	Path          string              `json:"path"`
	Query         string              `json:"query,omitempty"`
	Fragment      string              `json:"fragment,omitempty"`
	UserInfo      string              `json:"userInfo,omitempty"`
	Parameters    map[string][]string `json:"parameters"`
	IsSecure      bool                `json:"isSecure"`
	Reconstructed string              `json:"reconstructed"`
}

// URLComponents describes the pieces used to build a URL.
type URLComponents struct {
	Protocol   string            `json:"protocol"`
	Host       string            `json:"host"`
	Port       int               `json:"port,omitempty"`
	Path       string            `json:"path,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Fragment   string            `json:"fragment,omitempty"`
}

// Parse decomposes a URL string.
func (s *URLService) Parse(raw string) (*ParsedURL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	port := defaultPort(u.Scheme)
	if p := u.Port(); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			port = parsed
		}
	}

	parsed := &ParsedURL{
		Original:      raw,
		Protocol:      u.Scheme,
		Host:          u.Hostname(),
		Port:          port,
		Path:          u.Path,
		Query:         u.RawQuery,
		Fragment:      u.Fragment,
		Parameters:    u.Query(),
		IsSecure:      strings.EqualFold(u.Scheme, "https"),
		Reconstructed: u.String(),
	}
	if u.User != nil {
		parsed.UserInfo = u.User.String()
	}
	return parsed, nil
}

// Build assembles a URL from components.
func (s *URLService) Build(components URLComponents) string {
	u := &url.URL{
		Scheme:   components.Protocol,
		Host:     components.Host,
		Fragment: components.Fragment,
	}
	if components.Port > 0 && components.Port != defaultPort(components.Protocol) {
		u.Host = components.Host + ":" + strconv.Itoa(components.Port)
	}
	if components.Path != "" {
		path := components.Path
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		u.Path = path
	}
	if len(components.Parameters) > 0 {
		values := url.Values{}
		for key, value := range components.Parameters {
			values.Set(key, value)
		}
		u.RawQuery = values.Encode()
	}
	return u.String()
}

func defaultPort(scheme string) int {
	switch strings.ToLower(scheme) {
	case "http":
		return 80
	case "https":
		return 443
	case "ftp":
		return 21
	case "ssh":
		return 22
	default:
		return -1
	}
}
