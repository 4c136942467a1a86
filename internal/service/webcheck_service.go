package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// WebCheckService implements the outbound URL tester and the security
// header scan.
type WebCheckService struct {
	client *http.Client
}

// NewWebCheckService builds the service.
func NewWebCheckService() *WebCheckService {
	return &WebCheckService{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// URLTestRequest describes an outbound request to perform.
type URLTestRequest struct {
	URL        string            `json:"url"`
	Method     string            `json:"method"`
	Headers    map[string]string `json:"headers,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Body       string            `json:"body,omitempty"`
}

// URLTestResult is the outcome of an outbound request.
type URLTestResult struct {
	URL            string              `json:"url"`
	Method         string              `json:"method"`
	StatusCode     int                 `json:"statusCode"`
	Headers        map[string][]string `json:"headers"`
	Body           string              `json:"body"`
	ResponseTimeMs int64               `json:"responseTimeMs"`
}

// SecurityCheckResult scores a URL's transport and response headers.
type SecurityCheckResult struct {
	URL             string              `json:"url"`
	HTTPS           bool                `json:"https"`
	StatusCode      int                 `json:"statusCode"`
	Headers         map[string][]string `json:"headers,omitempty"`
	SecurityScore   int                 `json:"securityScore"`
	Recommendations []string            `json:"recommendations"`
}

// SupportedMethods lists the HTTP methods the tester accepts.
func (s *WebCheckService) SupportedMethods() []string {
	return []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodHead, http.MethodOptions,
	}
}

// Test performs the described outbound request and reports the response.
// The body is capped to keep responses bounded.
func (s *WebCheckService) Test(ctx context.Context, req URLTestRequest) (*URLTestResult, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	finalURL := appendParameters(req.URL, req.Parameters)

	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, finalURL, body)
	if err != nil {
		return nil, err
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := s.client.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	const maxBody = 64 << 10
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, err
	}

	return &URLTestResult{
		URL:            finalURL,
		Method:         method,
		StatusCode:     resp.StatusCode,
		Headers:        resp.Header,
		Body:           string(respBody),
		ResponseTimeMs: elapsed.Milliseconds(),
	}, nil
}

// CheckSecurity fetches the URL and scores transport security and the
// presence of recommended response headers.
func (s *WebCheckService) CheckSecurity(ctx context.Context, rawURL string) *SecurityCheckResult {
	result := &SecurityCheckResult{URL: rawURL, Recommendations: []string{}}
	score := 100

	if !strings.HasPrefix(rawURL, "http") {
		rawURL = "https://" + rawURL
	}
	result.HTTPS = strings.HasPrefix(strings.ToLower(rawURL), "https://")
	if !result.HTTPS {
		score -= 20
		result.Recommendations = append(result.Recommendations, "Use HTTPS instead of HTTP for secure communication.")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		result.SecurityScore = 0
		result.Recommendations = append(result.Recommendations, "Invalid URL: "+err.Error())
		return result
	}

	resp, err := s.client.Do(req)
	if err != nil {
		result.SecurityScore = 0
		result.Recommendations = append(result.Recommendations, "Failed to connect to URL: "+err.Error())
		return result
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))

	result.StatusCode = resp.StatusCode
	result.Headers = resp.Header

	required := []string{
		"Strict-Transport-Security",
		"X-Content-Type-Options",
		"X-Frame-Options",
		"Content-Security-Policy",
	}
	for _, header := range required {
		if resp.Header.Get(header) == "" {
			score -= 10
			result.Recommendations = append(result.Recommendations, "Missing '"+header+"' header.")
		}
	}

	// Disclosure headers reduce the score instead.
	if resp.Header.Get("Server") != "" {
		score -= 5
		result.Recommendations = append(result.Recommendations, "Server header is present. Consider hiding server version information.")
	}
	if resp.Header.Get("X-Powered-By") != "" {
		score -= 5
		result.Recommendations = append(result.Recommendations, "X-Powered-By header is present. Consider hiding technology stack information.")
	}

	if score < 0 {
		score = 0
	}
	result.SecurityScore = score
	return result
}

func appendParameters(rawURL string, parameters map[string]string) string {
	if len(parameters) == 0 {
		return rawURL
	}
	var sb strings.Builder
	sb.WriteString(rawURL)
	if !strings.Contains(rawURL, "?") {
		sb.WriteString("?")
	} else if !strings.HasSuffix(rawURL, "&") {
		sb.WriteString("&")
	}
	first := true
	for key, value := range parameters {
		if !first {
			sb.WriteString("&")
		}
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(value)
		first = false
	}
	return sb.String()
}
