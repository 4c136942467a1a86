package service

import (
	"context"
	"net"
	"time"
)

// DNSService implements the DNS lookup tool over the platform resolver.
type DNSService struct {
	resolver *net.Resolver
	timeout  time.Duration
}

// NewDNSService builds the service.
func NewDNSService() *DNSService {
	return &DNSService{resolver: net.DefaultResolver, timeout: 5 * time.Second}
}

// DNSLookupResult collects the record types resolved for a domain.
type DNSLookupResult struct {
	Domain string   `json:"domain"`
	A      []string `json:"A"`
	CNAME  string   `json:"CNAME,omitempty"`
	MX     []string `json:"MX"`
	NS     []string `json:"NS"`
	TXT    []string `json:"TXT"`
}

// Lookup resolves common record types for a domain. Address resolution
// failure fails the lookup; the other record types are best-effort.
func (s *DNSService) Lookup(ctx context.Context, domain string) (*DNSLookupResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result := &DNSLookupResult{
		Domain: domain,
		A:      []string{},
		MX:     []string{},
		NS:     []string{},
		TXT:    []string{},
	}

	addrs, err := s.resolver.LookupHost(ctx, domain)
	if err != nil {
		return nil, err
	}
	result.A = addrs

	if cname, err := s.resolver.LookupCNAME(ctx, domain); err == nil && cname != domain+"." {
		result.CNAME = cname
	}

	if mxs, err := s.resolver.LookupMX(ctx, domain); err == nil {
		for _, mx := range mxs {
			result.MX = append(result.MX, mx.Host)
		}
	}

	if nss, err := s.resolver.LookupNS(ctx, domain); err == nil {
		for _, ns := range nss {
			result.NS = append(result.NS, ns.Host)
		}
	}

	if txts, err := s.resolver.LookupTXT(ctx, domain); err == nil {
		result.TXT = txts
	}

	return result, nil
}
