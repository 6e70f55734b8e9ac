package ledger

import (
	"net/http"
	"strings"
)

// GeoLocator resolves the country of a request. An empty result is valid.
type GeoLocator interface {
	Country(r *http.Request, ip string) string
}

// NoopGeo never resolves a country
type NoopGeo struct{}

func (NoopGeo) Country(*http.Request, string) string { return "" }

// HeaderGeo trusts a country code set by an upstream CDN or proxy
type HeaderGeo struct {
	Headers []string
}

// DefaultCountryHeaders are consulted by NewHeaderGeo, in order
var DefaultCountryHeaders = []string{"CF-IPCountry", "X-Country-Code"}

// NewHeaderGeo creates a HeaderGeo reading DefaultCountryHeaders
func NewHeaderGeo() HeaderGeo {
	return HeaderGeo{Headers: DefaultCountryHeaders}
}

func (g HeaderGeo) Country(r *http.Request, _ string) string {
	if r == nil {
		return ""
	}
	for _, h := range g.Headers {
		v := strings.ToUpper(strings.TrimSpace(r.Header.Get(h)))
		// Cloudflare uses XX for unknown and T1 for Tor
		if len(v) == 2 && v != "XX" && v != "T1" {
			return v
		}
	}
	return ""
}
