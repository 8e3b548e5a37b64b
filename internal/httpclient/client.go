package httpclient

import (
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// DefaultUserAgent is sent when Config.UserAgent is empty.
const DefaultUserAgent = "doicheck/1.0 (+https://github.com/selimozcann/doicheck)"

// Config holds settings for the HTTP client.
type Config struct {
	// Timeout bounds every single request, i.e. every hop of a chain.
	Timeout   time.Duration
	UserAgent string
	Headers   http.Header
}

// headerRoundTripper wraps a base RoundTripper to inject the user agent and
// any extra headers into every outgoing request.
type headerRoundTripper struct {
	base      http.RoundTripper
	userAgent string
	headers   http.Header
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if h.base == nil {
		h.base = http.DefaultTransport
	}

	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())
	for k, vs := range h.headers {
		r.Header.Del(k)
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	if r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", h.userAgent)
	}
	return h.base.RoundTrip(r)
}

// NewJar returns an empty cookie jar scoped by the public suffix list.
func NewJar() http.CookieJar {
	// cookiejar.New never returns a non-nil error.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return jar
}

// WithFreshJar returns a shallow copy of c with an empty cookie jar, so that
// cookies set while following one chain do not leak into the next. The
// transport and its connection pool are shared.
func WithFreshJar(c *http.Client) *http.Client {
	cp := *c
	cp.Jar = NewJar()
	return &cp
}

// New returns a configured HTTP client with manual redirect handling. The
// caller follows Location headers itself so that every hop is observable;
// the jar still records cookies from every hop.
func New(cfg Config) *http.Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		TLSHandshakeTimeout: cfg.Timeout,
		IdleConnTimeout:     90 * time.Second,
	}

	return &http.Client{
		Transport: &headerRoundTripper{
			base:      transport,
			userAgent: ua,
			headers:   cfg.Headers,
		},
		Jar:     NewJar(),
		Timeout: cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
