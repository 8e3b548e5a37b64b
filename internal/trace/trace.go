package trace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/selimozcann/doicheck/internal/httpclient"
	"github.com/selimozcann/doicheck/internal/model"
)

// DefaultMaxRedirects matches the redirect limit of common HTTP clients.
const DefaultMaxRedirects = 30

// maxDrain bounds how much of a response body is read before closing it so
// the connection can be reused.
const maxDrain = 64 * 1024

var ErrTooManyRedirects = errors.New("too many redirects")

// Tracer performs manual redirect tracing.
type Tracer struct {
	Client       *http.Client
	MaxRedirects int
	Logger       zerolog.Logger
}

// New creates a new Tracer. The client must not follow redirects itself.
func New(c *http.Client) *Tracer {
	return &Tracer{Client: c, MaxRedirects: DefaultMaxRedirects, Logger: zerolog.Nop()}
}

// Trace issues a GET to target and follows Location headers until a
// non-redirect response, recording every response as a hop.
func (t *Tracer) Trace(ctx context.Context, target string) (res model.Result) {
	res = model.Result{Target: target, StartedAt: time.Now()}
	defer func() { res.DurationMs = time.Since(res.StartedAt).Milliseconds() }()

	// Cookies live for one chain only. A URL may be revisited once a
	// cookie has been set, so the redirect limit is the only stop.
	client := t.Client
	if client.Jar != nil {
		client = httpclient.WithFreshJar(client)
	}
	current := target
	redirects := 0

	for i := 0; ; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, current, nil)
		if err != nil {
			res.Kind = model.FailureConnection
			res.Err = err
			return res
		}
		start := time.Now()
		resp, err := client.Do(req)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			res.Kind = classify(err)
			res.Err = err
			t.Logger.Debug().Str("url", current).Str("kind", string(res.Kind)).Err(err).Msg("request failed")
			return res
		}
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
		_ = resp.Body.Close()

		hop := model.Hop{Index: i, URL: current, Status: resp.StatusCode, TimeMs: duration}
		t.Logger.Debug().Int("hop", i).Str("url", current).Int("status", resp.StatusCode).Int64("time_ms", duration).Msg("hop")

		if isRedirect(resp.StatusCode) {
			loc := resp.Header.Get("Location")
			if loc == "" {
				hop.Final = true
				res.Chain = append(res.Chain, hop)
				return res
			}
			nextURL, err := url.Parse(loc)
			if err != nil {
				hop.Final = true
				res.Chain = append(res.Chain, hop)
				return res
			}
			res.Chain = append(res.Chain, hop)
			redirects++
			if redirects > t.MaxRedirects {
				res.Kind = model.FailureTooManyRedirects
				res.Err = fmt.Errorf("%w: exceeded %d", ErrTooManyRedirects, t.MaxRedirects)
				return res
			}
			current = resp.Request.URL.ResolveReference(nextURL).String()
			continue
		}

		hop.Final = true
		res.Chain = append(res.Chain, hop)
		return res
	}
}

// isRedirect reports whether status carries a Location worth following.
// 300, 304 and 305 end the chain.
func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

// classify separates timeouts from every other transport failure.
func classify(err error) model.FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return model.FailureTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return model.FailureTimeout
	}
	return model.FailureConnection
}
