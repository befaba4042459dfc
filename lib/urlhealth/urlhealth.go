package urlhealth

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"moneyplatforms/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type Options struct {
	// zero values fall back to 30s / 5 redirects
	Timeout      time.Duration
	MaxRedirects int
}

// Checker probes URLs for reachability. Plenty of valid platform pages
// refuse scripted requests, so the client looks as browser-like as it
// can and anything below 500 counts as alive.
type Checker struct {
	http *resty.Client
}

func NewChecker(opts Options) *Checker {
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.MaxRedirects == 0 {
		opts.MaxRedirects = 5
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(opts.MaxRedirects))
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeaders(map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Connection":      "keep-alive",
	})
	telemetry.InstrumentResty(client, "lib/urlhealth")

	return &Checker{http: client}
}

// Check reports whether the URL is reachable. It never returns an
// error: every failure mode is logged and collapsed into false.
func (c *Checker) Check(ctx context.Context, rawurl string) bool {
	target := rawurl
	if parsed, err := url.Parse(rawurl); err != nil || parsed.Scheme == "" {
		target = "https://" + rawurl
	}

	for _, method := range []string{http.MethodHead, http.MethodGet} {
		res, err := c.http.R().SetContext(ctx).Execute(method, target)
		if err != nil {
			if isTerminal(err) {
				slog.Warn("url check failed", "url", target, "err", err)
				return false
			}
			// connection errors and timeouts: give the next method a go
			continue
		}

		if res.StatusCode() == http.StatusMethodNotAllowed {
			continue
		}
		if res.StatusCode() < 500 {
			return true
		}

		slog.Warn("url returned server error", "url", target, "status", res.StatusCode())
		return false
	}

	slog.Warn("all methods failed", "url", target)
	return false
}

// redirect loops and TLS failures are not worth retrying with another
// method.
func isTerminal(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "stopped after") || strings.Contains(msg, "tls:")
}
