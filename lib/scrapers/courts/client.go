package courts

import (
	"context"
	"errors"
	"net"
	"net/http/cookiejar"
	"net/url"
	"syscall"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/go-resty/resty/v2"

	"nyayalens-backend/lib/telemetry"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type ClientOptions struct {
	BaseUrl string
	Timeout time.Duration
	// RotateIdentity picks a random browser user-agent instead of the
	// fixed default. Each client already gets a fresh cookie jar, so a
	// logical search never shares session state with a previous one.
	RotateIdentity bool
	TracerName     string
}

// NewHttpClient builds the resty client every source adapter fetches
// through: browser-shaped headers, cloudflare bypass transport, fresh
// cookie jar, and a mandatory timeout. Redirects are restricted to the
// source's own domain when a base url is given.
func NewHttpClient(opts ClientOptions) (*resty.Client, error) {
	client := resty.New()

	if opts.BaseUrl != "" {
		base, err := url.Parse(opts.BaseUrl)
		if err != nil {
			return nil, err
		}
		client.SetBaseURL(opts.BaseUrl)
		client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(base.Hostname()))
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	ua := defaultUserAgent
	if opts.RotateIdentity {
		ua = browser.Random()
	}
	client.SetHeader("User-Agent", ua)
	client.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	client.SetHeader("Accept-Language", "en-US,en;q=0.5")

	client.SetTimeout(opts.Timeout)

	tracerName := opts.TracerName
	if tracerName == "" {
		tracerName = "scrapers/courts/http"
	}
	telemetry.InstrumentResty(client, tracerName)

	return client, nil
}

// ClassifyTransportError maps a fetch error onto the transport slice
// of the error taxonomy: timeouts and connection failures get their
// own classes so the cascade can report them distinctly.
func ClassifyTransportError(err error) Classification {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ClassTransportTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ClassTransportTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ClassTransportConnection
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return ClassTransportConnection
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ClassTransportConnection
	}
	return ClassTransportError
}

// TransportMessage renders a transport classification as a sentence
// fit for direct display.
func TransportMessage(class Classification) string {
	switch class {
	case ClassTransportTimeout:
		return "The court website did not respond in time. It may be under heavy load."
	case ClassTransportConnection:
		return "Unable to connect to the court website."
	default:
		return "A network error occurred while reaching the court website."
	}
}
