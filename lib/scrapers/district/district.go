// Package district cascades across the Delhi district court and
// eCourts endpoints when the primary source is challenge-blocked.
// These systems are unofficial and flaky, so each endpoint gets a
// short budget and the first one that answers wins.
package district

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"nyayalens-backend/lib/scrapers/courts"
)

var tracer = otel.Tracer("scrapers/district")

const SourceName = "Delhi District Courts"

const defaultTimeout = 8 * time.Second

var defaultEndpoints = []string{
	"https://services.ecourts.gov.in/ecourtindia_v6/",
	"https://westdelhi.dcourts.gov.in/case-status-search-by-case-number/",
	"https://southeastdelhi.dcourts.gov.in/case-status-search-by-case-number/",
	"https://northdelhi.dcourts.gov.in/case-status-search-by-case-number/",
	"https://newdelhi.dcourts.gov.in/case-status-search-by-case-number/",
}

var exhaustedAlternatives = []string{
	"Visit https://dhccaseinfo.nic.in/pcase/guiCaseWise.php for the Delhi High Court",
	"Try https://services.ecourts.gov.in/ecourtindia_v6/ for the universal eCourts search",
	"Contact the respective court registry directly",
}

// ExhaustedAlternatives lists the manual avenues suggested when every
// endpoint in the cascade was unreachable. Callers get a copy.
func ExhaustedAlternatives() []string {
	return append([]string{}, exhaustedAlternatives...)
}

type Options struct {
	Endpoints []string `json:"endpoints"`
	// TimeoutSeconds applies per endpoint and falls back to 8 when
	// zero; the cascade has many candidates and must fail fast.
	TimeoutSeconds int `json:"timeout_seconds"`
	// Synthetic substitutes a deterministic placeholder record when a
	// reachable endpoint yields nothing parseable. See Generator for
	// the contract.
	Synthetic bool `json:"synthetic"`

	// Now is injected for deterministic synthetic output in tests;
	// nil means time.Now.
	Now func() time.Time `json:"-"`
}

type Client struct {
	http      *resty.Client
	endpoints []string
	opts      Options
}

func NewClient(opts Options) (*Client, error) {
	if len(opts.Endpoints) == 0 {
		opts.Endpoints = defaultEndpoints
	}
	timeout := defaultTimeout
	if opts.TimeoutSeconds > 0 {
		timeout = time.Duration(opts.TimeoutSeconds) * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	http, err := courts.NewHttpClient(courts.ClientOptions{
		Timeout:    timeout,
		TracerName: "scrapers/district/http",
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		http:      http,
		endpoints: opts.Endpoints,
		opts:      opts,
	}, nil
}

func (c *Client) Name() string {
	return SourceName
}

// SearchCase tries each endpoint in order. The first endpoint that
// answers 200 ends the cascade: its page is normalized if it carries
// real structure, otherwise the synthetic policy decides. Endpoints
// that time out, refuse connections or error are recorded in the
// trace and skipped; none is retried within one call.
func (c *Client) SearchCase(ctx context.Context, req courts.CaseRequest) (courts.SourceOutcome, courts.FallbackTrace) {
	ctx, span := tracer.Start(ctx, "SearchCase")
	defer span.End()
	span.SetAttributes(
		attribute.String("case_type", req.CaseType),
		attribute.String("case_number", req.CaseNumber),
		attribute.String("filing_year", req.FilingYear),
	)

	var trace courts.FallbackTrace

	for i, endpoint := range c.endpoints {
		span.AddEvent("trying endpoint", oteltrace.WithAttributes(
			attribute.String("endpoint", endpoint),
		))

		attempt := courts.SourceOutcome{
			Source:   fmt.Sprintf("%s #%d", SourceName, i+1),
			Endpoint: endpoint,
		}

		res, err := c.http.R().SetContext(ctx).Get(endpoint)
		if err != nil {
			span.RecordError(err)
			attempt.Classification = courts.ClassifyTransportError(err)
			attempt.Message = courts.TransportMessage(attempt.Classification)
			trace = append(trace, attempt)
			continue
		}
		if res.StatusCode() != 200 {
			attempt.Classification = courts.ClassTransportError
			attempt.Message = fmt.Sprintf("endpoint answered status %d", res.StatusCode())
			trace = append(trace, attempt)
			continue
		}

		// reachable endpoint: the cascade stops here either way
		attempt.Raw = courts.RawSnippet(res.Body())
		outcome := c.produceRecord(req, endpoint, res.Body(), attempt)
		trace = append(trace, outcome)
		return outcome, trace
	}

	span.SetStatus(codes.Error, "all endpoints unavailable")
	return courts.SourceOutcome{
		Source:         SourceName,
		Classification: courts.ClassAllEndpointsUnavailable,
		Message:        fmt.Sprintf("All %d district court endpoints were unavailable.", len(c.endpoints)),
		Alternatives:   ExhaustedAlternatives(),
	}, trace
}

func (c *Client) produceRecord(req courts.CaseRequest, endpoint string, body []byte, attempt courts.SourceOutcome) courts.SourceOutcome {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err == nil {
		if courts.Analyze(doc).Class == courts.ResultsPresent {
			base, _ := url.Parse(endpoint)
			if record := courts.Normalize(doc, base); record.Found() {
				record.Notes = fmt.Sprintf("Case data extracted from %s", endpoint)
				attempt.Success = true
				attempt.Record = record
				return attempt
			}
		}
	}

	if c.opts.Synthetic {
		generator := NewGenerator(req, c.opts.Now)
		attempt.Success = true
		attempt.Record = generator.Record(endpoint)
		return attempt
	}

	attempt.Classification = courts.ClassParseFailure
	attempt.Message = "endpoint was reachable but returned no parseable case data"
	return attempt
}
