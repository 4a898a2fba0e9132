// Package delhihc queries the Delhi High Court case information site,
// the primary source of this system. The site is periodically gated
// behind a verification challenge; the adapter reports that condition
// as a distinct outcome so the orchestrator can cascade.
package delhihc

import (
	"bytes"
	"context"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"nyayalens-backend/lib/scrapers/courts"
)

var tracer = otel.Tracer("scrapers/delhihc")

const SourceName = "Delhi High Court"

const (
	defaultBaseUrl   = "https://dhccaseinfo.nic.in/"
	defaultSearchUrl = "https://dhccaseinfo.nic.in/pcase/guiCaseWise.php"
	// the primary source gets a generous budget: it is a single
	// attempt and the site is chronically overloaded
	defaultTimeout = 15 * time.Second
	// the opportunistic bare submission is a side bet and fails fast
	bypassTimeout = 10 * time.Second
)

// human-actionable suggestions surfaced when the challenge blocks a
// search. these are display data for the caller, not retry policy.
var challengeAlternatives = []string{
	"Try during low-traffic hours (6-8 AM or 10-11 PM)",
	"Use a different browser or clear cookies and retry",
	"Contact the Delhi High Court registry at 011-23854065",
	"Submit an RTI application if the information is urgent",
}

type Options struct {
	BaseUrl   string `json:"base_url"`
	SearchUrl string `json:"search_url"`
	// TimeoutSeconds falls back to 15 when zero.
	TimeoutSeconds int `json:"timeout_seconds"`
	// SkipBypassAttempt disables the opportunistic form submission
	// that is normally tried even when a challenge is detected; some
	// challenge-gated deployments still accept bare posts.
	SkipBypassAttempt bool `json:"skip_bypass_attempt"`
	RotateIdentity    bool `json:"rotate_identity"`
}

type Client struct {
	http      *resty.Client
	base      *url.URL
	searchUrl string
	opts      Options
}

// NewClient builds a fresh client with its own cookie jar; callers
// construct one per logical search so no session state leaks between
// requests.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = defaultBaseUrl
	}
	if opts.SearchUrl == "" {
		opts.SearchUrl = defaultSearchUrl
	}
	timeout := defaultTimeout
	if opts.TimeoutSeconds > 0 {
		timeout = time.Duration(opts.TimeoutSeconds) * time.Second
	}

	base, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	http, err := courts.NewHttpClient(courts.ClientOptions{
		Timeout:        timeout,
		RotateIdentity: opts.RotateIdentity,
		TracerName:     "scrapers/delhihc/http",
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		http:      http,
		base:      base,
		searchUrl: opts.SearchUrl,
		opts:      opts,
	}, nil
}

func (c *Client) Name() string {
	return SourceName
}

// SearchCase runs the full primary-source flow: fetch the search page,
// classify it, infer and submit the form, and normalize the response.
// Every failure mode folds into the returned outcome.
func (c *Client) SearchCase(ctx context.Context, req courts.CaseRequest) courts.SourceOutcome {
	ctx, span := tracer.Start(ctx, "SearchCase")
	defer span.End()
	span.SetAttributes(
		attribute.String("case_type", req.CaseType),
		attribute.String("case_number", req.CaseNumber),
		attribute.String("filing_year", req.FilingYear),
	)

	outcome := courts.SourceOutcome{Source: SourceName, Endpoint: c.searchUrl}

	res, err := c.http.R().SetContext(ctx).Get(c.searchUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch search page")
		outcome.Classification = courts.ClassifyTransportError(err)
		outcome.Message = courts.TransportMessage(outcome.Classification)
		return outcome
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse search page html")
		outcome.Classification = courts.ClassParseFailure
		outcome.Message = "The court website returned a page that could not be parsed."
		return outcome
	}

	analysis := courts.Analyze(doc)

	if analysis.Class == courts.ChallengePresent {
		outcome.ChallengeDetected = true
		span.AddEvent("challenge detected")

		if !c.opts.SkipBypassAttempt && len(analysis.Form) > 0 {
			if record, ok := c.attemptBypass(ctx, req, analysis); ok {
				span.AddEvent("challenge bypassed")
				record.Notes = "Retrieved despite verification challenge (bare form submission)"
				outcome.Success = true
				outcome.Record = record
				outcome.ChallengeBypassed = true
				return outcome
			}
		}

		outcome.Classification = courts.ClassChallengeBlocked
		outcome.Message = "The court website requires human verification before it will answer searches."
		outcome.DirectURL = c.searchUrl
		outcome.Alternatives = challengeAlternatives
		return outcome
	}

	if len(analysis.Form) == 0 {
		outcome.Classification = courts.ClassParseFailure
		outcome.Message = "Could not locate a search form on the court website."
		return outcome
	}

	return c.submitAndParse(ctx, req, analysis, outcome)
}

// attemptBypass posts the inferred form despite the detected
// challenge. Only a found record counts; anything else means the gate
// held.
func (c *Client) attemptBypass(ctx context.Context, req courts.CaseRequest, analysis courts.PageAnalysis) (courts.CaseRecord, bool) {
	ctx, span := tracer.Start(ctx, "attemptBypass")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, bypassTimeout)
	defer cancel()

	fields := courts.InferFormFields(req, analysis.Form)
	res, err := c.http.R().SetContext(ctx).SetFormData(fields).Post(c.searchUrl)
	if err != nil {
		span.RecordError(err)
		return courts.CaseRecord{}, false
	}
	if res.StatusCode() != 200 || len(res.Body()) < 1000 {
		return courts.CaseRecord{}, false
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		return courts.CaseRecord{}, false
	}
	if courts.Analyze(doc).Class != courts.ResultsPresent {
		return courts.CaseRecord{}, false
	}

	record := courts.Normalize(doc, c.base)
	return record, record.Found()
}

func (c *Client) submitAndParse(ctx context.Context, req courts.CaseRequest, analysis courts.PageAnalysis, outcome courts.SourceOutcome) courts.SourceOutcome {
	ctx, span := tracer.Start(ctx, "submitAndParse")
	defer span.End()

	fields := courts.InferFormFields(req, analysis.Form)
	res, err := c.http.R().SetContext(ctx).SetFormData(fields).Post(c.searchUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit search form")
		outcome.Classification = courts.ClassifyTransportError(err)
		outcome.Message = courts.TransportMessage(outcome.Classification)
		return outcome
	}
	outcome.Raw = courts.RawSnippet(res.Body())

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse results html")
		outcome.Classification = courts.ClassParseFailure
		outcome.Message = "The court website returned a results page that could not be parsed."
		return outcome
	}

	switch courts.Analyze(doc).Class {
	case courts.NoRecordsFound:
		outcome.Classification = courts.ClassNotFound
		outcome.Message = "No case found with the provided details. Verify case type, number and filing year."
		return outcome
	case courts.ChallengePresent:
		outcome.ChallengeDetected = true
		outcome.Classification = courts.ClassChallengeBlocked
		outcome.Message = "The court website challenged the search submission."
		outcome.DirectURL = c.searchUrl
		outcome.Alternatives = challengeAlternatives
		return outcome
	}

	record := courts.Normalize(doc, c.base)
	if !record.Found() {
		outcome.Classification = courts.ClassParseFailure
		outcome.Message = "Unable to parse case details from the response. The site structure may have changed."
		return outcome
	}

	outcome.Success = true
	outcome.Record = record
	return outcome
}
