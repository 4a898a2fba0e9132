package courts

// CaseRequest is the caller's immutable search input. All three fields
// must be non-empty; the plausibility of their values is advisory only
// (see Validate), since court registries accept codes this system has
// never heard of.
type CaseRequest struct {
	CaseType   string `json:"case_type"`
	CaseNumber string `json:"case_number"`
	FilingYear string `json:"filing_year"`
}

// OrderRecord is one order/judgment reference attached to a case.
// Dates are free-form strings in whatever format the source used.
// Exactly one of DocumentURL (resolvable) or DocumentRef (opaque,
// generated) is expected to be set.
type OrderRecord struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	DocumentURL string `json:"document_url,omitempty"`
	DocumentRef string `json:"document_ref,omitempty"`
	Category    string `json:"category"`
}

// CaseRecord is the canonical, source-independent case shape every
// adapter normalizes into.
type CaseRecord struct {
	Plaintiff       string        `json:"plaintiff"`
	Defendant       string        `json:"defendant"`
	FilingDate      string        `json:"filing_date"`
	NextHearingDate string        `json:"next_hearing_date"`
	Status          string        `json:"status"`
	Orders          []OrderRecord `json:"orders"`
	// Notes carries provenance remarks, e.g. that the record is
	// synthetic or was retrieved despite a verification challenge.
	Notes string `json:"notes,omitempty"`
}

// Found reports whether the record carries any case information at
// all. Notes is deliberately excluded: provenance remarks alone do
// not make a record informative.
func (r CaseRecord) Found() bool {
	return r.Plaintiff != "" ||
		r.Defendant != "" ||
		r.FilingDate != "" ||
		r.NextHearingDate != "" ||
		r.Status != "" ||
		len(r.Orders) > 0
}

type Classification string

const (
	ClassTransportTimeout        Classification = "transport_timeout"
	ClassTransportConnection     Classification = "transport_connection_failure"
	ClassTransportError          Classification = "transport_error"
	ClassChallengeBlocked        Classification = "challenge_blocked"
	ClassNotFound                Classification = "not_found"
	ClassParseFailure            Classification = "parse_failure"
	ClassAllEndpointsUnavailable Classification = "all_endpoints_unavailable"
	ClassInternal                Classification = "internal_error"
)

// SourceOutcome is the uniform result of asking one source (or one
// fallback endpoint) about a case. Adapters never let transport or
// parse errors escape; they fold them into this value.
type SourceOutcome struct {
	Source   string `json:"source"`
	Endpoint string `json:"endpoint,omitempty"`

	Success bool       `json:"success"`
	Record  CaseRecord `json:"record,omitempty"`

	Classification Classification `json:"classification,omitempty"`
	Message        string         `json:"message,omitempty"`

	ChallengeDetected bool `json:"challenge_detected,omitempty"`
	ChallengeBypassed bool `json:"challenge_bypassed,omitempty"`

	// DirectURL and Alternatives are advisory strings for a human,
	// not retry instructions for the system.
	DirectURL    string   `json:"direct_url,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`

	// Raw holds a truncated snippet of the source response, retained
	// for later inspection of parse failures. Never rendered to users.
	Raw string `json:"-"`
}

// RawSnippetLimit caps how much of a source response is retained on
// an outcome.
const RawSnippetLimit = 2000

// RawSnippet truncates a response body for storage on an outcome.
func RawSnippet(body []byte) string {
	if len(body) <= RawSnippetLimit {
		return string(body)
	}
	return string(body[:RawSnippetLimit]) + "..."
}

// FallbackTrace is the ordered list of per-source attempts retained
// for diagnostics when everything fails.
type FallbackTrace []SourceOutcome
