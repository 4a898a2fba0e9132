package courts

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"nyayalens-backend/lib/htmlutil"
)

// The label vocabulary is an ordered list of (match, assign) rules so
// new source phrasings can be added without touching the scan loop.
// Matching is case-insensitive substring; a later matching row
// overwrites an earlier one for the same field.

type labelRule struct {
	match  func(label string) bool
	assign func(r *CaseRecord, value string)
}

func labelHasAll(label string, words ...string) bool {
	for _, w := range words {
		if !strings.Contains(label, w) {
			return false
		}
	}
	return true
}

func labelHasAny(label string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(label, w) {
			return true
		}
	}
	return false
}

var labelVocabulary = []labelRule{
	{
		match:  func(l string) bool { return labelHasAny(l, "petitioner", "plaintiff") },
		assign: func(r *CaseRecord, v string) { r.Plaintiff = v },
	},
	{
		match:  func(l string) bool { return labelHasAny(l, "respondent", "defendant") },
		assign: func(r *CaseRecord, v string) { r.Defendant = v },
	},
	{
		match:  func(l string) bool { return labelHasAll(l, "filing", "date") },
		assign: func(r *CaseRecord, v string) { r.FilingDate = v },
	},
	{
		match:  func(l string) bool { return labelHasAll(l, "next", "date") },
		assign: func(r *CaseRecord, v string) { r.NextHearingDate = v },
	},
	{
		match:  func(l string) bool { return strings.Contains(l, "status") },
		assign: func(r *CaseRecord, v string) { r.Status = v },
	},
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{4}`),
	regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2}`),
	regexp.MustCompile(`\d{4}[-/]\d{1,2}[-/]\d{1,2}`),
}

// ExtractDate pulls the first date-looking substring out of free text.
// The result stays a string: source date formats are not trustworthy
// enough to parse and reformat.
func ExtractDate(text string) string {
	for _, pattern := range datePatterns {
		if match := pattern.FindString(text); match != "" {
			return match
		}
	}
	return ""
}

var partiesPattern = regexp.MustCompile(`([A-Za-z\s\.]+)\s+v[s]?\.\s+([A-Za-z\s\.]+)`)
var anyDatePattern = regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{4}`)

// Normalize reduces a results page into the canonical case record.
// Court site HTML changes without notice, so every step degrades to a
// partial record instead of failing; party names in particular are
// only ever produced by the label scan or the explicit "X v. Y"
// fallback, never invented.
func Normalize(doc *goquery.Document, base *url.URL) CaseRecord {
	var record CaseRecord

	htmlutil.LabelValueRows(doc, func(label, value string) {
		label = strings.ToLower(label)
		for _, rule := range labelVocabulary {
			if rule.match(label) {
				rule.assign(&record, value)
				// first matching rule per row; later rows for the
				// same field still overwrite (last write wins)
				break
			}
		}
	})

	for _, anchor := range htmlutil.GetAnchors(doc.Find("a[href]")) {
		if !documentLinkPattern.MatchString(anchor.Href) {
			continue
		}

		resolved := anchor.Href
		if base != nil {
			if ref, err := url.Parse(anchor.Href); err == nil {
				resolved = base.ResolveReference(ref).String()
			}
		}

		title := anchor.Name
		if title == "" {
			title = "Court Order"
		}
		record.Orders = append(record.Orders, OrderRecord{
			Title:       title,
			Date:        ExtractDate(title),
			DocumentURL: resolved,
			Category:    "Order",
		})
	}

	if !record.Found() {
		fallbackExtraction(doc, &record)
	}

	return record
}

// fallbackExtraction scrapes the page's plain text when no structured
// data matched: an "X v. Y" pattern yields party names, and date-like
// substrings yield filing/next-hearing dates (first and last match,
// the latter only when two distinct dates exist).
func fallbackExtraction(doc *goquery.Document, record *CaseRecord) {
	text := doc.Text()

	if groups := partiesPattern.FindStringSubmatch(text); groups != nil {
		record.Plaintiff = strings.TrimSpace(groups[1])
		record.Defendant = strings.TrimSpace(groups[2])
	}

	dates := anyDatePattern.FindAllString(text, -1)
	if len(dates) > 0 {
		record.FilingDate = dates[0]
		if last := dates[len(dates)-1]; len(dates) > 1 && last != dates[0] {
			record.NextHearingDate = last
		}
	}
}
