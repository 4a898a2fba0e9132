package courts

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type PageClass string

const (
	ChallengePresent PageClass = "challenge_present"
	NoRecordsFound   PageClass = "no_records_found"
	ResultsPresent   PageClass = "results_present"
	Unparseable      PageClass = "unparseable"
)

// FormOption is one <option> of a select field.
type FormOption struct {
	Value string
	Label string
}

// FormField describes one submittable field of a search form. Tag
// distinguishes selects from inputs; Type is the input type attribute.
type FormField struct {
	Name    string
	Tag     string
	Type    string
	Value   string
	Options []FormOption
}

// PageAnalysis is what the structure analyzer learned about one page.
type PageAnalysis struct {
	Class PageClass
	// Form holds the first submittable form's field descriptors,
	// present regardless of classification (a challenge page usually
	// still carries the search form).
	Form []FormField
}

var challengeSrcPattern = regexp.MustCompile(`(?i)captcha|verification|audio`)
var challengeTextPattern = regexp.MustCompile(`(?i)captcha|verification`)

var noRecordsPhrases = []string{
	"no record found",
	"no records found",
	"case not found",
	"invalid case number",
	"no matching records",
}

var documentLinkPattern = regexp.MustCompile(`(?i)\.pdf$`)

// Analyze classifies a fetched page. Challenge detection runs first:
// challenge pages often contain result-like boilerplate that would
// otherwise classify as results.
func Analyze(doc *goquery.Document) PageAnalysis {
	analysis := PageAnalysis{
		Form: extractFormFields(doc),
	}

	if hasChallenge(doc) {
		analysis.Class = ChallengePresent
		return analysis
	}

	bodyText := strings.ToLower(doc.Text())
	for _, phrase := range noRecordsPhrases {
		if strings.Contains(bodyText, phrase) {
			analysis.Class = NoRecordsFound
			return analysis
		}
	}

	if hasResults(doc) {
		analysis.Class = ResultsPresent
		return analysis
	}

	analysis.Class = Unparseable
	return analysis
}

func hasChallenge(doc *goquery.Document) bool {
	found := false
	doc.Find("img, audio").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if challengeSrcPattern.MatchString(el.AttrOr("src", "")) {
			found = true
			return false
		}
		return true
	})
	if found {
		return true
	}
	// some court sites serve the puzzle as a bare "audio.jpg" without
	// any telling attribute, or only mention verification in prose
	text := doc.Text()
	if strings.Contains(text, "audio.jpg") {
		return true
	}
	return challengeTextPattern.MatchString(text)
}

func hasResults(doc *goquery.Document) bool {
	dataRow := false
	doc.Find("table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if row.Find("td, th").Length() >= 2 {
			dataRow = true
			return false
		}
		return true
	})
	if dataRow {
		return true
	}

	docLink := false
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if documentLinkPattern.MatchString(a.AttrOr("href", "")) {
			docLink = true
			return false
		}
		return true
	})
	return docLink
}

func extractFormFields(doc *goquery.Document) []FormField {
	form := doc.Find("form").First()
	if form.Length() == 0 {
		return nil
	}

	var fields []FormField
	form.Find("input, select, textarea").Each(func(_ int, el *goquery.Selection) {
		name := el.AttrOr("name", "")
		if name == "" {
			return
		}

		field := FormField{
			Name:  name,
			Tag:   goquery.NodeName(el),
			Type:  strings.ToLower(el.AttrOr("type", "")),
			Value: el.AttrOr("value", ""),
		}
		if field.Tag == "select" {
			el.Find("option").Each(func(_ int, opt *goquery.Selection) {
				field.Options = append(field.Options, FormOption{
					Value: opt.AttrOr("value", ""),
					Label: strings.TrimSpace(opt.Text()),
				})
			})
		}
		fields = append(fields, field)
	})
	return fields
}
