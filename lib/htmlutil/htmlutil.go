package htmlutil

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	out := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			out.WriteRune(c)
		}
	}
	return out.String()
}

// CleanText collapses the whitespace soup court sites put inside cells
// and anchors into a single-spaced printable string.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

type Anchor struct {
	Name string
	Href string
}

func GetAnchors(sel *goquery.Selection) []Anchor {
	anchors := []Anchor{}
	sel.Each(func(_ int, a *goquery.Selection) {
		anchors = append(anchors, Anchor{
			Name: CleanText(a.Text()),
			Href: a.AttrOr("href", ""),
		})
	})
	return anchors
}

// LabelValueRows walks every table row with at least two cells and
// yields (cell 0, cell 1) as a cleaned label/value pair.
func LabelValueRows(doc *goquery.Document, fn func(label, value string)) {
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		label := CleanText(cells.Eq(0).Text())
		value := CleanText(cells.Eq(1).Text())
		fn(label, value)
	})
}
