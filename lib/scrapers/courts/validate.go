package courts

import (
	"fmt"
	"strconv"
	"time"

	"github.com/antzucaro/matchr"
)

var knownCaseTypes = []string{
	"W.P.(C)", "CRL.A.", "CS(OS)", "ARB.P.", "RFA",
	"CRP", "FAO", "LPA", "CM", "CRL.REV.",
}

const suggestionThreshold = 0.75

// Validate checks the request for plausibility and returns warnings,
// never hard failures: registries use case-type codes this list has
// never seen, so an unknown code must still reach the source.
func Validate(req CaseRequest, now time.Time) []string {
	var warnings []string

	if !knownCaseType(req.CaseType) {
		warning := fmt.Sprintf("unrecognized case type %q", req.CaseType)
		if suggestion := nearestCaseType(req.CaseType); suggestion != "" {
			warning += fmt.Sprintf(", did you mean %q?", suggestion)
		}
		warnings = append(warnings, warning)
	}

	num, err := strconv.Atoi(req.CaseNumber)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("case number %q is not numeric", req.CaseNumber))
	} else if num <= 0 || num > 99999 {
		warnings = append(warnings, fmt.Sprintf("case number %q is outside the plausible range 1-99999", req.CaseNumber))
	}

	year, err := strconv.Atoi(req.FilingYear)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("filing year %q is not numeric", req.FilingYear))
	} else if year < 1950 || year > now.Year() {
		warnings = append(warnings, fmt.Sprintf("filing year %q is outside the plausible range 1950-%d", req.FilingYear, now.Year()))
	}

	return warnings
}

func knownCaseType(caseType string) bool {
	for _, known := range knownCaseTypes {
		if known == caseType {
			return true
		}
	}
	return false
}

func nearestCaseType(caseType string) string {
	best := ""
	bestSimilarity := 0.0
	for _, known := range knownCaseTypes {
		similarity := matchr.JaroWinkler(caseType, known, false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = known
		}
	}
	if bestSimilarity < suggestionThreshold {
		return ""
	}
	return best
}
