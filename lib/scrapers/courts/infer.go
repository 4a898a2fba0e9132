package courts

import "strings"

// Form inference maps the three logical inputs onto a form whose field
// names this system has never seen. The heuristics are encoded as an
// ordered rule table: the first rule that claims a field wins.

type inferRule struct {
	claims func(f FormField) bool
	apply  func(f FormField, req CaseRequest) string
}

func nameContains(f FormField, substrs ...string) bool {
	name := strings.ToLower(f.Name)
	for _, s := range substrs {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

var inferRules = []inferRule{
	// hidden fields round-trip unchanged: they are session and
	// anti-forgery tokens the server must see back verbatim
	{
		claims: func(f FormField) bool { return f.Type == "hidden" },
		apply:  func(f FormField, _ CaseRequest) string { return f.Value },
	},
	// case-type select: exact match against option value or label,
	// falling back to the raw requested value
	{
		claims: func(f FormField) bool {
			return f.Tag == "select" && nameContains(f, "type", "case")
		},
		apply: func(f FormField, req CaseRequest) string {
			for _, opt := range f.Options {
				if opt.Value == req.CaseType || opt.Label == req.CaseType {
					return opt.Value
				}
			}
			return req.CaseType
		},
	},
	{
		claims: func(f FormField) bool {
			return f.Tag == "select" && nameContains(f, "year")
		},
		apply: func(_ FormField, req CaseRequest) string { return req.FilingYear },
	},
	{
		claims: func(f FormField) bool {
			return f.Type == "text" && nameContains(f, "number", "no")
		},
		apply: func(_ FormField, req CaseRequest) string { return req.CaseNumber },
	},
	{
		claims: func(f FormField) bool { return f.Type == "submit" },
		apply: func(f FormField, _ CaseRequest) string {
			if f.Value != "" {
				return f.Value
			}
			return "Submit"
		},
	},
}

// InferFormFields produces a submittable field map from the analyzed
// form descriptors. The result is best-effort by contract: a source
// may silently reject it, which is a data condition, not an error.
func InferFormFields(req CaseRequest, fields []FormField) map[string]string {
	data := map[string]string{}

	for _, field := range fields {
		for _, rule := range inferRules {
			if rule.claims(field) {
				data[field.Name] = rule.apply(field, req)
				break
			}
		}
	}

	// sources with unrecognized field naming still receive all three
	// inputs under conventional names
	if !anyKeyContains(data, "type") {
		data["case_type"] = req.CaseType
	}
	if !anyKeyContains(data, "number", "no") {
		data["case_no"] = req.CaseNumber
	}
	if !anyKeyContains(data, "year") {
		data["year"] = req.FilingYear
	}

	return data
}

func anyKeyContains(data map[string]string, substrs ...string) bool {
	for key := range data {
		lower := strings.ToLower(key)
		for _, s := range substrs {
			if strings.Contains(lower, s) {
				return true
			}
		}
	}
	return false
}
