package validator

import "regexp"

// MatchesPattern validates value against a precompiled pattern.
// Empty values pass so optional fields stay optional.
func MatchesPattern(field, value string, re *regexp.Regexp) Rule {
	return Rule{
		Check: func() bool { return value == "" || re == nil || re.MatchString(value) },
		Error: failure(field, keyPattern, "has an invalid format",
			map[string]any{"pattern": patternString(re)}),
	}
}

// DoesNotMatchPattern is the negation of MatchesPattern; empty values pass.
func DoesNotMatchPattern(field, value string, re *regexp.Regexp) Rule {
	return Rule{
		Check: func() bool { return value == "" || re == nil || !re.MatchString(value) },
		Error: failure(field, keyNotPattern, "has a forbidden format",
			map[string]any{"pattern": patternString(re)}),
	}
}

func patternString(re *regexp.Regexp) string {
	if re == nil {
		return ""
	}
	return re.String()
}
