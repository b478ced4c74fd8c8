package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RequiredString fails when value is blank after trimming.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: failure(field, keyRequired, "field is required", nil),
	}
}

// MinLenString counts characters of the raw value. Empty values pass;
// presence is RequiredString's job.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return value == "" || utf8.RuneCountInString(value) >= min },
		Error: failure(field, keyMinLength,
			fmt.Sprintf("must be at least %d characters long", min),
			map[string]any{"min": min}),
	}
}

// MaxLenString counts characters of the trimmed value.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(strings.TrimSpace(value)) <= max },
		Error: failure(field, keyMaxLength,
			fmt.Sprintf("must be at most %d characters long", max),
			map[string]any{"max": max}),
	}
}

// failure builds the error a rule reports. values always carries the field.
func failure(field, key, msg string, values map[string]any) ValidationError {
	if values == nil {
		values = make(map[string]any, 1)
	}
	values["field"] = field
	return ValidationError{
		Field:             field,
		Message:           msg,
		TranslationKey:    key,
		TranslationValues: values,
	}
}
