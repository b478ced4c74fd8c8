package validator

// EqualStrings validates that value equals other, compared raw.
// The rule passes while either side is empty so an incomplete pair is never
// reported as a mismatch.
func EqualStrings(field, value, otherField, other string) Rule {
	return Rule{
		Check: func() bool { return value == "" || other == "" || value == other },
		Error: failure(field, keyMismatch, "does not match "+otherField,
			map[string]any{"other": otherField}),
	}
}
