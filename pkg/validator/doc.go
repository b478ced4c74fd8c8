// Package validator provides the small set of rule primitives the form
// engines are built from.
//
// A Rule pairs a boolean Check with the ValidationError reported when the
// check fails. Rules close over the values they inspect, so building a rule
// is cheap and evaluating it has no side effects.
//
// Two evaluators are provided:
//
//   - Apply runs every rule and aggregates all failures into ValidationErrors.
//   - First runs rules in order and stops at the first failure. This is the
//     per-field semantics of the form engine: required, then format, then
//     relational checks, and only the first problem is shown.
//
// # Usage
//
//	if err := validator.First(
//		validator.RequiredString("username", v).WithMessage("Username is required."),
//		validator.MatchesPattern("username", v, usernameRe).WithMessage("Invalid username."),
//	); err != nil {
//		fmt.Println(err.Message)
//	}
//
// # Empty values
//
// Only RequiredString fails on empty input. Length, pattern and equality
// rules treat an empty value as passing so that absence is reported once,
// by the required rule, and optional fields remain optional.
//
// # Error Handling
//
// ValidationError and ValidationErrors both implement error. Use
// ExtractValidationErrors to recover field details from a returned error.
package validator
