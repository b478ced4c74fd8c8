// Package formspec is the declarative data model shared by the form
// validation and table filter engines.
//
// A Catalog holds named regular expressions, Form specs (ordered fields, each
// with an ordered list of checks) and Table specs (filter controls bound to
// row data attributes). Catalogs are written in YAML:
//
//	patterns:
//	  email: '^\S+@\S+\.\S+$'
//	forms:
//	  - id: password_reset_form
//	    fields:
//	      - id: email
//	        checks:
//	          - {kind: required, message: Email is required.}
//	          - {kind: pattern, pattern: email, message: Please enter a valid email address.}
//
// Check is a tagged variant (required, pattern, not_pattern, min_length,
// max_length, matches). Checks may reference a named pattern or carry an
// inline regex; Compile resolves names and compiles expressions once, so a
// check can never point at an expression that does not exist.
//
// Default returns the built-in catalog of the booking application.
//
// # Error Handling
//
// Load, Parse and Compile report every problem at once through errors.Join.
// Each entry wraps one of the sentinel errors in errors.go, so callers can
// test with errors.Is.
package formspec
