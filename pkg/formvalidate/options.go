package formvalidate

import (
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Option configures a Form at attach time.
type Option func(*Form)

// WithLogger supplies the logger used for skipped elements and submit
// outcomes. If nil, a noop logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.log = l
		}
	}
}

// SubmitResult describes one run of the submit path.
type SubmitResult struct {
	Form    string
	Allowed bool
	Errors  validator.ValidationErrors
}

// FieldResult describes one live re-validation of a field.
type FieldResult struct {
	Form  string
	Field string
	Event string
	// Err is nil when the field is valid.
	Err *validator.ValidationError
}

// WithSubmitHook registers a callback that runs after every submit.
func WithSubmitHook(h func(SubmitResult)) Option {
	if h == nil {
		panic("WithSubmitHook: nil hook")
	}
	return func(f *Form) { f.submitHooks = append(f.submitHooks, h) }
}

// WithFieldHook registers a callback that runs after every live re-validation.
func WithFieldHook(h func(FieldResult)) Option {
	if h == nil {
		panic("WithFieldHook: nil hook")
	}
	return func(f *Form) { f.fieldHooks = append(f.fieldHooks, h) }
}
