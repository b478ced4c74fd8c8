package formspec

import "errors"

var (
	// ErrDecode is returned when catalog YAML cannot be decoded.
	ErrDecode = errors.New("formspec: failed to decode catalog")

	// ErrEmptyID is returned when a form, field, table, control or sort key has no id.
	ErrEmptyID = errors.New("formspec: empty id")

	// ErrDuplicateID is returned when two siblings share an id.
	ErrDuplicateID = errors.New("formspec: duplicate id")

	// ErrUnknownCheck is returned for an unsupported check kind.
	ErrUnknownCheck = errors.New("formspec: unknown check kind")

	// ErrMissingMessage is returned when a check has no user-facing message.
	ErrMissingMessage = errors.New("formspec: check has no message")

	// ErrUnknownPattern is returned when a check names a pattern the catalog
	// does not define, or gives no pattern at all.
	ErrUnknownPattern = errors.New("formspec: unknown pattern")

	// ErrInvalidPattern is returned when an expression does not compile.
	ErrInvalidPattern = errors.New("formspec: invalid pattern")

	// ErrInvalidLimit is returned for non-positive length limits or negative slot hours.
	ErrInvalidLimit = errors.New("formspec: invalid limit")

	// ErrUnknownField is returned when a matches check or slot refers to a
	// field that is not part of the same form.
	ErrUnknownField = errors.New("formspec: unknown field reference")

	// ErrInvalidEvent is returned for live event types other than input and change.
	ErrInvalidEvent = errors.New("formspec: invalid event type")

	// ErrInvalidMatch is returned for an unsupported control match mode.
	ErrInvalidMatch = errors.New("formspec: invalid match mode")

	// ErrUnknownControl is returned when a dependency names a control that is
	// not part of the same table.
	ErrUnknownControl = errors.New("formspec: unknown control reference")

	// ErrFormNotFound is returned by Catalog.Form.
	ErrFormNotFound = errors.New("formspec: form not found")

	// ErrTableNotFound is returned by Catalog.Table.
	ErrTableNotFound = errors.New("formspec: table not found")
)
