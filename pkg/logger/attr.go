package logger

import (
	"log/slog"
)

// Error records err under "error". A nil error yields an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Form records a form id.
func Form(id string) slog.Attr {
	return slog.String("form", id)
}

// Field records a field id.
func Field(id string) slog.Attr {
	return slog.String("field", id)
}

// Table records a table id.
func Table(id string) slog.Attr {
	return slog.String("table", id)
}

// Control records a filter control id.
func Control(id string) slog.Attr {
	return slog.String("control", id)
}

// Session records a playground session id.
func Session(id string) slog.Attr {
	return slog.String("session", id)
}

// Event records a DOM event type.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Outcome records the result of a submit or validation run.
func Outcome(name string) slog.Attr {
	return slog.String("outcome", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
