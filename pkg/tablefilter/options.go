package tablefilter

import "log/slog"

// Option configures a Table at attach time.
type Option func(*Table)

// WithLogger supplies the logger. If nil, a noop logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.log = l
		}
	}
}

// ApplyResult describes one filter pass.
type ApplyResult struct {
	Table   string
	Total   int
	Visible int
	// Values holds the effective value of every control, "all" for missing ones.
	Values map[string]string
}

// WithApplyHook registers a callback that runs after every filter pass.
func WithApplyHook(h func(ApplyResult)) Option {
	if h == nil {
		panic("WithApplyHook: nil hook")
	}
	return func(t *Table) { t.applyHooks = append(t.applyHooks, h) }
}
