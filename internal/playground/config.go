package playground

import (
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/requestid"
)

// Config is the playground's environment configuration.
type Config struct {
	AppName   string `env:"APP_NAME" envDefault:"formkit"`
	AppEnv    string `env:"APP_ENV" envDefault:"development"`
	LogFormat string `env:"LOG_FORMAT"`
	LogLevel  string `env:"LOG_LEVEL"`

	// CatalogPath is a YAML rule catalog; empty means the built-in one.
	CatalogPath  string `env:"FORMKIT_CATALOG"`
	WatchCatalog bool   `env:"FORMKIT_WATCH_CATALOG" envDefault:"false"`

	// PagesDir serves *.html pages from disk instead of the embedded set.
	PagesDir   string        `env:"FORMKIT_PAGES_DIR"`
	SessionTTL time.Duration `env:"FORMKIT_SESSION_TTL" envDefault:"30m"`

	HTTP httpserver.Config
}

// NewLogger builds the application logger. Environment defaults apply first;
// LOG_FORMAT and LOG_LEVEL override them. Request ids are attached to every
// record logged with the request context.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(c.AppEnv, c.AppName),
		logger.WithOutput(w),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if c.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(c.LogFormat)))
	}
	if c.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(c.LogLevel))
	}
	return logger.New(opts...)
}
