// Package requestid tags every HTTP request with a correlation id.
//
// The middleware reuses a well-formed X-Request-ID header or generates a
// UUIDv4, stores the id in the request context and echoes it back. Pair it
// with the logger so every record written with the request context carries
// the id:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware())
package requestid
