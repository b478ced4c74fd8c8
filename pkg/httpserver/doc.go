// Package httpserver wraps net/http with graceful shutdown, configurable
// timeouts, life-cycle hooks and a health-check handler.
//
// Run binds the listener first, so an unusable address is reported
// immediately as ErrStart, then serves until the context is cancelled or
// Shutdown is called. Addr reports the bound address, which makes ":0"
// usable in tests.
//
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.HealthCheckHandler(log))
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Shutdown errors are wrapped with ErrShutdown. Use errors.Is to distinguish them.
package httpserver
