package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"paysim/pkg/config"
	"paysim/pkg/contracts"
	"paysim/pkg/logger"
	"paysim/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type Application struct {
	cfg     *config.StubConfig
	server  *http.Server
	handler http.Handler
}

func NewApplication(cfg *config.StubConfig) *Application {
	return &Application{cfg: cfg}
}

// SetApp mounts the handlers behind the middleware stack and prepares the
// HTTP server.
func (a *Application) SetApp(handlers ...contracts.Handler) {
	router := httprouter.New()
	for _, h := range handlers {
		h.RegisterRoutes(router)
	}

	var appHandler http.Handler = router
	appHandler = middleware.RequestTimeout(a.cfg.WriteTimeout)(appHandler)
	appHandler = middleware.RequestLogging(a.cfg.Log)(appHandler)
	appHandler = middleware.Recovery(a.cfg.Log)(appHandler)
	a.handler = appHandler

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      a.handler,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Handler() http.Handler {
	return a.handler
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", logger.Err(err))

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig.String())
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", logger.Err(err))
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", logger.Err(err))
		}
	}

	a.cfg.Log.Info("Server stopped gracefully")
}
