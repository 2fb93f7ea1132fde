package app

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
)

type App struct {
	log    *logrus.Logger
	config config.Config
	router *http.ServeMux
	ws     *config.WebSocket
}

func New(log *logrus.Logger, cfg config.Config) *App {
	return &App{
		log:    log,
		config: cfg,
		router: http.NewServeMux(),
	}
}

func (a *App) Handler() (http.Handler, error) {
	ws, err := config.NewWebSocket()
	if err != nil {
		return nil, err
	}
	a.ws = ws

	a.loadRoutes()

	return middleware.Wrap(
		a.router,
		middleware.Cors(),
		middleware.Logging(a.log.WithField("component", "http")),
	), nil
}

// Start serves until ctx is done or the listener fails, then shuts the
// server down within the configured timeout.
func (a *App) Start(ctx context.Context) error {
	handler, err := a.Handler()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: handler,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to play @ http://%s", a.config.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(
			context.Background(), a.config.ShutdownTimeout.Duration,
		)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
