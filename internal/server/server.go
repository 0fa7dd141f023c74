package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/authforms/internal/config"
	"github.com/nfrund/authforms/internal/handlers"
	"github.com/nfrund/authforms/internal/middleware"
	"github.com/nfrund/authforms/internal/notify"
	"github.com/nfrund/authforms/internal/pubsub"
	"github.com/nfrund/authforms/internal/rendering"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	Cfg config.Provider

	bus         *pubsub.WatermillBridge
	formHandler *handlers.FormHandler
}

// New creates a new Server from cfg. Rule files are read from the OS
// filesystem.
func New(cfg config.Provider) (*Server, error) {
	return NewWithFs(cfg, afero.NewOsFs())
}

// NewWithFs creates a new Server reading rule files from fsys.
func NewWithFs(cfg config.Provider, fsys afero.Fs) (*Server, error) {
	injector := NewContainer(cfg, fsys)

	formHandler, err := do.Invoke[*handlers.FormHandler](injector)
	if err != nil {
		return nil, fmt.Errorf("wiring form handler: %w", err)
	}
	bus := do.MustInvoke[*pubsub.WatermillBridge](injector)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.Recover())

	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))

	e.Renderer = rendering.NewUniversalRenderer()
	setupErrorHandling(e)

	s := &Server{
		E:           e,
		Cfg:         cfg,
		bus:         bus,
		formHandler: formHandler,
	}
	if err := s.subscribeNotifications(); err != nil {
		return nil, err
	}
	return s, nil
}

// Bus exposes the notification bus, useful for testing.
func (s *Server) Bus() pubsub.Subscriber {
	return s.bus
}

// subscribeNotifications logs every notification seen on the bus.
func (s *Server) subscribeNotifications() error {
	logNotifier := notify.NewLogNotifier(slog.Default().With("component", "notifications"))
	return s.bus.Subscribe(context.Background(), pubsub.TopicNotifications, func(ctx context.Context, msg pubsub.Message) error {
		note, err := notify.Decode(msg)
		if err != nil {
			return err
		}
		logNotifier.Notify(ctx, note)
		return nil
	})
}

// setupErrorHandling installs an HTTP error handler that logs unhandled
// errors with a stack trace and leaves echo.HTTPErrors to the default.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			middleware.FromContext(c.Request().Context()).Error("Internal Server Error (Unhandled)",
				"error", err.Error(),
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
			err = echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		} else if he.Internal != nil {
			middleware.FromContext(c.Request().Context()).Error("Request failed",
				"status", he.Code,
				"error", he.Internal.Error(),
			)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
