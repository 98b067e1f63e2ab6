// Package server exposes the message dispatcher over HTTP, for bot
// frontends that talk to this process instead of linking it.
package server

import (
	"context"
	"net/http"

	"github.com/dax233/brainhole/internal/dispatch"
	"github.com/dax233/brainhole/internal/lexicon"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// MessageRequest is one inbound chat message.
type MessageRequest struct {
	Message string `json:"message"`
}

// MessageResponse carries the dispatch outcome. Handled is false when
// no command prefix or keyword matched; Reply is empty in that case.
type MessageResponse struct {
	Handled bool   `json:"handled"`
	Reply   string `json:"reply"`
}

// LexiconInfo describes one registered lexicon.
type LexiconInfo struct {
	Name        string   `json:"name"`
	Table       string   `json:"table"`
	Placeholder string   `json:"placeholder"`
	Keywords    []string `json:"keywords"`
}

// Server routes HTTP requests to the dispatcher.
type Server struct {
	router *dispatch.Router
	reg    *lexicon.Registry
	echo   *echo.Echo
}

// New builds the HTTP server with its routes and middleware.
func New(router *dispatch.Router, reg *lexicon.Registry) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	s := &Server{router: router, reg: reg, echo: e}
	e.POST("/api/v1/messages", s.handleMessage)
	e.GET("/api/v1/lexicons", s.handleLexicons)
	e.GET("/healthz", s.handleHealth)
	return s
}

// Start blocks serving on addr until Shutdown or a listener error.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying handler for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) handleMessage(c echo.Context) error {
	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}

	reply, handled, err := s.router.Dispatch(c.Request().Context(), req.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, MessageResponse{Handled: handled, Reply: reply})
}

func (s *Server) handleLexicons(c echo.Context) error {
	descs := s.reg.All()
	infos := make([]LexiconInfo, 0, len(descs))
	for _, d := range descs {
		infos = append(infos, LexiconInfo{
			Name:        d.Name,
			Table:       d.Table,
			Placeholder: d.Placeholder,
			Keywords:    d.Keywords,
		})
	}
	return c.JSON(http.StatusOK, infos)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
