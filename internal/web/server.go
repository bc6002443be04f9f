// Package web exposes the chat orchestrator over HTTP: a JSON API for roles,
// sessions and turns, plus a single embedded chat page rendering the
// transcript as bubbles.
package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/robfig/cron/v3"

	"rolechat/internal/chat"
	"rolechat/internal/roles"
)

// previewLimit caps assistant text in compact history listings; the full
// text stays in the session and is served without the preview flag.
const previewLimit = 120

type Server struct {
	registry *Registry
	orch     *chat.Orchestrator

	httpSrv *http.Server
	sweeper *cron.Cron
	idleTTL time.Duration
}

type roleResponse struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	SystemPrompt string `json:"systemPrompt"`
	Example      string `json:"example"`
	Banner       string `json:"banner,omitempty"`
}

type sessionResponse struct {
	UID string `json:"uid"`
}

type chatRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Answer   string `json:"answer"`
	ImageURL string `json:"imageUrl,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Warning  string `json:"warning,omitempty"`
}

type messageResponse struct {
	Speaker  string `json:"speaker"`
	Text     string `json:"text"`
	RoleName string `json:"roleName,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Banner   string `json:"banner,omitempty"`
}

func NewServer(addr string, orch *chat.Orchestrator, idleTTL time.Duration) *Server {
	s := &Server{
		registry: NewRegistry(),
		orch:     orch,
		idleTTL:  idleTTL,
	}

	e := echo.New()
	s.registerRoutes(e)

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes(e *echo.Echo) {
	e.GET("/", s.indexPage)

	g := e.Group("/api/v1")
	g.GET("/roles", s.listRoles)
	g.POST("/sessions", s.createSession)
	g.GET("/sessions/:uid/messages", s.listMessages)
	g.POST("/sessions/:uid/chat", s.handleChat)
	g.DELETE("/sessions/:uid/messages", s.clearMessages)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if s.idleTTL > 0 {
		s.sweeper = cron.New(cron.WithLocation(time.UTC))
		if _, err := s.sweeper.AddFunc("@every 10m", func() {
			if n := s.registry.Sweep(s.idleTTL); n > 0 {
				log.Printf("swept %d idle session(s), %d remaining", n, s.registry.Len())
			}
		}); err != nil {
			return err
		}
		s.sweeper.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("http server listening on %s", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if s.sweeper != nil {
		<-s.sweeper.Stop().Done()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

// Handler exposes the routed handler, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) listRoles(c *echo.Context) error {
	all := roles.List()
	resp := make([]roleResponse, 0, len(all))
	for _, r := range all {
		resp = append(resp, roleResponse{
			Name:         r.DisplayName,
			Description:  r.ShortDescription,
			SystemPrompt: r.SystemPrompt,
			Example:      r.ExamplePrompt,
			Banner:       r.Banner,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) createSession(c *echo.Context) error {
	uid, _ := s.registry.Create()
	return c.JSON(http.StatusCreated, sessionResponse{UID: uid})
}

func (s *Server) listMessages(c *echo.Context) error {
	sess, ok := s.registry.Get(c.Param("uid"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	preview := c.QueryParam("preview") != ""

	msgs := sess.Messages()
	resp := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out := messageResponse{
			Speaker:  m.Speaker,
			Text:     m.Text,
			RoleName: m.RoleName,
			ImageURL: m.ImageURL,
			Avatar:   m.Avatar,
		}
		if m.Speaker == chat.SpeakerAssistant {
			if r, err := roles.Get(m.RoleName); err == nil {
				out.Banner = r.Banner
			}
			if preview {
				out.Text = truncate(m.Text, previewLimit)
			}
		}
		resp = append(resp, out)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleChat(c *echo.Context) error {
	sess, ok := s.registry.Get(c.Param("uid"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res, err := s.orch.Submit(c.Request().Context(), sess, req.Role, req.Content)
	if err != nil {
		return turnError(err)
	}
	return c.JSON(http.StatusOK, chatResponse{
		Answer:   res.Answer,
		ImageURL: res.ImageURL,
		Avatar:   res.Avatar,
		Warning:  res.Warning,
	})
}

func (s *Server) clearMessages(c *echo.Context) error {
	sess, ok := s.registry.Get(c.Param("uid"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	sess.Clear()
	return c.NoContent(http.StatusNoContent)
}

// turnError maps orchestrator failures onto HTTP statuses. Input problems are
// the caller's fault; anything from the provider is a bad gateway.
func turnError(err error) error {
	switch {
	case errors.Is(err, roles.ErrUnknownRole):
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	case errors.Is(err, chat.ErrEmptyInput):
		return echo.NewHTTPError(http.StatusBadRequest, "enter a question before submitting")
	default:
		var pe *chat.ProviderError
		if errors.As(err, &pe) {
			log.Printf("turn failed: %v", err)
			return echo.NewHTTPError(http.StatusBadGateway, "the model could not be reached, please try again")
		}
		return err
	}
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}
