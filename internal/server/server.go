// Package server mounts the GraphQL executor on an HTTP surface and derives
// the per-request identity from the credential header.
package server

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"staffdir/internal/auth"
	"staffdir/internal/graph"
)

// Server wires the executor and token service behind POST /graphql.
type Server struct {
	app    *fiber.App
	exec   *graph.Executor
	tokens auth.TokenService
	logger auth.Logger
}

// New creates the HTTP server and registers its routes.
func New(exec *graph.Executor, tokens auth.TokenService, logger auth.Logger) *Server {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	app := fiber.New(fiber.Config{
		AppName:               "staffdir",
		DisableStartupMessage: true,
	})

	s := &Server{
		app:    app,
		exec:   exec,
		tokens: tokens,
		logger: logger,
	}

	app.Get("/healthz", s.handleHealth)
	app.Post("/graphql", s.withSession, s.handleGraphQL)

	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving requests on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(5 * time.Second)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// withSession decodes an optional bearer token into request-scoped claims.
// A missing token is fine; public operations must still work. A bad token is
// recorded so gated operations can report the precise failure.
func (s *Server) withSession(c *fiber.Ctx) error {
	raw := bearerToken(c)
	if raw == "" {
		return c.Next()
	}

	ctx := c.UserContext()
	claims, err := s.tokens.Validate(raw)
	if err != nil {
		s.logger.Debug("request carried an invalid token", "error", err)
		c.SetUserContext(auth.WithTokenError(ctx, err))
		return c.Next()
	}

	c.SetUserContext(auth.WithClaimsContext(ctx, claims))
	return c.Next()
}

// bearerToken reads the credential header. Both "Authorization: Bearer x"
// and a bare "token" header are accepted.
func bearerToken(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		}
		return strings.TrimSpace(header)
	}
	return strings.TrimSpace(c.Get("token"))
}

func (s *Server) handleGraphQL(c *fiber.Ctx) error {
	var req graph.Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(graph.Response{
			Errors: gqlerror.List{{Message: "malformed request body"}},
		})
	}

	resp := s.exec.Execute(c.UserContext(), req)
	return c.JSON(resp)
}
