// Package httpserver wires the org store, the matcher and the assignment
// log behind the dashboard's HTTP API.
package httpserver

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/csaptu/allocate/internal/ai"
	"github.com/csaptu/allocate/internal/config"
	"github.com/csaptu/allocate/internal/history"
	"github.com/csaptu/allocate/internal/httputil"
	"github.com/csaptu/allocate/internal/llm"
	"github.com/csaptu/allocate/internal/middleware"
	"github.com/csaptu/allocate/internal/models"
	"github.com/csaptu/allocate/internal/org"
	"github.com/csaptu/allocate/internal/seed"
)

// Server represents the allocation service server
type Server struct {
	app     *fiber.App
	config  *config.Config
	store   *org.Store
	history *history.Log
	matcher ai.Matcher
}

// NewServer creates a fully wired server
func NewServer(cfg *config.Config) (*Server, error) {
	store := org.NewStore()
	assignmentLog := history.NewLog()

	if cfg.Seed.DemoData {
		seed.Apply(store, assignmentLog)
		log.Info().Msg("Loaded demo dataset")
	}

	server := &Server{
		config:  cfg,
		store:   store,
		history: assignmentLog,
		matcher: buildMatcher(cfg),
	}

	server.app = server.createApp()
	server.registerRoutes()

	return server, nil
}

// buildMatcher selects the matching capability: LLM-backed when a
// provider is configured, otherwise the local heuristic.
func buildMatcher(cfg *config.Config) ai.Matcher {
	if !cfg.LLM.Configured() {
		log.Info().Msg("No LLM provider configured, using heuristic matcher")
		return ai.NewHeuristic()
	}

	client, err := llm.NewMultiClient(llm.Config{
		DefaultProvider: llm.Provider(cfg.LLM.DefaultProvider),
		GoogleAPIKey:    cfg.LLM.GoogleAPIKey,
		GoogleModel:     cfg.LLM.GoogleModel,
		AnthropicAPIKey: cfg.LLM.AnthropicAPIKey,
		AnthropicModel:  cfg.LLM.AnthropicModel,
		OpenAIAPIKey:    cfg.LLM.OpenAIAPIKey,
		OpenAIModel:     cfg.LLM.OpenAIModel,
		OllamaHost:      cfg.LLM.OllamaHost,
		OllamaModel:     cfg.LLM.OllamaModel,
	})
	if err != nil {
		log.Warn().Err(err).Msg("LLM client setup failed, using heuristic matcher")
		return ai.NewHeuristic()
	}

	log.Info().Msg("LLM-backed matcher enabled")
	return ai.NewLLMMatcher(client)
}

func (s *Server) createApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "allocate-service",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.Recovery())
	app.Use(middleware.RequestLogger())
	app.Use(compress.New())
	app.Use(helmet.New())

	if s.config.IsDevelopment() {
		app.Use(middleware.DevelopmentCORS())
	} else {
		app.Use(middleware.ProductionCORS(s.config.Server.AllowedOrigins))
	}

	return app
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.healthCheck)

	v1 := s.app.Group("/api/v1")

	v1.Get("/state", s.getState)
	v1.Put("/mode", s.setMode)

	projectHandler := NewProjectHandler(s.store)
	v1.Post("/projects", projectHandler.Create)
	v1.Put("/projects/:id", projectHandler.Update)
	v1.Delete("/projects/:id", projectHandler.Delete)
	v1.Post("/teams", projectHandler.CreateTeam)

	memberHandler := NewMemberHandler(s.store)
	v1.Post("/teams/:id/members", memberHandler.Create)
	v1.Put("/members/:id", memberHandler.Update)
	v1.Delete("/members/:id", memberHandler.Delete)
	v1.Post("/members/:id/move", memberHandler.Move)

	taskHandler := NewTaskHandler(s.store, s.history, s.matcher)
	v1.Get("/tasks", taskHandler.List)
	v1.Get("/tasks/:id/matches", taskHandler.Matches)
	v1.Get("/tasks/:id/impact", taskHandler.Impact)
	v1.Post("/assignments", taskHandler.Assign)
	v1.Get("/assignments", taskHandler.History)

	chatHandler := NewChatHandler(s.store, s.matcher)
	v1.Post("/chat", chatHandler.Message)
}

func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"version": "1.0.0",
	})
}

// StateResponse is the full dashboard state in one payload
type StateResponse struct {
	Snapshot    org.Snapshot `json:"snapshot"`
	Tasks       interface{}  `json:"tasks"`
	Assignments interface{}  `json:"assignments"`
	Mode        string       `json:"mode"`
}

func (s *Server) getState(c *fiber.Ctx) error {
	return httputil.Success(c, StateResponse{
		Snapshot:    s.store.Snapshot(),
		Tasks:       s.store.Tasks(),
		Assignments: s.history.All(),
		Mode:        string(s.store.Mode()),
	})
}

// SetModeRequest toggles auto vs manual assignment
type SetModeRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) setMode(c *fiber.Ctx) error {
	var req SetModeRequest
	if err := c.BodyParser(&req); err != nil {
		return httputil.BadRequest(c, "invalid request body")
	}

	mode := models.AllocationMode(req.Mode)
	if !mode.IsValid() {
		return httputil.ValidationError(c, "validation failed", map[string]string{
			"mode": "must be auto or manual",
		})
	}

	s.store.SetMode(mode)
	return httputil.Success(c, fiber.Map{"mode": string(mode)})
}

// Listen starts the HTTP server
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// ShutdownWithContext gracefully shuts down the server
func (s *Server) ShutdownWithContext(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the fiber app for tests
func (s *Server) App() *fiber.App {
	return s.app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(httputil.APIResponse{
		Success: false,
		Error:   &httputil.APIError{Code: "INTERNAL_ERROR", Message: err.Error()},
	})
}
