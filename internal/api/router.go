package api

import (
	"encoding/binary"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/atelier-ia/server/internal/blueprint"
	"github.com/atelier-ia/server/internal/db"
	"github.com/atelier-ia/server/internal/gateway"
	mw "github.com/atelier-ia/server/internal/middleware"
	"github.com/atelier-ia/server/internal/validation"
)

// Server handles HTTP requests
type Server struct {
	router      chi.Router
	db          *db.DB
	generator   *blueprint.Generator
	gateway     *gateway.Client
	rateLimiter *mw.RateLimiter
	jwtSecret   string
}

// NewServer creates a new API server
func NewServer(database *db.DB, generator *blueprint.Generator, gw *gateway.Client, jwtSecret string, rateLimitRPS int) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		db:          database,
		generator:   generator,
		gateway:     gw,
		rateLimiter: mw.NewRateLimiter(rateLimitRPS),
		jwtSecret:   jwtSecret,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.rateLimiter.Middleware)
	s.router.Use(mw.SecurityHeadersMiddleware)
	s.router.Use(mw.MaxBodySizeMiddleware(1024 * 1024)) // 1MB max

	// Creation works anonymously; a presented token attributes ownership
	s.router.Group(func(r chi.Router) {
		r.Use(mw.OptionalAuth(s.jwtSecret))
		r.Post("/api/blueprints", s.createBlueprint)
	})

	// Protected endpoints (auth required)
	s.router.Group(func(r chi.Router) {
		r.Use(mw.Auth(s.jwtSecret))
		r.Get("/api/blueprints", s.listBlueprints)
		r.Get("/api/blueprints/{id}", s.getBlueprint)
		r.Get("/api/blueprints/{id}/game", s.getGamePayload)
		r.Get("/api/blueprints/{id}/history", s.getHistory)
		r.Post("/api/blueprints/{id}/refine", s.refineBlueprint)
		r.Post("/api/generate", s.generateContent)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response wraps API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (sanitized)
func writeError(w http.ResponseWriter, status int, message string) {
	if status >= 500 {
		message = "Internal server error"
	}
	writeJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}

// getUserID extracts user ID from context
func getUserID(r *http.Request) string {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		return ""
	}
	return userID
}

// checkBlueprintOwnership verifies user owns the blueprint
func (s *Server) checkBlueprintOwnership(w http.ResponseWriter, r *http.Request, blueprintID string) bool {
	userID := getUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Missing user ID")
		return false
	}

	isOwner, err := s.db.IsBlueprintOwner(blueprintID, userID)
	if err != nil || !isOwner {
		writeError(w, http.StatusForbidden, "Access denied")
		return false
	}
	return true
}

// newSeed draws the layout seed baked into a generated game payload
func newSeed() int64 {
	id := uuid.New()
	return int64(binary.BigEndian.Uint64(id[:8]))
}

// createBlueprint derives a new blueprint from a brief
func (s *Server) createBlueprint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Brief blueprint.GameBrief `json:"brief"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.ValidateBrief(req.Brief.Title, req.Brief.Theme, req.Brief.Description, req.Brief.References); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := s.generator.Generate(req.Brief, "", newSeed())

	// Ownership defaults to "public" when no token was presented
	userID := getUserID(r)
	if userID == "" {
		userID = "public"
	}

	if err := s.db.SaveBlueprint(userID, "", req.Brief, result); err != nil {
		log.Error().Err(err).Str("blueprint_id", result.ID).Msg("failed to save blueprint")
		writeError(w, http.StatusInternalServerError, "Failed to save blueprint")
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    result,
	})
}

// listBlueprints lists all blueprint ids owned by the user
func (s *Server) listBlueprints(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Missing user ID")
		return
	}

	ids, err := s.db.ListUserBlueprints(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list blueprints")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    ids,
	})
}

// getBlueprint returns a stored blueprint
func (s *Server) getBlueprint(w http.ResponseWriter, r *http.Request) {
	blueprintID := chi.URLParam(r, "id")

	if err := validation.ValidateBlueprintID(blueprintID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid blueprint ID")
		return
	}

	if !s.checkBlueprintOwnership(w, r, blueprintID) {
		return
	}

	stored, err := s.db.GetBlueprint(blueprintID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Blueprint not found")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    stored,
	})
}

// getGamePayload serves the emitted playable game as HTML, suitable for a
// sandboxed iframe.
func (s *Server) getGamePayload(w http.ResponseWriter, r *http.Request) {
	blueprintID := chi.URLParam(r, "id")

	if err := validation.ValidateBlueprintID(blueprintID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid blueprint ID")
		return
	}

	if !s.checkBlueprintOwnership(w, r, blueprintID) {
		return
	}

	stored, err := s.db.GetBlueprint(blueprintID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Blueprint not found")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(stored.Blueprint.Code))
}

// getHistory returns the refinement lineage of a blueprint, newest first
func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	blueprintID := chi.URLParam(r, "id")

	if err := validation.ValidateBlueprintID(blueprintID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid blueprint ID")
		return
	}

	if !s.checkBlueprintOwnership(w, r, blueprintID) {
		return
	}

	lineage, err := s.db.GetLineage(blueprintID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    lineage,
	})
}

// refineBlueprint applies an instruction to a stored blueprint's brief and
// produces a brand-new blueprint chained to its parent.
func (s *Server) refineBlueprint(w http.ResponseWriter, r *http.Request) {
	blueprintID := chi.URLParam(r, "id")

	if err := validation.ValidateBlueprintID(blueprintID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid blueprint ID")
		return
	}

	if !s.checkBlueprintOwnership(w, r, blueprintID) {
		return
	}

	var req struct {
		Instruction string `json:"instruction"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.ValidateInstruction(req.Instruction); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := s.db.GetBlueprint(blueprintID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Blueprint not found")
		return
	}

	result := s.generator.Generate(stored.Brief, req.Instruction, newSeed())

	if err := s.db.SaveBlueprint(getUserID(r), blueprintID, stored.Brief, result); err != nil {
		log.Error().Err(err).Str("blueprint_id", result.ID).Msg("failed to save refined blueprint")
		writeError(w, http.StatusInternalServerError, "Failed to save blueprint")
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    result,
	})
}

// generateContent invokes the hosted gateway for non-game categories
func (s *Server) generateContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt   string `json:"prompt"`
		Category string `json:"category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.ValidateCategory(req.Category); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "Missing prompt")
		return
	}

	result, err := s.gateway.Invoke(r.Context(), req.Prompt, req.Category)
	if err != nil {
		log.Error().Err(err).Str("category", req.Category).Msg("gateway invocation failed")
		writeError(w, http.StatusBadGateway, "Generation failed")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}
