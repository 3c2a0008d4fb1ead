package httpserver

import (
	"github.com/gofiber/fiber/v2"

	"github.com/csaptu/allocate/internal/httputil"
	"github.com/csaptu/allocate/internal/models"
	"github.com/csaptu/allocate/internal/org"
)

// ProjectHandler handles project and team endpoints
type ProjectHandler struct {
	store *org.Store
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(store *org.Store) *ProjectHandler {
	return &ProjectHandler{store: store}
}

// CreateProjectRequest represents the project creation request
type CreateProjectRequest struct {
	Name         string                   `json:"name"`
	Requirements []models.RoleRequirement `json:"requirements,omitempty"`
}

// Create handles project creation
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return httputil.BadRequest(c, "invalid request body")
	}

	if req.Name == "" {
		return httputil.ValidationError(c, "validation failed", map[string]string{
			"name": "required",
		})
	}

	project := h.store.AddProject(req.Name, req.Requirements)
	return httputil.Created(c, project)
}

// UpdateProjectRequest represents a partial project update
type UpdateProjectRequest struct {
	Name         *string                  `json:"name,omitempty"`
	Requirements []models.RoleRequirement `json:"requirements,omitempty"`
}

// Update applies a partial update. Unknown ids are a deliberate no-op,
// so the handler always reports the resulting state.
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	projectID := c.Params("id")

	var req UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return httputil.BadRequest(c, "invalid request body")
	}

	h.store.EditProject(projectID, org.ProjectUpdate{
		Name:         req.Name,
		Requirements: req.Requirements,
	})

	if project, ok := h.store.Snapshot().FindProject(projectID); ok {
		return httputil.Success(c, project)
	}
	return httputil.NotFound(c, "project")
}

// Delete removes a project and cascades to its teams and members
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	h.store.DeleteProject(c.Params("id"))
	return httputil.NoContent(c)
}

// CreateTeamRequest represents the team creation request
type CreateTeamRequest struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
}

// CreateTeam adds a team to an existing project
func (h *ProjectHandler) CreateTeam(c *fiber.Ctx) error {
	var req CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return httputil.BadRequest(c, "invalid request body")
	}

	if req.ProjectID == "" || req.Name == "" {
		return httputil.ValidationError(c, "validation failed", map[string]string{
			"project_id": "required",
			"name":       "required",
		})
	}

	team, ok := h.store.AddTeam(req.ProjectID, req.Name)
	if !ok {
		return httputil.NotFound(c, "project")
	}
	return httputil.Created(c, team)
}
