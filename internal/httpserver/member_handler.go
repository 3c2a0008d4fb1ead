package httpserver

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/csaptu/allocate/internal/errors"
	"github.com/csaptu/allocate/internal/httputil"
	"github.com/csaptu/allocate/internal/models"
	"github.com/csaptu/allocate/internal/org"
)

// MemberHandler handles team member endpoints
type MemberHandler struct {
	store *org.Store
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(store *org.Store) *MemberHandler {
	return &MemberHandler{store: store}
}

// CreateMemberRequest represents the member creation request
type CreateMemberRequest struct {
	Name            string   `json:"name"`
	Role            string   `json:"role"`
	Avatar          string   `json:"avatar,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	CurrentWorkload float64  `json:"current_workload"`
	MaxCapacity     float64  `json:"max_capacity"`
	Velocity        float64  `json:"velocity"`
	Availability    string   `json:"availability,omitempty"`
}

// Create adds a member to the team in the path
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	teamID := c.Params("id")

	var req CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return httputil.BadRequest(c, "invalid request body")
	}

	if req.Name == "" {
		return httputil.ValidationError(c, "validation failed", map[string]string{
			"name": "required",
		})
	}

	availability := models.Availability(req.Availability)
	if req.Availability == "" {
		availability = models.AvailabilityAvailable
	}
	if !availability.IsValid() {
		return httputil.ValidationError(c, "validation failed", map[string]string{
			"availability": "must be available, busy or overloaded",
		})
	}

	maxCapacity := req.MaxCapacity
	if maxCapacity <= 0 {
		maxCapacity = 40
	}

	member, err := h.store.AddMember(teamID, models.TeamMember{
		Name:            req.Name,
		Role:            req.Role,
		Avatar:          req.Avatar,
		Skills:          req.Skills,
		CurrentWorkload: req.CurrentWorkload,
		MaxCapacity:     maxCapacity,
		Velocity:        req.Velocity,
		Availability:    availability,
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrTeamNotFound) {
			return httputil.NotFound(c, "team")
		}
		return httputil.Error(c, err)
	}

	return httputil.Created(c, member)
}

// UpdateMemberRequest represents a partial member update
type UpdateMemberRequest struct {
	Name            *string  `json:"name,omitempty"`
	Role            *string  `json:"role,omitempty"`
	Avatar          *string  `json:"avatar,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	CurrentWorkload *float64 `json:"current_workload,omitempty"`
	MaxCapacity     *float64 `json:"max_capacity,omitempty"`
	Velocity        *float64 `json:"velocity,omitempty"`
	Availability    *string  `json:"availability,omitempty"`
}

// Update applies a partial update. Unknown ids are a deliberate no-op.
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	memberID := c.Params("id")

	var req UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return httputil.BadRequest(c, "invalid request body")
	}

	if req.MaxCapacity != nil && *req.MaxCapacity <= 0 {
		return httputil.ValidationError(c, "validation failed", map[string]string{
			"max_capacity": "must be greater than zero",
		})
	}

	upd := org.MemberUpdate{
		Name:            req.Name,
		Role:            req.Role,
		Avatar:          req.Avatar,
		Skills:          req.Skills,
		CurrentWorkload: req.CurrentWorkload,
		MaxCapacity:     req.MaxCapacity,
		Velocity:        req.Velocity,
	}
	if req.Availability != nil {
		availability := models.Availability(*req.Availability)
		if !availability.IsValid() {
			return httputil.ValidationError(c, "validation failed", map[string]string{
				"availability": "must be available, busy or overloaded",
			})
		}
		upd.Availability = &availability
	}

	h.store.EditMember(memberID, upd)

	if member, ok := h.store.Snapshot().FindMember(memberID); ok {
		return httputil.Success(c, member)
	}
	return httputil.NotFound(c, "member")
}

// Delete removes a member from wherever it lives
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	h.store.DeleteMember(c.Params("id"))
	return httputil.NoContent(c)
}

// MoveMemberRequest represents a drag-drop style move
type MoveMemberRequest struct {
	SourceTeamID string `json:"source_team_id"`
	TargetTeamID string `json:"target_team_id"`
}

// Move relocates a member between teams
func (h *MemberHandler) Move(c *fiber.Ctx) error {
	memberID := c.Params("id")

	var req MoveMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return httputil.BadRequest(c, "invalid request body")
	}

	if req.TargetTeamID == "" {
		return httputil.ValidationError(c, "validation failed", map[string]string{
			"target_team_id": "required",
		})
	}

	h.store.MoveMember(memberID, req.SourceTeamID, req.TargetTeamID)

	if member, ok := h.store.Snapshot().FindMember(memberID); ok {
		return httputil.Success(c, member)
	}
	return httputil.NotFound(c, "member")
}
