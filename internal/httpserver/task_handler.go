package httpserver

import (
	"github.com/gofiber/fiber/v2"

	"github.com/csaptu/allocate/internal/ai"
	"github.com/csaptu/allocate/internal/history"
	"github.com/csaptu/allocate/internal/httputil"
	"github.com/csaptu/allocate/internal/match"
	"github.com/csaptu/allocate/internal/models"
	"github.com/csaptu/allocate/internal/org"
)

// TaskHandler handles the task queue, matching and assignment endpoints
type TaskHandler struct {
	store   *org.Store
	history *history.Log
	matcher ai.Matcher
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(store *org.Store, log *history.Log, matcher ai.Matcher) *TaskHandler {
	return &TaskHandler{store: store, history: log, matcher: matcher}
}

// List returns the task backlog
func (h *TaskHandler) List(c *fiber.Ctx) error {
	return httputil.Success(c, h.store.Tasks())
}

// Matches returns the ranked suggestions for a task. The matcher decides
// whether an LLM or the local heuristic produces them; either way the
// response shape is the same.
func (h *TaskHandler) Matches(c *fiber.Ctx) error {
	task, ok := h.store.TaskByID(c.Params("id"))
	if !ok {
		return httputil.NotFound(c, "task")
	}

	candidates := h.store.Snapshot().Members()
	matches, err := h.matcher.SuggestMatches(c.Context(), task, candidates)
	if err != nil {
		return httputil.Error(c, err)
	}
	return httputil.Success(c, matches)
}

// Impact reports what assigning the task to one member would do to their
// workload
func (h *TaskHandler) Impact(c *fiber.Ctx) error {
	task, ok := h.store.TaskByID(c.Params("id"))
	if !ok {
		return httputil.NotFound(c, "task")
	}

	memberID := c.Query("member_id")
	if memberID == "" {
		return httputil.ValidationError(c, "validation failed", map[string]string{
			"member_id": "required",
		})
	}

	member, ok := h.store.Snapshot().FindMember(memberID)
	if !ok {
		return httputil.NotFound(c, "member")
	}

	return httputil.Success(c, match.Impact(task, member))
}

// AssignRequest records an assignment of a task to a member
type AssignRequest struct {
	TaskID       string   `json:"task_id"`
	MemberID     string   `json:"member_id"`
	Mode         string   `json:"mode,omitempty"`
	AssignedBy   string   `json:"assigned_by,omitempty"`
	AIMatchScore *float64 `json:"ai_match_score,omitempty"`
	Explain      bool     `json:"explain,omitempty"`
}

// AssignResponse is the recorded assignment plus an optional explanation
type AssignResponse struct {
	Assignment  models.Assignment `json:"assignment"`
	Explanation string            `json:"explanation,omitempty"`
}

// Assign appends an assignment record and bumps the member's workload by
// the task's estimated hours
func (h *TaskHandler) Assign(c *fiber.Ctx) error {
	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return httputil.BadRequest(c, "invalid request body")
	}

	task, ok := h.store.TaskByID(req.TaskID)
	if !ok {
		return httputil.NotFound(c, "task")
	}
	member, ok := h.store.Snapshot().FindMember(req.MemberID)
	if !ok {
		return httputil.NotFound(c, "member")
	}

	mode := models.AllocationMode(req.Mode)
	if req.Mode == "" {
		mode = h.store.Mode()
	}
	if !mode.IsValid() {
		return httputil.ValidationError(c, "validation failed", map[string]string{
			"mode": "must be auto or manual",
		})
	}

	assignedBy := req.AssignedBy
	if assignedBy == "" {
		if mode == models.ModeAuto {
			assignedBy = "AI System"
		} else {
			assignedBy = "Dashboard User"
		}
	}

	assignment := h.history.Record(task.ID, member.ID, mode, assignedBy, req.AIMatchScore)

	newWorkload := member.CurrentWorkload + task.EstimatedHours
	h.store.EditMember(member.ID, org.MemberUpdate{CurrentWorkload: &newWorkload})

	resp := AssignResponse{Assignment: assignment}
	if req.Explain {
		score := 0.0
		if req.AIMatchScore != nil {
			score = *req.AIMatchScore
		} else if scored := match.Score(task, []models.TeamMember{member}); len(scored) > 0 {
			score = scored[0].ConfidenceScore
		}
		explanation, err := h.matcher.ExplainAssignment(c.Context(), task, member, score)
		if err == nil {
			resp.Explanation = explanation
		}
	}

	return httputil.Created(c, resp)
}

// History returns every recorded assignment, oldest first
func (h *TaskHandler) History(c *fiber.Ctx) error {
	return httputil.Success(c, h.history.All())
}
