package httpserver

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/csaptu/allocate/internal/ai"
	"github.com/csaptu/allocate/internal/httputil"
	"github.com/csaptu/allocate/internal/models"
	"github.com/csaptu/allocate/internal/org"
)

// ChatHandler turns natural-language messages into store mutations
type ChatHandler struct {
	store   *org.Store
	matcher ai.Matcher
}

// NewChatHandler creates a new chat handler
func NewChatHandler(store *org.Store, matcher ai.Matcher) *ChatHandler {
	return &ChatHandler{store: store, matcher: matcher}
}

// ChatRequest is one user message
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the assistant's reply. Type mirrors the dashboard's
// message kinds: success, error or text.
type ChatResponse struct {
	Reply  string     `json:"reply"`
	Type   string     `json:"type"`
	Action *ai.Action `json:"action,omitempty"`
}

// Message parses the user's message into an action and applies it. Parse
// failures never error out; they come back as an unknown action with a
// help message.
func (h *ChatHandler) Message(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return httputil.BadRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return httputil.ValidationError(c, "validation failed", map[string]string{
			"message": "required",
		})
	}

	snapshot := h.store.Snapshot()
	action, err := h.matcher.ParseCommand(c.Context(), req.Message, snapshot)
	if err != nil {
		return httputil.Error(c, err)
	}

	resp := h.apply(action, snapshot)
	resp.Action = &action
	return httputil.Success(c, resp)
}

func (h *ChatHandler) apply(action ai.Action, snapshot org.Snapshot) ChatResponse {
	switch action.Type {
	case ai.ActionCreateProject:
		if action.Data.Name == "" {
			return ChatResponse{Reply: "I need a project name to create a project.", Type: "error"}
		}
		project := h.store.AddProject(action.Data.Name, action.Data.Requirements)
		return ChatResponse{
			Reply: fmt.Sprintf("Created project **%s** with %d role requirements.",
				project.Name, len(project.Requirements)),
			Type: "success",
		}

	case ai.ActionAddMember:
		team, ok := resolveTeam(snapshot, action.Data.ProjectName, action.Data.TeamName)
		if !ok {
			return ChatResponse{
				Reply: fmt.Sprintf("I need a specific project/team to add %s to.", action.Data.Name),
				Type:  "error",
			}
		}
		member, err := h.store.AddMember(team.ID, models.TeamMember{
			Name:         action.Data.Name,
			Role:         action.Data.Role,
			Skills:       action.Data.Skills,
			MaxCapacity:  40,
			Availability: models.AvailabilityAvailable,
		})
		if err != nil {
			return ChatResponse{Reply: "Could not find member or project.", Type: "error"}
		}
		return ChatResponse{
			Reply: fmt.Sprintf("Added **%s** as %s.", member.Name, member.Role),
			Type:  "success",
		}

	case ai.ActionAssignMember:
		member, memberOK := findMemberByName(snapshot, action.Data.MemberName)
		project, projectOK := findProjectByName(snapshot, action.Data.ProjectName)
		if !memberOK || !projectOK || len(project.Teams) == 0 {
			return ChatResponse{Reply: "Could not find member or project.", Type: "error"}
		}
		target := project.Teams[0]
		h.store.MoveMember(member.ID, member.TeamID, target.ID)
		return ChatResponse{
			Reply: fmt.Sprintf("Moved **%s** to **%s** (%s).", member.Name, project.Name, target.Name),
			Type:  "success",
		}

	default:
		reply := action.Message
		if reply == "" {
			reply = "I didn't understand that."
		}
		return ChatResponse{Reply: reply, Type: "error"}
	}
}

// resolveTeam finds the named team within the named project. An empty
// team name picks the project's first team.
func resolveTeam(snapshot org.Snapshot, projectName, teamName string) (models.Team, bool) {
	project, ok := findProjectByName(snapshot, projectName)
	if !ok || len(project.Teams) == 0 {
		return models.Team{}, false
	}
	if teamName == "" {
		return project.Teams[0], true
	}
	for _, t := range project.Teams {
		if strings.EqualFold(t.Name, teamName) {
			return t, true
		}
	}
	return models.Team{}, false
}

func findProjectByName(snapshot org.Snapshot, name string) (models.Project, bool) {
	if name == "" {
		return models.Project{}, false
	}
	for _, p := range snapshot.Projects {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return models.Project{}, false
}

func findMemberByName(snapshot org.Snapshot, name string) (models.TeamMember, bool) {
	if name == "" {
		return models.TeamMember{}, false
	}
	for _, m := range snapshot.Members() {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return models.TeamMember{}, false
}
