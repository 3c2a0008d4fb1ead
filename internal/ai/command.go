package ai

import "github.com/csaptu/allocate/internal/models"

// ActionType identifies what a parsed chat message asks for
type ActionType string

const (
	ActionCreateProject ActionType = "create_project"
	ActionAddMember     ActionType = "add_member"
	ActionAssignMember  ActionType = "assign_member"
	ActionUnknown       ActionType = "unknown"
)

// IsValid checks if the action type is valid
func (t ActionType) IsValid() bool {
	switch t {
	case ActionCreateProject, ActionAddMember, ActionAssignMember, ActionUnknown:
		return true
	}
	return false
}

// ActionData carries the parameters of a parsed action. Which fields are
// set depends on the action type.
type ActionData struct {
	Name         string                   `json:"name,omitempty"`
	Requirements []models.RoleRequirement `json:"requirements,omitempty"`
	Role         string                   `json:"role,omitempty"`
	Skills       []string                 `json:"skills,omitempty"`
	ProjectName  string                   `json:"projectName,omitempty"`
	TeamName     string                   `json:"teamName,omitempty"`
	MemberName   string                   `json:"memberName,omitempty"`
}

// Action is the structured form of a natural-language command
type Action struct {
	Type    ActionType `json:"type"`
	Data    ActionData `json:"data"`
	Message string     `json:"message,omitempty"`
}
