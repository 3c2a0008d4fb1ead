package models

import "time"

// Task represents a unit of work waiting for an assignee.
// Tasks are immutable once created.
type Task struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Priority       Priority  `json:"priority"`
	EstimatedHours float64   `json:"estimated_hours"`
	RequiredSkills []string  `json:"required_skills"`
	Deadline       time.Time `json:"deadline"`
	ProjectID      string    `json:"project_id"`
}

// TeamMember represents a person that can be assigned work.
// TeamID is empty while the member sits on the bench (no team).
type TeamMember struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Role            string       `json:"role"`
	Avatar          string       `json:"avatar,omitempty"`
	Skills          []string     `json:"skills"`
	CurrentWorkload float64      `json:"current_workload"`
	MaxCapacity     float64      `json:"max_capacity"`
	Velocity        float64      `json:"velocity"`
	Availability    Availability `json:"availability"`
	TeamID          string       `json:"team_id,omitempty"`
}

// Team represents a group of members inside a project
type Team struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	ProjectID string       `json:"project_id"`
	Members   []TeamMember `json:"members"`
}

// RoleRequirement records the target headcount for a role in a project.
// Counts are advisory and only ever adjusted upward.
type RoleRequirement struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// Project represents a project with its teams and role requirements
type Project struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Teams        []Team            `json:"teams"`
	Requirements []RoleRequirement `json:"requirements"`
}

// AIMatch represents one suggested member for a task
type AIMatch struct {
	MemberID        string   `json:"member_id"`
	ConfidenceScore float64  `json:"confidence_score"`
	Reasoning       string   `json:"reasoning"`
	Conflicts       []string `json:"conflicts"`
}

// Assignment is an append-only record of a task being given to a member
type Assignment struct {
	ID           string         `json:"id"`
	TaskID       string         `json:"task_id"`
	MemberID     string         `json:"member_id"`
	AssignedAt   time.Time      `json:"assigned_at"`
	Mode         AllocationMode `json:"mode"`
	AssignedBy   string         `json:"assigned_by"`
	AIMatchScore *float64       `json:"ai_match_score,omitempty"`
}

// WorkloadImpact describes what taking on a task would do to a member's load
type WorkloadImpact struct {
	CurrentWorkload       float64  `json:"current_workload"`
	NewWorkload           float64  `json:"new_workload"`
	UtilizationPercentage float64  `json:"utilization_percentage"`
	Conflicts             []string `json:"conflicts"`
}
