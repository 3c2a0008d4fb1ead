// Package seed loads the demo dataset the dashboard ships with.
package seed

import (
	"time"

	"github.com/csaptu/allocate/internal/history"
	"github.com/csaptu/allocate/internal/models"
	"github.com/csaptu/allocate/internal/org"
)

// Apply fills the store and assignment log with the demo org: two
// projects with one team each, six members, a small task backlog and a
// couple of historical assignments.
func Apply(store *org.Store, log *history.Log) {
	now := time.Now()

	members := []models.TeamMember{
		{
			ID: "member-1", Name: "Sarah Chen", Role: "Senior Frontend Engineer",
			Skills:          []string{"React", "TypeScript", "UI/UX", "Testing"},
			CurrentWorkload: 25, MaxCapacity: 40, Velocity: 3.5,
			Availability: models.AvailabilityAvailable, TeamID: "team-1",
		},
		{
			ID: "member-2", Name: "Marcus Johnson", Role: "Backend Lead",
			Skills:          []string{"Node.js", "PostgreSQL", "GraphQL", "AWS"},
			CurrentWorkload: 38, MaxCapacity: 40, Velocity: 4.0,
			Availability: models.AvailabilityBusy, TeamID: "team-1",
		},
		{
			ID: "member-3", Name: "Emily Rodriguez", Role: "Full Stack Developer",
			Skills:          []string{"React", "TypeScript", "Node.js", "MongoDB"},
			CurrentWorkload: 42, MaxCapacity: 40, Velocity: 3.0,
			Availability: models.AvailabilityOverloaded, TeamID: "team-1",
		},
		{
			ID: "member-4", Name: "David Kim", Role: "DevOps Engineer",
			Skills:          []string{"DevOps", "Docker", "AWS", "Python"},
			CurrentWorkload: 20, MaxCapacity: 40, Velocity: 3.8,
			Availability: models.AvailabilityAvailable, TeamID: "team-2",
		},
		{
			ID: "member-5", Name: "Aisha Patel", Role: "UI Designer",
			Skills:          []string{"UI/UX", "React", "TypeScript", "Testing"},
			CurrentWorkload: 15, MaxCapacity: 40, Velocity: 4.2,
			Availability: models.AvailabilityAvailable, TeamID: "team-2",
		},
		{
			ID: "member-6", Name: "James Wilson", Role: "Backend Engineer",
			Skills:          []string{"PostgreSQL", "Node.js", "Python", "AWS"},
			CurrentWorkload: 32, MaxCapacity: 40, Velocity: 3.2,
			Availability: models.AvailabilityBusy, TeamID: "team-2",
		},
	}

	teamOne := models.Team{ID: "team-1", Name: "Frontend Squad", ProjectID: "proj-1", Members: members[:3]}
	teamTwo := models.Team{ID: "team-2", Name: "Backend Squad", ProjectID: "proj-2", Members: members[3:]}

	store.Replace(org.Snapshot{
		Projects: []models.Project{
			{
				ID: "proj-1", Name: "E-Commerce Platform",
				Teams:        []models.Team{teamOne},
				Requirements: []models.RoleRequirement{},
			},
			{
				ID: "proj-2", Name: "Analytics Dashboard",
				Teams:        []models.Team{teamTwo},
				Requirements: []models.RoleRequirement{},
			},
		},
		Bench: []models.TeamMember{},
	})

	store.SetTasks([]models.Task{
		{
			ID: "task-1", Title: "Implement User Authentication",
			Description: "Build OAuth2 integration with social providers",
			Priority:    models.PriorityHigh, EstimatedHours: 16,
			RequiredSkills: []string{"React", "Node.js", "TypeScript"},
			Deadline:       now.Add(7 * 24 * time.Hour), ProjectID: "proj-1",
		},
		{
			ID: "task-2", Title: "Database Migration Script",
			Description: "Create migration for new user schema",
			Priority:    models.PriorityCritical, EstimatedHours: 8,
			RequiredSkills: []string{"PostgreSQL", "Node.js"},
			Deadline:       now.Add(3 * 24 * time.Hour), ProjectID: "proj-1",
		},
		{
			ID: "task-3", Title: "Design System Components",
			Description: "Build reusable component library",
			Priority:    models.PriorityMedium, EstimatedHours: 24,
			RequiredSkills: []string{"React", "TypeScript", "UI/UX"},
			Deadline:       now.Add(14 * 24 * time.Hour), ProjectID: "proj-1",
		},
		{
			ID: "task-4", Title: "API Performance Optimization",
			Description: "Optimize slow endpoints and add caching",
			Priority:    models.PriorityHigh, EstimatedHours: 12,
			RequiredSkills: []string{"Node.js", "PostgreSQL", "AWS"},
			Deadline:       now.Add(5 * 24 * time.Hour), ProjectID: "proj-2",
		},
		{
			ID: "task-5", Title: "CI/CD Pipeline Setup",
			Description: "Configure automated deployment pipeline",
			Priority:    models.PriorityMedium, EstimatedHours: 10,
			RequiredSkills: []string{"DevOps", "Docker", "AWS"},
			Deadline:       now.Add(10 * 24 * time.Hour), ProjectID: "proj-2",
		},
		{
			ID: "task-6", Title: "Unit Test Coverage",
			Description: "Increase test coverage to 80%",
			Priority:    models.PriorityLow, EstimatedHours: 20,
			RequiredSkills: []string{"Testing", "TypeScript", "React"},
			Deadline:       now.Add(21 * 24 * time.Hour), ProjectID: "proj-1",
		},
	})

	score := 0.92
	log.Seed([]models.Assignment{
		{
			ID: "assign-1", TaskID: "task-1", MemberID: "member-1",
			AssignedAt: now.Add(-2 * time.Hour), Mode: models.ModeAuto,
			AssignedBy: "AI System", AIMatchScore: &score,
		},
		{
			ID: "assign-2", TaskID: "task-2", MemberID: "member-2",
			AssignedAt: now.Add(-5 * time.Hour), Mode: models.ModeManual,
			AssignedBy: "John Doe",
		},
	})
}
