package org

import (
	"sync"

	"github.com/google/uuid"

	"github.com/csaptu/allocate/internal/models"
)

// DefaultTeamName is the team every new project starts with
const DefaultTeamName = "Core Team"

// Store owns the current snapshot and the task list. There is exactly one
// logical writer (the interactive user); the mutex only guards the
// snapshot swap against concurrent HTTP readers.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	tasks    []models.Task
	mode     models.AllocationMode
}

// NewStore creates an empty store in auto mode
func NewStore() *Store {
	return &Store{mode: models.ModeAuto}
}

// Snapshot returns the current snapshot. Snapshots are never mutated in
// place, so the returned value is safe to read without further locking.
func (st *Store) Snapshot() Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.snapshot
}

// Replace swaps in a snapshot wholesale. Used by seeding.
func (st *Store) Replace(s Snapshot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.snapshot = s
}

// Mode returns the current allocation mode
func (st *Store) Mode() models.AllocationMode {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.mode
}

// SetMode switches between auto and manual assignment
func (st *Store) SetMode(mode models.AllocationMode) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.mode = mode
}

// AddProject creates a project with one empty default team
func (st *Store) AddProject(name string, requirements []models.RoleRequirement) models.Project {
	projectID := uuid.New().String()
	if requirements == nil {
		requirements = []models.RoleRequirement{}
	}
	project := models.Project{
		ID:   projectID,
		Name: name,
		Teams: []models.Team{{
			ID:        uuid.New().String(),
			Name:      DefaultTeamName,
			ProjectID: projectID,
			Members:   []models.TeamMember{},
		}},
		Requirements: requirements,
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.snapshot = AddProject(st.snapshot, project)
	return project
}

// AddTeam creates a team inside an existing project
func (st *Store) AddTeam(projectID, name string) (models.Team, bool) {
	team := models.Team{
		ID:        uuid.New().String(),
		Name:      name,
		ProjectID: projectID,
		Members:   []models.TeamMember{},
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	next := AddTeam(st.snapshot, projectID, team)
	if _, _, ok := next.FindTeam(team.ID); !ok {
		return models.Team{}, false
	}
	st.snapshot = next
	return team, true
}

// AddMember creates a member owned by the given team
func (st *Store) AddMember(teamID string, m models.TeamMember) (models.TeamMember, error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	next, err := AddMember(st.snapshot, teamID, m)
	if err != nil {
		return models.TeamMember{}, err
	}
	st.snapshot = next
	m.TeamID = teamID
	return m, nil
}

// MoveMember relocates a member between teams
func (st *Store) MoveMember(memberID, sourceTeamID, targetTeamID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.snapshot = MoveMember(st.snapshot, memberID, sourceTeamID, targetTeamID)
}

// EditProject applies a partial update to a project
func (st *Store) EditProject(projectID string, upd ProjectUpdate) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.snapshot = EditProject(st.snapshot, projectID, upd)
}

// EditMember applies a partial update to a member
func (st *Store) EditMember(memberID string, upd MemberUpdate) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.snapshot = EditMember(st.snapshot, memberID, upd)
}

// DeleteProject removes a project and everything under it
func (st *Store) DeleteProject(projectID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.snapshot = DeleteProject(st.snapshot, projectID)
}

// DeleteMember removes a member from wherever it lives
func (st *Store) DeleteMember(memberID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.snapshot = DeleteMember(st.snapshot, memberID)
}

// SetTasks replaces the task list. Tasks are immutable records in this
// scope; they only arrive via seeding.
func (st *Store) SetTasks(tasks []models.Task) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.tasks = tasks
}

// Tasks returns the task list
func (st *Store) Tasks() []models.Task {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.tasks
}

// TaskByID returns the task with the given id
func (st *Store) TaskByID(taskID string) (models.Task, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, t := range st.tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return models.Task{}, false
}
