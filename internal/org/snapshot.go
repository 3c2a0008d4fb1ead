// Package org owns the in-memory organization state: projects, their
// teams, team members and the bench of unassigned members. All mutations
// are expressed as pure reducers over a Snapshot; the Store applies them
// and owns the current value.
package org

import (
	"github.com/csaptu/allocate/internal/models"
)

// Snapshot is one immutable view of the whole org state. Reducers never
// mutate a snapshot they were given; they return a fresh one.
type Snapshot struct {
	Projects []models.Project    `json:"projects"`
	Bench    []models.TeamMember `json:"bench"`
}

// Clone returns a deep copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Projects: make([]models.Project, len(s.Projects)),
		Bench:    make([]models.TeamMember, len(s.Bench)),
	}
	for i, p := range s.Projects {
		cp := p
		cp.Teams = make([]models.Team, len(p.Teams))
		for j, t := range p.Teams {
			ct := t
			ct.Members = cloneMembers(t.Members)
			cp.Teams[j] = ct
		}
		cp.Requirements = make([]models.RoleRequirement, len(p.Requirements))
		copy(cp.Requirements, p.Requirements)
		out.Projects[i] = cp
	}
	for i, m := range s.Bench {
		out.Bench[i] = cloneMember(m)
	}
	return out
}

func cloneMembers(members []models.TeamMember) []models.TeamMember {
	out := make([]models.TeamMember, len(members))
	for i, m := range members {
		out[i] = cloneMember(m)
	}
	return out
}

func cloneMember(m models.TeamMember) models.TeamMember {
	cm := m
	cm.Skills = make([]string, len(m.Skills))
	copy(cm.Skills, m.Skills)
	return cm
}

// FindProject returns the project with the given id
func (s Snapshot) FindProject(projectID string) (models.Project, bool) {
	for _, p := range s.Projects {
		if p.ID == projectID {
			return p, true
		}
	}
	return models.Project{}, false
}

// FindTeam returns the team with the given id and its owning project
func (s Snapshot) FindTeam(teamID string) (models.Team, models.Project, bool) {
	for _, p := range s.Projects {
		for _, t := range p.Teams {
			if t.ID == teamID {
				return t, p, true
			}
		}
	}
	return models.Team{}, models.Project{}, false
}

// FindMember returns the member with the given id, searching every team
// and then the bench
func (s Snapshot) FindMember(memberID string) (models.TeamMember, bool) {
	for _, p := range s.Projects {
		for _, t := range p.Teams {
			for _, m := range t.Members {
				if m.ID == memberID {
					return m, true
				}
			}
		}
	}
	for _, m := range s.Bench {
		if m.ID == memberID {
			return m, true
		}
	}
	return models.TeamMember{}, false
}

// Members returns every member across all projects plus the bench,
// in display order
func (s Snapshot) Members() []models.TeamMember {
	var out []models.TeamMember
	for _, p := range s.Projects {
		for _, t := range p.Teams {
			out = append(out, t.Members...)
		}
	}
	out = append(out, s.Bench...)
	return out
}

// roleHeadcount counts members holding the given role across all the
// project's teams
func roleHeadcount(p models.Project, role string) int {
	count := 0
	for _, t := range p.Teams {
		for _, m := range t.Members {
			if m.Role == role {
				count++
			}
		}
	}
	return count
}

// locate indexes for in-place edits on a cloned snapshot

func (s Snapshot) teamIndex(teamID string) (projectIdx, teamIdx int, ok bool) {
	for i, p := range s.Projects {
		for j, t := range p.Teams {
			if t.ID == teamID {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func (s Snapshot) projectIndex(projectID string) (int, bool) {
	for i, p := range s.Projects {
		if p.ID == projectID {
			return i, true
		}
	}
	return 0, false
}
