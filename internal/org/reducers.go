package org

import (
	"github.com/csaptu/allocate/internal/models"

	apperrors "github.com/csaptu/allocate/internal/errors"
)

// ProjectUpdate holds the fields of a project that can be edited.
// Nil fields are left unchanged.
type ProjectUpdate struct {
	Name         *string
	Requirements []models.RoleRequirement
}

// MemberUpdate holds the fields of a member that can be edited.
// Nil fields are left unchanged.
type MemberUpdate struct {
	Name            *string
	Role            *string
	Avatar          *string
	Skills          []string
	CurrentWorkload *float64
	MaxCapacity     *float64
	Velocity        *float64
	Availability    *models.Availability
}

// AddProject appends a fully-formed project to the snapshot
func AddProject(s Snapshot, p models.Project) Snapshot {
	next := s.Clone()
	next.Projects = append(next.Projects, p)
	return next
}

// AddTeam appends a team to the given project. Unknown project ids are a
// silent no-op, mirroring the edit operations.
func AddTeam(s Snapshot, projectID string, t models.Team) Snapshot {
	idx, ok := s.projectIndex(projectID)
	if !ok {
		return s
	}
	next := s.Clone()
	t.ProjectID = projectID
	next.Projects[idx].Teams = append(next.Projects[idx].Teams, t)
	return next
}

// AddMember appends a member to the given team and keeps the owning
// project's role requirements consistent: an existing requirement whose
// recorded count is already met or exceeded is bumped to the new
// headcount, and a missing requirement entry is created with count 1.
// Counts are never decreased here.
func AddMember(s Snapshot, teamID string, m models.TeamMember) (Snapshot, error) {
	pi, ti, ok := s.teamIndex(teamID)
	if !ok {
		return s, apperrors.ErrTeamNotFound
	}
	next := s.Clone()
	project := &next.Projects[pi]
	bumpRequirements(project, m.Role)
	m.TeamID = teamID
	project.Teams[ti].Members = append(project.Teams[ti].Members, m)
	return next, nil
}

// MoveMember removes the member from the source team and appends it to
// the target team. A member absent from the source team is looked up on
// the bench and treated as a pure addition to the target. Moving a member
// into a project that did not contain the source team applies the same
// requirement bump as AddMember; moves within one project never touch
// requirement counts. source == target is a no-op.
func MoveMember(s Snapshot, memberID, sourceTeamID, targetTeamID string) Snapshot {
	if sourceTeamID == targetTeamID {
		return s
	}
	tpi, tti, ok := s.teamIndex(targetTeamID)
	if !ok {
		return s
	}

	next := s.Clone()

	var moved models.TeamMember
	found := false
	if spi, sti, ok := next.teamIndex(sourceTeamID); ok {
		team := &next.Projects[spi].Teams[sti]
		for i, m := range team.Members {
			if m.ID == memberID {
				moved = m
				team.Members = append(team.Members[:i], team.Members[i+1:]...)
				found = true
				break
			}
		}
	}
	if !found {
		// Pure addition from the bench
		for i, m := range next.Bench {
			if m.ID == memberID {
				moved = m
				next.Bench = append(next.Bench[:i], next.Bench[i+1:]...)
				found = true
				break
			}
		}
	}
	if !found {
		return s
	}

	target := &next.Projects[tpi]
	if !projectHasTeam(*target, sourceTeamID) {
		bumpRequirements(target, moved.Role)
	}
	moved.TeamID = targetTeamID
	target.Teams[tti].Members = append(target.Teams[tti].Members, moved)
	return next
}

// EditProject shallow-merges the update into the matching project.
// Unknown ids are a silent no-op.
func EditProject(s Snapshot, projectID string, upd ProjectUpdate) Snapshot {
	idx, ok := s.projectIndex(projectID)
	if !ok {
		return s
	}
	next := s.Clone()
	p := &next.Projects[idx]
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Requirements != nil {
		p.Requirements = upd.Requirements
	}
	return next
}

// EditMember shallow-merges the update into the matching member wherever
// it currently lives. Unknown ids are a silent no-op.
func EditMember(s Snapshot, memberID string, upd MemberUpdate) Snapshot {
	if _, ok := s.FindMember(memberID); !ok {
		return s
	}
	next := s.Clone()
	for pi := range next.Projects {
		for ti := range next.Projects[pi].Teams {
			members := next.Projects[pi].Teams[ti].Members
			for mi := range members {
				if members[mi].ID == memberID {
					applyMemberUpdate(&members[mi], upd)
					return next
				}
			}
		}
	}
	for i := range next.Bench {
		if next.Bench[i].ID == memberID {
			applyMemberUpdate(&next.Bench[i], upd)
			return next
		}
	}
	return next
}

// DeleteProject removes the project along with its teams and their
// members. Unknown ids are a silent no-op.
func DeleteProject(s Snapshot, projectID string) Snapshot {
	idx, ok := s.projectIndex(projectID)
	if !ok {
		return s
	}
	next := s.Clone()
	next.Projects = append(next.Projects[:idx], next.Projects[idx+1:]...)
	return next
}

// DeleteMember removes the member from whichever team or bench slot
// currently holds it. Unknown ids are a silent no-op.
func DeleteMember(s Snapshot, memberID string) Snapshot {
	if _, ok := s.FindMember(memberID); !ok {
		return s
	}
	next := s.Clone()
	for pi := range next.Projects {
		for ti := range next.Projects[pi].Teams {
			members := next.Projects[pi].Teams[ti].Members
			for mi, m := range members {
				if m.ID == memberID {
					next.Projects[pi].Teams[ti].Members = append(members[:mi], members[mi+1:]...)
					return next
				}
			}
		}
	}
	for i, m := range next.Bench {
		if m.ID == memberID {
			next.Bench = append(next.Bench[:i], next.Bench[i+1:]...)
			return next
		}
	}
	return next
}

// AddToBench appends an unassigned member to the bench
func AddToBench(s Snapshot, m models.TeamMember) Snapshot {
	next := s.Clone()
	m.TeamID = ""
	next.Bench = append(next.Bench, m)
	return next
}

// bumpRequirements adjusts the project's requirement entry for a role
// that is about to gain one member. Headcount is taken before the new
// member is appended, so meeting or exceeding the recorded count means
// the recorded count must grow to cover the newcomer.
func bumpRequirements(p *models.Project, role string) {
	headcount := roleHeadcount(*p, role)
	for i, r := range p.Requirements {
		if r.Role == role {
			if headcount >= r.Count {
				p.Requirements[i].Count = headcount + 1
			}
			return
		}
	}
	p.Requirements = append(p.Requirements, models.RoleRequirement{Role: role, Count: 1})
}

func projectHasTeam(p models.Project, teamID string) bool {
	for _, t := range p.Teams {
		if t.ID == teamID {
			return true
		}
	}
	return false
}

func applyMemberUpdate(m *models.TeamMember, upd MemberUpdate) {
	if upd.Name != nil {
		m.Name = *upd.Name
	}
	if upd.Role != nil {
		m.Role = *upd.Role
	}
	if upd.Avatar != nil {
		m.Avatar = *upd.Avatar
	}
	if upd.Skills != nil {
		m.Skills = upd.Skills
	}
	if upd.CurrentWorkload != nil {
		m.CurrentWorkload = *upd.CurrentWorkload
	}
	if upd.MaxCapacity != nil {
		m.MaxCapacity = *upd.MaxCapacity
	}
	if upd.Velocity != nil {
		m.Velocity = *upd.Velocity
	}
	if upd.Availability != nil {
		m.Availability = *upd.Availability
	}
}
