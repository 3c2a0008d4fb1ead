package match

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csaptu/allocate/internal/models"
)

func TestScore_WorkedExample(t *testing.T) {
	task := models.Task{
		ID:             "task-1",
		RequiredSkills: []string{"React", "Node.js"},
		EstimatedHours: 16,
	}
	member := models.TeamMember{
		ID:              "member-1",
		Skills:          []string{"React"},
		CurrentWorkload: 38,
		MaxCapacity:     40,
		Availability:    models.AvailabilityBusy,
	}

	matches := Score(task, []models.TeamMember{member})
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, "member-1", m.MemberID)
	// 0.5*0.5 + 0.3*0.05 + 0.2*0.3
	assert.InDelta(t, 0.325, m.ConfidenceScore, 1e-9)
	// Skill score of exactly 0.5 is not flagged as a skill conflict
	assert.Equal(t, []string{ConflictExceedsCapacity}, m.Conflicts)
	assert.Equal(t, "Skill match: 50%, Availability: busy, Workload: 38h/40h", m.Reasoning)
}

func TestScore_MissingSkillsConflict(t *testing.T) {
	task := models.Task{
		RequiredSkills: []string{"React", "Node.js", "AWS"},
		EstimatedHours: 4,
	}
	member := models.TeamMember{
		ID:              "m1",
		Skills:          []string{"React"},
		CurrentWorkload: 0,
		MaxCapacity:     40,
		Availability:    models.AvailabilityAvailable,
	}

	matches := Score(task, []models.TeamMember{member})
	require.Len(t, matches, 1)
	assert.Equal(t, []string{ConflictMissingSkills}, matches[0].Conflicts)
}

func TestScore_SortedAndTruncated(t *testing.T) {
	task := models.Task{
		RequiredSkills: []string{"Go"},
		EstimatedHours: 4,
	}
	var candidates []models.TeamMember
	for i, workload := range []float64{30, 10, 20, 0, 35} {
		candidates = append(candidates, models.TeamMember{
			ID:              string(rune('a' + i)),
			Skills:          []string{"Go"},
			CurrentWorkload: workload,
			MaxCapacity:     40,
			Availability:    models.AvailabilityAvailable,
		})
	}

	matches := Score(task, candidates)
	require.Len(t, matches, MaxMatches)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].ConfidenceScore, matches[i].ConfidenceScore)
	}
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.ConfidenceScore, 0.0)
		assert.LessOrEqual(t, m.ConfidenceScore, 1.0)
	}
	// Least loaded member wins
	assert.Equal(t, "d", matches[0].MemberID)
}

func TestScore_StableOnTies(t *testing.T) {
	task := models.Task{RequiredSkills: []string{"Go"}, EstimatedHours: 4}
	twin := models.TeamMember{
		Skills:          []string{"Go"},
		CurrentWorkload: 10,
		MaxCapacity:     40,
		Availability:    models.AvailabilityAvailable,
	}
	first, second := twin, twin
	first.ID = "first"
	second.ID = "second"

	matches := Score(task, []models.TeamMember{first, second})
	require.Len(t, matches, 2)
	assert.Equal(t, "first", matches[0].MemberID)
	assert.Equal(t, "second", matches[1].MemberID)
}

func TestScore_Deterministic(t *testing.T) {
	task := models.Task{
		RequiredSkills: []string{"React", "AWS"},
		EstimatedHours: 12,
	}
	candidates := []models.TeamMember{
		{ID: "m1", Skills: []string{"React"}, CurrentWorkload: 20, MaxCapacity: 40, Availability: models.AvailabilityAvailable},
		{ID: "m2", Skills: []string{"AWS", "React"}, CurrentWorkload: 35, MaxCapacity: 40, Availability: models.AvailabilityBusy},
	}

	assert.Equal(t, Score(task, candidates), Score(task, candidates))
}

func TestScore_EmptyRequiredSkills(t *testing.T) {
	task := models.Task{RequiredSkills: nil, EstimatedHours: 4}
	member := models.TeamMember{
		ID:              "m1",
		Skills:          []string{"Anything"},
		CurrentWorkload: 0,
		MaxCapacity:     40,
		Availability:    models.AvailabilityAvailable,
	}

	matches := Score(task, []models.TeamMember{member})
	require.Len(t, matches, 1)

	// Full skill credit, full availability, full capacity
	assert.InDelta(t, 1.0, matches[0].ConfidenceScore, 1e-9)
	assert.Empty(t, matches[0].Conflicts)
}

func TestScore_CapacityPenaltyNeverFull(t *testing.T) {
	task := models.Task{RequiredSkills: []string{"Go"}, EstimatedHours: 10}
	member := models.TeamMember{
		ID:              "m1",
		Skills:          []string{"Go"},
		CurrentWorkload: 35,
		MaxCapacity:     40,
		Availability:    models.AvailabilityOverloaded,
	}

	matches := Score(task, []models.TeamMember{member})
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Contains(t, m.Conflicts, ConflictExceedsCapacity)
	assert.Contains(t, m.Conflicts, ConflictOverloaded)
	// skill 0.5*1 + availability 0.3*0.125 + capacity 0.2*0.3
	assert.InDelta(t, 0.5+0.0375+0.06, m.ConfidenceScore, 1e-9)
}

func TestScore_ZeroCapacity(t *testing.T) {
	task := models.Task{RequiredSkills: []string{"Go"}, EstimatedHours: 4}
	member := models.TeamMember{
		ID:              "m1",
		Skills:          []string{"Go"},
		CurrentWorkload: 0,
		MaxCapacity:     0,
		Availability:    models.AvailabilityAvailable,
	}

	matches := Score(task, []models.TeamMember{member})
	require.Len(t, matches, 1)

	m := matches[0]
	assert.False(t, math.IsNaN(m.ConfidenceScore))
	// skill 0.5*1, availability 0, capacity 0.2*0.3
	assert.InDelta(t, 0.56, m.ConfidenceScore, 1e-9)
	assert.Contains(t, m.Conflicts, ConflictExceedsCapacity)
}

func TestScore_NoCandidates(t *testing.T) {
	matches := Score(models.Task{RequiredSkills: []string{"Go"}}, nil)
	assert.Empty(t, matches)
}

func TestImpact(t *testing.T) {
	task := models.Task{EstimatedHours: 10}
	member := models.TeamMember{
		CurrentWorkload: 35,
		MaxCapacity:     40,
		Availability:    models.AvailabilityBusy,
	}

	impact := Impact(task, member)
	assert.Equal(t, 35.0, impact.CurrentWorkload)
	assert.Equal(t, 45.0, impact.NewWorkload)
	assert.InDelta(t, 112.5, impact.UtilizationPercentage, 1e-9)
	assert.Equal(t, []string{ConflictExceedsCapacity}, impact.Conflicts)
}

func TestImpact_WithinCapacity(t *testing.T) {
	task := models.Task{EstimatedHours: 5}
	member := models.TeamMember{
		CurrentWorkload: 10,
		MaxCapacity:     40,
		Availability:    models.AvailabilityAvailable,
	}

	impact := Impact(task, member)
	assert.Equal(t, 15.0, impact.NewWorkload)
	assert.InDelta(t, 37.5, impact.UtilizationPercentage, 1e-9)
	assert.Empty(t, impact.Conflicts)
}
