// Package match implements the deterministic allocation heuristic used
// when no text-generation provider is configured or reachable.
package match

import (
	"fmt"
	"math"
	"sort"

	"github.com/csaptu/allocate/internal/models"
)

// MaxMatches is how many suggestions a scoring pass returns
const MaxMatches = 3

// Score weights. Skill fit dominates, then headroom, then the hard
// capacity check.
const (
	skillWeight        = 0.5
	availabilityWeight = 0.3
	capacityWeight     = 0.2

	// capacityPenalty is the fixed capacity score for a member the task
	// would push past max capacity. Not proportional.
	capacityPenalty = 0.3
)

// Conflict messages, in the order they are appended
const (
	ConflictExceedsCapacity = "Would exceed capacity"
	ConflictOverloaded      = "Currently overloaded"
	ConflictMissingSkills   = "Missing some required skills"
)

// Score ranks candidates for a task and returns at most MaxMatches
// suggestions sorted by confidence, highest first. Ties keep the original
// candidate order. Pure: identical inputs always yield identical output,
// reasoning text included.
func Score(task models.Task, candidates []models.TeamMember) []models.AIMatch {
	scored := make([]models.AIMatch, 0, len(candidates))
	for _, member := range candidates {
		scored = append(scored, scoreOne(task, member))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].ConfidenceScore > scored[j].ConfidenceScore
	})

	if len(scored) > MaxMatches {
		scored = scored[:MaxMatches]
	}
	return scored
}

func scoreOne(task models.Task, member models.TeamMember) models.AIMatch {
	skillScore := skillOverlap(task.RequiredSkills, member.Skills)

	// Zero capacity means no headroom, not a division by zero
	availabilityScore := 0.0
	if member.MaxCapacity > 0 {
		availabilityScore = 1 - member.CurrentWorkload/member.MaxCapacity
		if availabilityScore < 0 {
			availabilityScore = 0
		}
	}

	hasCapacity := member.CurrentWorkload+task.EstimatedHours <= member.MaxCapacity
	capacityScore := 1.0
	if !hasCapacity {
		capacityScore = capacityPenalty
	}

	confidence := skillScore*skillWeight + availabilityScore*availabilityWeight + capacityScore*capacityWeight

	conflicts := []string{}
	if !hasCapacity {
		conflicts = append(conflicts, ConflictExceedsCapacity)
	}
	if member.Availability == models.AvailabilityOverloaded {
		conflicts = append(conflicts, ConflictOverloaded)
	}
	if skillScore < 0.5 {
		conflicts = append(conflicts, ConflictMissingSkills)
	}

	return models.AIMatch{
		MemberID:        member.ID,
		ConfidenceScore: confidence,
		Reasoning: fmt.Sprintf("Skill match: %d%%, Availability: %s, Workload: %gh/%gh",
			int(math.Round(skillScore*100)), member.Availability, member.CurrentWorkload, member.MaxCapacity),
		Conflicts: conflicts,
	}
}

// skillOverlap is the fraction of required skills the member has. A task
// with no required skills counts as a full match for everyone, so the
// skill term never divides by zero and never flags a conflict.
func skillOverlap(required, skills []string) float64 {
	if len(required) == 0 {
		return 1
	}
	have := make(map[string]bool, len(skills))
	for _, s := range skills {
		have[s] = true
	}
	matching := 0
	for _, s := range required {
		if have[s] {
			matching++
		}
	}
	return float64(matching) / float64(len(required))
}
