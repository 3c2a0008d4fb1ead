package match

import "github.com/csaptu/allocate/internal/models"

// Impact reports what taking the task would do to the member's workload.
// The conflict rules match the scorer's capacity and overload checks.
func Impact(task models.Task, member models.TeamMember) models.WorkloadImpact {
	newWorkload := member.CurrentWorkload + task.EstimatedHours

	var utilization float64
	if member.MaxCapacity > 0 {
		utilization = newWorkload / member.MaxCapacity * 100
	}

	conflicts := []string{}
	if newWorkload > member.MaxCapacity {
		conflicts = append(conflicts, ConflictExceedsCapacity)
	}
	if member.Availability == models.AvailabilityOverloaded {
		conflicts = append(conflicts, ConflictOverloaded)
	}

	return models.WorkloadImpact{
		CurrentWorkload:       member.CurrentWorkload,
		NewWorkload:           newWorkload,
		UtilizationPercentage: utilization,
		Conflicts:             conflicts,
	}
}
