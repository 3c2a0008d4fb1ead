package models

// Priority represents the priority level of a task
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// IsValid checks if the priority is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Availability represents a member's displayed availability state.
// It is set by the caller, never derived from workload numbers.
type Availability string

const (
	AvailabilityAvailable  Availability = "available"
	AvailabilityBusy       Availability = "busy"
	AvailabilityOverloaded Availability = "overloaded"
)

// IsValid checks if the availability is valid
func (a Availability) IsValid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityOverloaded:
		return true
	}
	return false
}

// AllocationMode represents how assignments are being made
type AllocationMode string

const (
	ModeAuto   AllocationMode = "auto"
	ModeManual AllocationMode = "manual"
)

// IsValid checks if the allocation mode is valid
func (m AllocationMode) IsValid() bool {
	switch m {
	case ModeAuto, ModeManual:
		return true
	}
	return false
}
