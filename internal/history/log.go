// Package history keeps the append-only record of task assignments.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/csaptu/allocate/internal/models"
)

// Log is an append-only assignment history. Entries are never mutated or
// removed once recorded.
type Log struct {
	mu      sync.RWMutex
	entries []models.Assignment
}

// NewLog creates an empty assignment log
func NewLog() *Log {
	return &Log{}
}

// Record appends one assignment and returns it with its id and timestamp
// filled in
func (l *Log) Record(taskID, memberID string, mode models.AllocationMode, assignedBy string, aiMatchScore *float64) models.Assignment {
	entry := models.Assignment{
		ID:           uuid.New().String(),
		TaskID:       taskID,
		MemberID:     memberID,
		AssignedAt:   time.Now().UTC(),
		Mode:         mode,
		AssignedBy:   assignedBy,
		AIMatchScore: aiMatchScore,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return entry
}

// Seed preloads historical entries, keeping their original ids and
// timestamps
func (l *Log) Seed(entries []models.Assignment) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entries...)
}

// All returns a copy of every assignment in insertion order
func (l *Log) All() []models.Assignment {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Assignment, len(l.entries))
	copy(out, l.entries)
	return out
}

// ForTask returns the assignments recorded for one task, oldest first
func (l *Log) ForTask(taskID string) []models.Assignment {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []models.Assignment
	for _, e := range l.entries {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of recorded assignments
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
