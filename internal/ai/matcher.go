// Package ai exposes the matching capability behind a small interface so
// the rest of the service never depends on a specific provider. Two
// implementations exist: a deterministic local heuristic and an LLM-backed
// matcher that falls back to the heuristic on any failure.
package ai

import (
	"context"
	"fmt"
	"math"

	"github.com/csaptu/allocate/internal/match"
	"github.com/csaptu/allocate/internal/models"
	"github.com/csaptu/allocate/internal/org"
)

// Matcher suggests assignees for a task, explains a completed assignment
// and turns free-form chat text into a structured command.
type Matcher interface {
	SuggestMatches(ctx context.Context, task models.Task, candidates []models.TeamMember) ([]models.AIMatch, error)
	ExplainAssignment(ctx context.Context, task models.Task, member models.TeamMember, score float64) (string, error)
	ParseCommand(ctx context.Context, text string, snapshot org.Snapshot) (Action, error)
}

// Heuristic is the deterministic matcher. It never errors.
type Heuristic struct{}

// NewHeuristic creates the local heuristic matcher
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// SuggestMatches ranks candidates with the weighted-sum scorer
func (h *Heuristic) SuggestMatches(_ context.Context, task models.Task, candidates []models.TeamMember) ([]models.AIMatch, error) {
	return match.Score(task, candidates), nil
}

// ExplainAssignment produces the template explanation
func (h *Heuristic) ExplainAssignment(_ context.Context, task models.Task, member models.TeamMember, score float64) (string, error) {
	return fmt.Sprintf("%s was assigned to %q with a %d%% match score based on skills and availability.",
		member.Name, task.Title, int(math.Round(score*100))), nil
}

// ParseCommand always reports an unknown action; natural-language parsing
// needs a text-generation provider.
func (h *Heuristic) ParseCommand(_ context.Context, _ string, _ org.Snapshot) (Action, error) {
	return Action{
		Type:    ActionUnknown,
		Message: `I didn't understand that. Try "Create project Alpha" or "Add Jane as Backend Lead to Alpha".`,
	}, nil
}
