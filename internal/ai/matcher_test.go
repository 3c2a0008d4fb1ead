package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csaptu/allocate/internal/llm"
	"github.com/csaptu/allocate/internal/match"
	"github.com/csaptu/allocate/internal/models"
	"github.com/csaptu/allocate/internal/org"
)

type fakeClient struct {
	content string
	err     error
}

func (f *fakeClient) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.content, Model: "fake"}, nil
}

func matchFixture() (models.Task, []models.TeamMember) {
	task := models.Task{
		ID:             "task-1",
		Title:          "Implement User Authentication",
		RequiredSkills: []string{"React", "Node.js"},
		EstimatedHours: 16,
	}
	candidates := []models.TeamMember{
		{ID: "member-1", Name: "Sarah", Skills: []string{"React", "Node.js"}, CurrentWorkload: 10, MaxCapacity: 40, Availability: models.AvailabilityAvailable},
		{ID: "member-2", Name: "Marcus", Skills: []string{"Python"}, CurrentWorkload: 38, MaxCapacity: 40, Availability: models.AvailabilityBusy},
	}
	return task, candidates
}

func TestLLMMatcher_ParsesValidResponse(t *testing.T) {
	task, candidates := matchFixture()
	matcher := NewLLMMatcher(&fakeClient{content: "```json\n" + `{
		"matches": [
			{"memberId": "member-1", "confidenceScore": 0.9, "reasoning": "Strong skill fit", "conflicts": []},
			{"memberId": "member-2", "confidenceScore": 1.4, "reasoning": "Stretch pick", "conflicts": ["Would exceed capacity"]}
		]
	}` + "\n```"})

	matches, err := matcher.SuggestMatches(context.Background(), task, candidates)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "member-1", matches[0].MemberID)
	assert.Equal(t, 0.9, matches[0].ConfidenceScore)
	assert.Equal(t, "Strong skill fit", matches[0].Reasoning)
	// Out-of-range scores are clamped into [0,1]
	assert.Equal(t, 1.0, matches[1].ConfidenceScore)
}

func TestLLMMatcher_FallsBackOnGarbage(t *testing.T) {
	task, candidates := matchFixture()
	matcher := NewLLMMatcher(&fakeClient{content: "Sure! Sarah looks like the best pick to me."})

	matches, err := matcher.SuggestMatches(context.Background(), task, candidates)
	require.NoError(t, err)
	assert.Equal(t, match.Score(task, candidates), matches)
}

func TestLLMMatcher_FallsBackOnUnknownMember(t *testing.T) {
	task, candidates := matchFixture()
	matcher := NewLLMMatcher(&fakeClient{content: `{"matches": [{"memberId": "member-99", "confidenceScore": 0.8, "reasoning": "?", "conflicts": []}]}`})

	matches, err := matcher.SuggestMatches(context.Background(), task, candidates)
	require.NoError(t, err)
	assert.Equal(t, match.Score(task, candidates), matches)
}

func TestLLMMatcher_FallsBackOnProviderError(t *testing.T) {
	task, candidates := matchFixture()
	matcher := NewLLMMatcher(&fakeClient{err: errors.New("connection refused")})

	matches, err := matcher.SuggestMatches(context.Background(), task, candidates)
	require.NoError(t, err)
	assert.Equal(t, match.Score(task, candidates), matches)
}

func TestLLMMatcher_TruncatesToThree(t *testing.T) {
	task := models.Task{ID: "task-1", RequiredSkills: []string{"Go"}}
	var candidates []models.TeamMember
	for _, id := range []string{"a", "b", "c", "d"} {
		candidates = append(candidates, models.TeamMember{ID: id, Skills: []string{"Go"}, MaxCapacity: 40})
	}
	matcher := NewLLMMatcher(&fakeClient{content: `{"matches": [
		{"memberId": "a", "confidenceScore": 0.9},
		{"memberId": "b", "confidenceScore": 0.8},
		{"memberId": "c", "confidenceScore": 0.7},
		{"memberId": "d", "confidenceScore": 0.6}
	]}`})

	matches, err := matcher.SuggestMatches(context.Background(), task, candidates)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestLLMMatcher_ParseCommand(t *testing.T) {
	matcher := NewLLMMatcher(&fakeClient{content: `{"type": "create_project", "data": {"name": "Apollo", "requirements": [{"role": "Backend Lead", "count": 1}]}}`})

	action, err := matcher.ParseCommand(context.Background(), "Create project Apollo with a backend lead", org.Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, ActionCreateProject, action.Type)
	assert.Equal(t, "Apollo", action.Data.Name)
	require.Len(t, action.Data.Requirements, 1)
	assert.Equal(t, "Backend Lead", action.Data.Requirements[0].Role)
}

func TestLLMMatcher_ParseCommand_FreeTextIsUnknown(t *testing.T) {
	matcher := NewLLMMatcher(&fakeClient{content: "I cannot help with that, sorry."})

	action, err := matcher.ParseCommand(context.Background(), "what is the weather", org.Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, ActionUnknown, action.Type)
	assert.NotEmpty(t, action.Message)
}

func TestLLMMatcher_ParseCommand_BadTypeIsUnknown(t *testing.T) {
	matcher := NewLLMMatcher(&fakeClient{content: `{"type": "delete_everything", "data": {}}`})

	action, err := matcher.ParseCommand(context.Background(), "delete everything", org.Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, ActionUnknown, action.Type)
}

func TestLLMMatcher_ExplainAssignment_FallsBack(t *testing.T) {
	task, candidates := matchFixture()
	matcher := NewLLMMatcher(&fakeClient{err: errors.New("timeout")})

	explanation, err := matcher.ExplainAssignment(context.Background(), task, candidates[0], 0.9)
	require.NoError(t, err)
	assert.Equal(t, `Sarah was assigned to "Implement User Authentication" with a 90% match score based on skills and availability.`, explanation)
}

func TestHeuristic_SuggestMatches(t *testing.T) {
	task, candidates := matchFixture()
	matcher := NewHeuristic()

	matches, err := matcher.SuggestMatches(context.Background(), task, candidates)
	require.NoError(t, err)
	assert.Equal(t, match.Score(task, candidates), matches)
}

func TestHeuristic_ParseCommandIsUnknown(t *testing.T) {
	action, err := NewHeuristic().ParseCommand(context.Background(), "Create project Alpha", org.Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, ActionUnknown, action.Type)
	assert.NotEmpty(t, action.Message)
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`, true},
		{"fenced no lang", "```\n{\"a\": 1}\n```", `{"a": 1}`, true},
		{"prose wrapped", `Here you go: {"a": 1} hope that helps`, `{"a": 1}`, true},
		{"no json", "no structured data here", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := extractJSON(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
