package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/csaptu/allocate/internal/llm"
	"github.com/csaptu/allocate/internal/models"
	"github.com/csaptu/allocate/internal/org"
)

// LLMMatcher asks a text-generation provider for suggestions and falls
// back to the local heuristic whenever the provider fails or its output
// cannot be parsed into the expected shape. A failure is never surfaced
// to the caller as an error from SuggestMatches or ExplainAssignment.
type LLMMatcher struct {
	client    llm.Client
	heuristic *Heuristic
}

// NewLLMMatcher creates an LLM-backed matcher
func NewLLMMatcher(client llm.Client) *LLMMatcher {
	return &LLMMatcher{
		client:    client,
		heuristic: NewHeuristic(),
	}
}

// SuggestMatches prompts the provider for the top matches and validates
// the response shape before trusting it
func (m *LLMMatcher) SuggestMatches(ctx context.Context, task models.Task, candidates []models.TeamMember) ([]models.AIMatch, error) {
	resp, err := m.client.Complete(ctx, llm.CompletionRequest{
		Prompt:      buildMatchPrompt(task, candidates),
		Temperature: 0.2,
	})
	if err != nil {
		log.Warn().Err(err).Str("task_id", task.ID).Msg("LLM matching failed, using fallback")
		return m.heuristic.SuggestMatches(ctx, task, candidates)
	}

	matches, err := parseMatches(resp.Content, candidates)
	if err != nil {
		log.Warn().Err(err).Str("task_id", task.ID).Msg("could not parse LLM matches, using fallback")
		return m.heuristic.SuggestMatches(ctx, task, candidates)
	}
	return matches, nil
}

// ExplainAssignment asks the provider for a short explanation, falling
// back to the deterministic template
func (m *LLMMatcher) ExplainAssignment(ctx context.Context, task models.Task, member models.TeamMember, score float64) (string, error) {
	prompt := fmt.Sprintf(`Explain in 1-2 sentences why %s is a good match for the task %q.

Task requires: %s
Member has: %s
Match score: %.0f%%
Current workload: %gh / %gh`,
		member.Name, task.Title,
		strings.Join(task.RequiredSkills, ", "),
		strings.Join(member.Skills, ", "),
		score*100, member.CurrentWorkload, member.MaxCapacity)

	resp, err := m.client.Complete(ctx, llm.CompletionRequest{Prompt: prompt, Temperature: 0.7})
	if err != nil || strings.TrimSpace(resp.Content) == "" {
		return m.heuristic.ExplainAssignment(ctx, task, member, score)
	}
	return strings.TrimSpace(resp.Content), nil
}

// ParseCommand turns chat text into a structured action. Anything the
// provider returns that does not conform to the command shape becomes an
// unknown action.
func (m *LLMMatcher) ParseCommand(ctx context.Context, text string, snapshot org.Snapshot) (Action, error) {
	resp, err := m.client.Complete(ctx, llm.CompletionRequest{
		Prompt:      buildCommandPrompt(text, snapshot),
		Temperature: 0,
	})
	if err != nil {
		log.Warn().Err(err).Msg("LLM command parsing failed")
		return m.heuristic.ParseCommand(ctx, text, snapshot)
	}

	raw, ok := extractJSON(resp.Content)
	if !ok {
		return m.heuristic.ParseCommand(ctx, text, snapshot)
	}

	var action Action
	if err := json.Unmarshal([]byte(raw), &action); err != nil || !action.Type.IsValid() {
		return m.heuristic.ParseCommand(ctx, text, snapshot)
	}
	return action, nil
}

func buildMatchPrompt(task models.Task, candidates []models.TeamMember) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are an AI task assignment system. Analyze the following task and team members to suggest the best matches.

Task:
- Title: %s
- Description: %s
- Priority: %s
- Estimated Hours: %g
- Required Skills: %s
- Deadline: %s

Available Team Members:
`,
		task.Title, task.Description, task.Priority, task.EstimatedHours,
		strings.Join(task.RequiredSkills, ", "), task.Deadline.Format("2006-01-02"))

	for i, member := range candidates {
		fmt.Fprintf(&b, `
%d. %s (id: %s)
   - Skills: %s
   - Current Workload: %gh / %gh
   - Availability: %s
   - Velocity: %g tasks/week
`,
			i+1, member.Name, member.ID, strings.Join(member.Skills, ", "),
			member.CurrentWorkload, member.MaxCapacity, member.Availability, member.Velocity)
	}

	b.WriteString(`
Provide the top 3 best matches. Respond with JSON only:
{
  "matches": [
    {
      "memberId": "string",
      "confidenceScore": number,
      "reasoning": "string",
      "conflicts": ["string"]
    }
  ]
}`)
	return b.String()
}

func buildCommandPrompt(text string, snapshot org.Snapshot) string {
	var b strings.Builder
	b.WriteString(`You are a command parser for a resource allocation dashboard. Turn the user's message into exactly one JSON action.

Action types:
- create_project: data has "name" and optional "requirements" ([{"role": string, "count": number}])
- add_member: data has "name", "role", optional "skills", optional "projectName" and "teamName"
- assign_member: data has "memberName" and "projectName"
- unknown: set "message" to a short reply explaining what you can do

Current projects: `)
	var names []string
	for _, p := range snapshot.Projects {
		names = append(names, p.Name)
	}
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\nCurrent members: ")
	var members []string
	for _, m := range snapshot.Members() {
		members = append(members, m.Name)
	}
	b.WriteString(strings.Join(members, ", "))

	fmt.Fprintf(&b, `

User message: %q

Respond with JSON only:
{"type": "create_project|add_member|assign_member|unknown", "data": {...}, "message": "..."}`, text)
	return b.String()
}

type matchesEnvelope struct {
	Matches []struct {
		MemberID        string   `json:"memberId"`
		ConfidenceScore float64  `json:"confidenceScore"`
		Reasoning       string   `json:"reasoning"`
		Conflicts       []string `json:"conflicts"`
	} `json:"matches"`
}

// parseMatches validates the provider output: it must be JSON in the
// matches envelope, every member id must reference a real candidate and
// scores are clamped into [0,1]. At most three matches survive.
func parseMatches(content string, candidates []models.TeamMember) ([]models.AIMatch, error) {
	raw, ok := extractJSON(content)
	if !ok {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var envelope matchesEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal matches: %w", err)
	}
	if len(envelope.Matches) == 0 {
		return nil, fmt.Errorf("response contains no matches")
	}

	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c.ID] = true
	}

	out := make([]models.AIMatch, 0, len(envelope.Matches))
	for _, m := range envelope.Matches {
		if !known[m.MemberID] {
			return nil, fmt.Errorf("unknown member id %q in response", m.MemberID)
		}
		score := m.ConfidenceScore
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		conflicts := m.Conflicts
		if conflicts == nil {
			conflicts = []string{}
		}
		out = append(out, models.AIMatch{
			MemberID:        m.MemberID,
			ConfidenceScore: score,
			Reasoning:       m.Reasoning,
			Conflicts:       conflicts,
		})
		if len(out) == 3 {
			break
		}
	}
	return out, nil
}

var (
	fencedJSONRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")
	rawJSONRe    = regexp.MustCompile(`\{[\s\S]*\}`)
)

// extractJSON pulls a JSON object out of model output that may wrap it in
// markdown fences or prose
func extractJSON(content string) (string, bool) {
	if m := fencedJSONRe.FindStringSubmatch(content); len(m) == 2 {
		content = m[1]
	}
	if m := rawJSONRe.FindString(content); m != "" {
		return m, true
	}
	return "", false
}
