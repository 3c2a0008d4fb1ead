package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csaptu/allocate/internal/config"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(&config.Config{
		Server: config.ServerConfig{
			Environment:     "development",
			ShutdownTimeout: time.Second,
		},
		Seed: config.SeedConfig{DemoData: true},
	})
	require.NoError(t, err)
	return server
}

func doJSON(t *testing.T, server *Server, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := server.App().Test(req, 5000)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestHealthCheck(t *testing.T) {
	server := testServer(t)

	resp, body := doJSON(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}

func TestGetState_SeededData(t *testing.T) {
	server := testServer(t)

	resp, body := doJSON(t, server, http.MethodGet, "/api/v1/state", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	snapshot := data["snapshot"].(map[string]interface{})
	assert.Len(t, snapshot["projects"], 2)
	assert.Len(t, data["tasks"], 6)
	assert.Len(t, data["assignments"], 2)
	assert.Equal(t, "auto", data["mode"])
}

func TestCreateProject(t *testing.T) {
	server := testServer(t)

	resp, body := doJSON(t, server, http.MethodPost, "/api/v1/projects", map[string]interface{}{
		"name":         "Apollo",
		"requirements": []map[string]interface{}{{"role": "Backend Lead", "count": 1}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Apollo", data["name"])
	teams := data["teams"].([]interface{})
	require.Len(t, teams, 1)
	assert.Equal(t, "Core Team", teams[0].(map[string]interface{})["name"])
}

func TestCreateProject_MissingName(t *testing.T) {
	server := testServer(t)

	resp, body := doJSON(t, server, http.MethodPost, "/api/v1/projects", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestAddMember_UnknownTeam(t *testing.T) {
	server := testServer(t)

	resp, _ := doJSON(t, server, http.MethodPost, "/api/v1/teams/ghost/members", map[string]interface{}{
		"name": "Jane",
		"role": "Engineer",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateMember_RejectsZeroCapacity(t *testing.T) {
	server := testServer(t)

	resp, body := doJSON(t, server, http.MethodPut, "/api/v1/members/member-1", map[string]interface{}{
		"max_capacity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	member, ok := server.store.Snapshot().FindMember("member-1")
	require.True(t, ok)
	assert.Equal(t, 40.0, member.MaxCapacity)
}

func TestMoveMember_RoundTrip(t *testing.T) {
	server := testServer(t)

	// Seeded member-1 lives in team-1; move it to team-2 and back
	resp, body := doJSON(t, server, http.MethodPost, "/api/v1/members/member-1/move", map[string]interface{}{
		"source_team_id": "team-1",
		"target_team_id": "team-2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "team-2", data["team_id"])

	resp, body = doJSON(t, server, http.MethodPost, "/api/v1/members/member-1/move", map[string]interface{}{
		"source_team_id": "team-2",
		"target_team_id": "team-1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "team-1", data["team_id"])
}

func TestTaskMatches_Heuristic(t *testing.T) {
	server := testServer(t)

	resp, body := doJSON(t, server, http.MethodGet, "/api/v1/tasks/task-1/matches", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	matches := body["data"].([]interface{})
	require.NotEmpty(t, matches)
	assert.LessOrEqual(t, len(matches), 3)

	first := matches[0].(map[string]interface{})
	assert.NotEmpty(t, first["member_id"])
	assert.NotEmpty(t, first["reasoning"])
}

func TestTaskMatches_UnknownTask(t *testing.T) {
	server := testServer(t)

	resp, _ := doJSON(t, server, http.MethodGet, "/api/v1/tasks/ghost/matches", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAssign_RecordsAndBumpsWorkload(t *testing.T) {
	server := testServer(t)

	resp, body := doJSON(t, server, http.MethodPost, "/api/v1/assignments", map[string]interface{}{
		"task_id":   "task-5",
		"member_id": "member-4",
		"mode":      "manual",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assignment := data["assignment"].(map[string]interface{})
	assert.Equal(t, "manual", assignment["mode"])
	assert.Equal(t, "Dashboard User", assignment["assigned_by"])

	// task-5 is 10h; member-4 started at 20h
	member, ok := server.store.Snapshot().FindMember("member-4")
	require.True(t, ok)
	assert.Equal(t, 30.0, member.CurrentWorkload)

	assert.Equal(t, 3, server.history.Len())
}

func TestSetMode(t *testing.T) {
	server := testServer(t)

	resp, _ := doJSON(t, server, http.MethodPut, "/api/v1/mode", map[string]interface{}{"mode": "manual"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, server, http.MethodPut, "/api/v1/mode", map[string]interface{}{"mode": "chaos"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChat_UnknownWithoutLLM(t *testing.T) {
	server := testServer(t)

	resp, body := doJSON(t, server, http.MethodPost, "/api/v1/chat", map[string]interface{}{
		"message": "Create project Apollo",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "error", data["type"])
	assert.NotEmpty(t, data["reply"])
}

func TestDeleteProject_Cascades(t *testing.T) {
	server := testServer(t)

	resp, _ := doJSON(t, server, http.MethodDelete, "/api/v1/projects/proj-1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, ok := server.store.Snapshot().FindMember("member-1")
	assert.False(t, ok)
}
