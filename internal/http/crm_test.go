package http

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hkhalifa/deen-companion/internal/database/crm"
	"github.com/hkhalifa/deen-companion/internal/entities"
)

func createTestClient(t *testing.T, env *testEnv, cookies []*http.Cookie) entities.Client {
	t.Helper()
	w := env.request(t, http.MethodPost, "/api/clients", gin.H{
		"first_name": "Sara",
		"last_name":  "Ali",
		"email":      "sara@example.com",
		"status":     "active",
	}, cookies)
	if w.Code != http.StatusCreated {
		t.Fatalf("create client returned %d: %s", w.Code, w.Body.String())
	}
	var client entities.Client
	decodeBody(t, w, &client)
	return client
}

func TestClientValidation(t *testing.T) {
	env := setupTestRouter(t)
	cookies := env.signup(t, "consultant")

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing email", gin.H{"first_name": "A", "last_name": "B"}},
		{"bad email", gin.H{"first_name": "A", "last_name": "B", "email": "not-an-email"}},
		{"bad status", gin.H{"first_name": "A", "last_name": "B", "email": "a@b.com", "status": "vip"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.request(t, http.MethodPost, "/api/clients", tc.body, cookies)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestMeetingRequiresOwnedClient(t *testing.T) {
	env := setupTestRouter(t)
	owner := env.signup(t, "owner")
	other := env.signup(t, "other")
	client := createTestClient(t, env, owner)

	body := gin.H{
		"client_id": client.ID,
		"title":     "Intro call",
		"date":      time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		"time":      "10:30",
	}
	if w := env.request(t, http.MethodPost, "/api/meetings", body, other); w.Code != http.StatusNotFound {
		t.Errorf("foreign client: expected 404, got %d", w.Code)
	}
	if w := env.request(t, http.MethodPost, "/api/meetings", body, owner); w.Code != http.StatusCreated {
		t.Errorf("owned client: expected 201, got %d", w.Code)
	}

	bad := gin.H{"client_id": client.ID, "title": "x", "date": "tomorrow", "time": "10:30"}
	if w := env.request(t, http.MethodPost, "/api/meetings", bad, owner); w.Code != http.StatusBadRequest {
		t.Errorf("bad date: expected 400, got %d", w.Code)
	}
}

func TestDeleteClientKeepsMeetingsVisible(t *testing.T) {
	env := setupTestRouter(t)
	cookies := env.signup(t, "advisor")
	client := createTestClient(t, env, cookies)

	w := env.request(t, http.MethodPost, "/api/meetings", gin.H{
		"client_id": client.ID,
		"title":     "Kickoff",
		"date":      time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		"time":      "09:00",
	}, cookies)
	if w.Code != http.StatusCreated {
		t.Fatalf("create meeting returned %d: %s", w.Code, w.Body.String())
	}

	if w := env.request(t, http.MethodDelete, fmt.Sprintf("/api/clients/%d", client.ID), nil, cookies); w.Code != http.StatusOK {
		t.Fatalf("delete client returned %d", w.Code)
	}

	var list struct {
		Meetings []entities.Meeting `json:"meetings"`
	}
	w = env.request(t, http.MethodGet, "/api/meetings", nil, cookies)
	decodeBody(t, w, &list)
	if len(list.Meetings) != 1 {
		t.Errorf("expected the meeting to survive client deletion, got %d", len(list.Meetings))
	}
}

func TestTaskCompleteEndpoint(t *testing.T) {
	env := setupTestRouter(t)
	cookies := env.signup(t, "planner")

	w := env.request(t, http.MethodPost, "/api/tasks", gin.H{
		"title":    "Prepare report",
		"priority": "high",
		"due_date": time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
	}, cookies)
	if w.Code != http.StatusCreated {
		t.Fatalf("create task returned %d: %s", w.Code, w.Body.String())
	}
	var task entities.Task
	decodeBody(t, w, &task)

	w = env.request(t, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/complete", task.ID), nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("complete returned %d: %s", w.Code, w.Body.String())
	}
	var done entities.Task
	decodeBody(t, w, &done)
	if !done.Completed {
		t.Error("expected task to be completed")
	}

	if w := env.request(t, http.MethodPost, "/api/tasks", gin.H{"title": "x", "priority": "urgent"}, cookies); w.Code != http.StatusBadRequest {
		t.Errorf("bad priority: expected 400, got %d", w.Code)
	}
}

func TestSummaryReport(t *testing.T) {
	env := setupTestRouter(t)
	cookies := env.signup(t, "analyst")
	client := createTestClient(t, env, cookies)

	env.request(t, http.MethodPost, "/api/meetings", gin.H{
		"client_id": client.ID,
		"title":     "Planning",
		"date":      time.Now().AddDate(0, 0, 5).Format("2006-01-02"),
		"time":      "11:00",
	}, cookies)
	env.request(t, http.MethodPost, "/api/tasks", gin.H{"title": "open task"}, cookies)

	w := env.request(t, http.MethodGet, "/api/reports/summary", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("summary returned %d: %s", w.Code, w.Body.String())
	}

	var summary crm.Summary
	decodeBody(t, w, &summary)
	if summary.TotalClients != 1 {
		t.Errorf("expected 1 client, got %d", summary.TotalClients)
	}
	if summary.UpcomingMeetings != 1 {
		t.Errorf("expected 1 upcoming meeting, got %d", summary.UpcomingMeetings)
	}
	if summary.OpenTasks != 1 {
		t.Errorf("expected 1 open task, got %d", summary.OpenTasks)
	}
	if summary.OverdueTasks != 0 {
		t.Errorf("expected no overdue tasks, got %d", summary.OverdueTasks)
	}
}
