package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestExplainConcept(t *testing.T) {
	env := setupTestRouter(t)
	cookies := env.signup(t, "talib")
	env.assistant.answer = "Tawakkul is trust in God combined with taking the means."

	w := env.request(t, http.MethodPost, "/api/explain", gin.H{"term": "tawakkul"}, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Term        string `json:"term"`
		Explanation string `json:"explanation"`
	}
	decodeBody(t, w, &body)
	if body.Term != "tawakkul" {
		t.Errorf("expected term echoed back, got %q", body.Term)
	}
	if body.Explanation != env.assistant.answer {
		t.Errorf("expected assistant output, got %q", body.Explanation)
	}

	if w := env.request(t, http.MethodPost, "/api/explain", gin.H{"term": "  "}, cookies); w.Code != http.StatusBadRequest {
		t.Errorf("blank term: expected 400, got %d", w.Code)
	}
}

func TestScholarBio(t *testing.T) {
	env := setupTestRouter(t)
	cookies := env.signup(t, "reader")
	env.assistant.answer = "Imam al-Nawawi was a 13th century Shafi'i scholar."

	w := env.request(t, http.MethodPost, "/api/scholar", gin.H{"name": "Imam al-Nawawi"}, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		ScholarName string `json:"scholarName"`
		Biography   string `json:"biography"`
	}
	decodeBody(t, w, &body)
	if body.ScholarName != "Imam al-Nawawi" {
		t.Errorf("expected name echoed back, got %q", body.ScholarName)
	}
	if body.Biography != env.assistant.answer {
		t.Errorf("expected assistant output, got %q", body.Biography)
	}
}

func TestAssistantFailureReportsBadGateway(t *testing.T) {
	env := setupTestRouter(t)
	cookies := env.signup(t, "patient")
	env.assistant.err = errors.New("quota exceeded")

	w := env.request(t, http.MethodPost, "/api/explain", gin.H{"term": "sabr"}, cookies)
	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
}
