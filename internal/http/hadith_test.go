package http

import (
	"net/http"
	"testing"

	"github.com/hkhalifa/deen-companion/internal/content/hadith"
)

func TestHadithCollectionsCatalogue(t *testing.T) {
	env := setupTestRouter(t)

	w := env.request(t, http.MethodGet, "/api/hadith/collections", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Collections []hadith.Collection `json:"collections"`
	}
	decodeBody(t, w, &body)
	if len(body.Collections) != 6 {
		t.Errorf("expected 6 collections, got %d", len(body.Collections))
	}
}

func TestHadithProviderStatusCodes(t *testing.T) {
	env := setupTestRouter(t)

	// Unknown collection is a 404 regardless of provider configuration
	w := env.request(t, http.MethodGet, "/api/hadith/no-such-book", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown collection: expected 404, got %d", w.Code)
	}

	// The test router has no API key, so known collections report 503
	w = env.request(t, http.MethodGet, "/api/hadith/bukhari", nil, nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("missing key: expected 503, got %d", w.Code)
	}
}
