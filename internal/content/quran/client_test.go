package quran

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL)
	client.rateLimiter.interval = 0
	return client, server
}

func TestEditionForLanguage(t *testing.T) {
	tests := []struct {
		lang     string
		expected string
	}{
		{"en", "en.sahih"},
		{"ur", "ur.maududi"},
		{"hi", "hi.hindi"},
		{"fr", "en.sahih"}, // unknown languages fall back to English
		{"", "en.sahih"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			if got := EditionForLanguage(tt.lang); got != tt.expected {
				t.Errorf("EditionForLanguage(%q) = %q, expected %q", tt.lang, got, tt.expected)
			}
		})
	}
}

func TestListSurahs(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/surah" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"code":   200,
			"status": "OK",
			"data": []map[string]any{
				{"number": 1, "name": "سورة الفاتحة", "englishName": "Al-Faatiha", "numberOfAyahs": 7, "revelationType": "Meccan"},
				{"number": 2, "name": "سورة البقرة", "englishName": "Al-Baqara", "numberOfAyahs": 286, "revelationType": "Medinan"},
			},
		})
	}))
	defer server.Close()

	surahs, err := client.ListSurahs(context.Background())
	if err != nil {
		t.Fatalf("ListSurahs() error = %v", err)
	}
	if len(surahs) != 2 {
		t.Fatalf("len(surahs) = %d, expected 2", len(surahs))
	}
	if surahs[0].EnglishName != "Al-Faatiha" {
		t.Errorf("surahs[0].EnglishName = %q", surahs[0].EnglishName)
	}
	if surahs[1].NumberOfAyahs != 286 {
		t.Errorf("surahs[1].NumberOfAyahs = %d", surahs[1].NumberOfAyahs)
	}
}

func TestGetSurah(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/surah/1/quran-uthmani" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"code":   200,
			"status": "OK",
			"data": map[string]any{
				"number":      1,
				"englishName": "Al-Faatiha",
				"ayahs": []map[string]any{
					{"number": 1, "text": "بِسْمِ اللَّهِ", "numberInSurah": 1, "juz": 1},
				},
			},
		})
	}))
	defer server.Close()

	detail, err := client.GetSurah(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("GetSurah() error = %v", err)
	}
	if detail.Edition != ArabicEdition {
		t.Errorf("Edition = %q, expected %q", detail.Edition, ArabicEdition)
	}
	if len(detail.Ayahs) != 1 || detail.Ayahs[0].NumberInSurah != 1 {
		t.Errorf("unexpected ayahs: %+v", detail.Ayahs)
	}
}

func TestGetSurah_OutOfRange(t *testing.T) {
	client := NewClient("http://unused.invalid")
	for _, number := range []int{0, 115, -1} {
		if _, err := client.GetSurah(context.Background(), number, ""); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetSurah(%d) error = %v, expected ErrNotFound", number, err)
		}
	}
}

func TestGetAyah(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ayah/2:255/quran-uthmani":
			json.NewEncoder(w).Encode(map[string]any{
				"code": 200, "status": "OK",
				"data": map[string]any{"number": 262, "text": "اللَّهُ لَا إِلَٰهَ إِلَّا هُوَ", "numberInSurah": 255},
			})
		case "/ayah/2:255/en.sahih":
			json.NewEncoder(w).Encode(map[string]any{
				"code": 200, "status": "OK",
				"data": map[string]any{"number": 262, "text": "Allah - there is no deity except Him", "numberInSurah": 255},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	detail, err := client.GetAyah(context.Background(), 2, 255, "", "")
	if err != nil {
		t.Fatalf("GetAyah() error = %v", err)
	}
	if detail.GlobalNumber != 262 {
		t.Errorf("GlobalNumber = %d, expected 262", detail.GlobalNumber)
	}
	if detail.Translation == "" || detail.Arabic == "" {
		t.Errorf("expected both texts, got %+v", detail)
	}
	expectedAudio := "https://cdn.islamic.network/quran/audio/128/ar.alafasy/262.mp3"
	if detail.AudioURL != expectedAudio {
		t.Errorf("AudioURL = %q, expected %q", detail.AudioURL, expectedAudio)
	}
}

func TestGetAyah_NotFound(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := client.GetAyah(context.Background(), 1, 999, "", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/mercy/all/en.sahih" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"code": 200, "status": "OK",
			"data": map[string]any{
				"count": 1,
				"matches": []map[string]any{
					{"number": 2, "text": "...mercy...", "numberInSurah": 2, "surah": map[string]any{"number": 1}},
				},
			},
		})
	}))
	defer server.Close()

	result, err := client.Search(context.Background(), "mercy", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Count != 1 || len(result.Matches) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := NewClient("http://unused.invalid")
	if _, err := client.Search(context.Background(), "   ", ""); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestRateLimiterSpacing(t *testing.T) {
	rl := newRateLimiter(20 * time.Millisecond)

	start := time.Now()
	rl.wait()
	rl.wait()
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("second call returned after %v, expected at least 20ms", elapsed)
	}
}
