// Package quran fetches Quran text, translations and recitation audio
// from the AlQuran.cloud API.
package quran

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	// ArabicEdition is the canonical Uthmani script edition.
	ArabicEdition = "quran-uthmani"
	// DefaultReciter is used when the user has no reciter preference.
	DefaultReciter = "ar.alafasy"

	audioCDN = "https://cdn.islamic.network/quran/audio/128"
)

// translationEditions maps UI language codes to AlQuran.cloud edition
// identifiers.
var translationEditions = map[string]string{
	"en": "en.sahih",
	"ur": "ur.maududi",
	"hi": "hi.hindi",
}

// EditionForLanguage resolves a language code to a translation edition,
// falling back to English.
func EditionForLanguage(lang string) string {
	if edition, ok := translationEditions[lang]; ok {
		return edition
	}
	return translationEditions["en"]
}

// Surah describes one chapter in the surah index.
type Surah struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"`
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	RevelationType         string `json:"revelationType"`
	NumberOfAyahs          int    `json:"numberOfAyahs"`
}

// Ayah is a single verse within a surah response.
type Ayah struct {
	Number        int    `json:"number"`
	Text          string `json:"text"`
	NumberInSurah int    `json:"numberInSurah"`
	Juz           int    `json:"juz"`
	Page          int    `json:"page"`
	Audio         string `json:"audio,omitempty"`
}

// SurahDetail is a surah with its full list of ayahs in one edition.
type SurahDetail struct {
	Surah
	Edition string `json:"edition"`
	Ayahs   []Ayah `json:"ayahs"`
}

// AyahDetail carries one verse in Arabic alongside a translation and a
// recitation audio URL.
type AyahDetail struct {
	Surah         int    `json:"surah"`
	NumberInSurah int    `json:"numberInSurah"`
	GlobalNumber  int    `json:"globalNumber"`
	Arabic        string `json:"arabic"`
	Translation   string `json:"translation"`
	Edition       string `json:"edition"`
	AudioURL      string `json:"audioUrl"`
}

// SearchMatch is one hit from a full-text search.
type SearchMatch struct {
	Number        int    `json:"number"`
	Text          string `json:"text"`
	NumberInSurah int    `json:"numberInSurah"`
	Surah         Surah  `json:"surah"`
}

// SearchResult is the outcome of a search across the whole text.
type SearchResult struct {
	Count   int           `json:"count"`
	Matches []SearchMatch `json:"matches"`
}

// Client talks to the AlQuran.cloud REST API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewClient creates a client for the given base URL. An empty baseURL
// selects the public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.alquran.cloud/v1"
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: newRateLimiter(200 * time.Millisecond),
	}
}

// envelope is the common {code, status, data} wrapper on every response.
type envelope struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	c.rateLimiter.wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env.Code != http.StatusOK {
		return fmt.Errorf("api error: %s", env.Status)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// ErrNotFound indicates the requested surah or ayah does not exist.
var ErrNotFound = fmt.Errorf("quran: reference not found")

// ListSurahs returns the index of all 114 surahs.
func (c *Client) ListSurahs(ctx context.Context) ([]Surah, error) {
	var surahs []Surah
	if err := c.get(ctx, "/surah", &surahs); err != nil {
		return nil, err
	}
	return surahs, nil
}

type surahPayload struct {
	Surah
	Ayahs []Ayah `json:"ayahs"`
}

// GetSurah fetches one surah in the given edition. An empty edition
// selects the Arabic Uthmani text.
func (c *Client) GetSurah(ctx context.Context, number int, edition string) (*SurahDetail, error) {
	if number < 1 || number > 114 {
		return nil, ErrNotFound
	}
	if edition == "" {
		edition = ArabicEdition
	}

	var payload surahPayload
	path := fmt.Sprintf("/surah/%d/%s", number, url.PathEscape(edition))
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}

	return &SurahDetail{
		Surah:   payload.Surah,
		Edition: edition,
		Ayahs:   payload.Ayahs,
	}, nil
}

type ayahPayload struct {
	Number        int    `json:"number"`
	Text          string `json:"text"`
	NumberInSurah int    `json:"numberInSurah"`
	Audio         string `json:"audio"`
	Surah         Surah  `json:"surah"`
}

// GetAyah fetches a single verse with its Arabic text, the requested
// translation and a recitation audio URL.
func (c *Client) GetAyah(ctx context.Context, surah, ayah int, edition, reciter string) (*AyahDetail, error) {
	if surah < 1 || surah > 114 || ayah < 1 {
		return nil, ErrNotFound
	}
	if edition == "" {
		edition = translationEditions["en"]
	}
	if reciter == "" {
		reciter = DefaultReciter
	}

	ref := fmt.Sprintf("%d:%d", surah, ayah)

	var arabic ayahPayload
	if err := c.get(ctx, fmt.Sprintf("/ayah/%s/%s", ref, ArabicEdition), &arabic); err != nil {
		return nil, err
	}

	var translated ayahPayload
	if err := c.get(ctx, fmt.Sprintf("/ayah/%s/%s", ref, url.PathEscape(edition)), &translated); err != nil {
		return nil, err
	}

	return &AyahDetail{
		Surah:         surah,
		NumberInSurah: arabic.NumberInSurah,
		GlobalNumber:  arabic.Number,
		Arabic:        arabic.Text,
		Translation:   translated.Text,
		Edition:       edition,
		AudioURL:      AudioURL(reciter, arabic.Number),
	}, nil
}

// AudioURL builds the CDN URL for one verse's recitation. globalNumber
// is the verse's absolute position in the whole text (1 to 6236).
func AudioURL(reciter string, globalNumber int) string {
	return fmt.Sprintf("%s/%s/%d.mp3", audioCDN, reciter, globalNumber)
}

// Search runs a full-text search in the given translation edition.
func (c *Client) Search(ctx context.Context, query, edition string) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("quran: empty search query")
	}
	if edition == "" {
		edition = translationEditions["en"]
	}

	var result SearchResult
	path := fmt.Sprintf("/search/%s/all/%s", url.PathEscape(query), url.PathEscape(edition))
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
