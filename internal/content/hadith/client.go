// Package hadith serves the hadith collection catalogue and proxies
// collection reads to HadithAPI.com.
package hadith

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMissingAPIKey is returned at call time when no HadithAPI.com
	// key is configured.
	ErrMissingAPIKey = errors.New("hadith: HADITH_API_KEY is not configured")
	// ErrUnknownCollection indicates a collection slug outside the catalogue.
	ErrUnknownCollection = errors.New("hadith: unknown collection")
)

// Collection describes one canonical hadith compilation.
type Collection struct {
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	NumberOfHadiths int    `json:"numberOfHadiths"`
}

// collections is the static catalogue of supported compilations.
var collections = []Collection{
	{Name: "Sahih al-Bukhari", Slug: "bukhari", NumberOfHadiths: 7563},
	{Name: "Sahih Muslim", Slug: "muslim", NumberOfHadiths: 5362},
	{Name: "Sunan an-Nasa'i", Slug: "nasai", NumberOfHadiths: 5761},
	{Name: "Sunan Abi Dawud", Slug: "abudawud", NumberOfHadiths: 5274},
	{Name: "Jami' at-Tirmidhi", Slug: "tirmidhi", NumberOfHadiths: 3956},
	{Name: "Sunan Ibn Majah", Slug: "ibnmajah", NumberOfHadiths: 4341},
}

// Collections returns the catalogue. The slice is a copy.
func Collections() []Collection {
	out := make([]Collection, len(collections))
	copy(out, collections)
	return out
}

// ValidCollection reports whether a slug names a known compilation.
func ValidCollection(slug string) bool {
	for _, c := range collections {
		if c.Slug == slug {
			return true
		}
	}
	return false
}

// Hadith is one narration returned by the upstream API.
type Hadith struct {
	Number  string `json:"number"`
	Arabic  string `json:"arabic"`
	English string `json:"english"`
	Urdu    string `json:"urdu,omitempty"`
	Grade   string `json:"grade,omitempty"`
	Chapter string `json:"chapter,omitempty"`
}

// Page is one page of hadiths from a collection.
type Page struct {
	Collection string   `json:"collection"`
	Page       int      `json:"page"`
	PerPage    int      `json:"perPage"`
	Total      int      `json:"total"`
	LastPage   int      `json:"lastPage"`
	Hadiths    []Hadith `json:"hadiths"`
}

// Client talks to the HadithAPI.com REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a client. An empty baseURL selects the public API.
// The key may be empty; requests will then fail with ErrMissingAPIKey.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "https://hadithapi.com/api"
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// upstream response shapes

type hadithsEnvelope struct {
	Status  int           `json:"status"`
	Message string        `json:"message"`
	Hadiths hadithsPaging `json:"hadiths"`
}

type hadithsPaging struct {
	CurrentPage int              `json:"current_page"`
	PerPage     json.Number      `json:"per_page"`
	Total       int              `json:"total"`
	LastPage    int              `json:"last_page"`
	Data        []upstreamHadith `json:"data"`
}

type upstreamHadith struct {
	HadithNumber  json.Number `json:"hadithNumber"`
	HadithArabic  string      `json:"hadithArabic"`
	HadithEnglish string      `json:"hadithEnglish"`
	HadithUrdu    string      `json:"hadithUrdu"`
	Status        string      `json:"status"`
	Chapter       struct {
		ChapterEnglish string `json:"chapterEnglish"`
	} `json:"chapter"`
}

// ListHadiths fetches one page of a collection. page starts at 1; limit
// is clamped to 1..50.
func (c *Client) ListHadiths(ctx context.Context, collection string, page, limit int) (*Page, error) {
	if !ValidCollection(collection) {
		return nil, ErrUnknownCollection
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	query := url.Values{}
	query.Set("book", collection)
	query.Set("page", strconv.Itoa(page))
	query.Set("paginate", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/hadiths?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch hadiths: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("hadith: upstream rejected API key (status %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var env hadithsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	result := &Page{
		Collection: collection,
		Page:       env.Hadiths.CurrentPage,
		Total:      env.Hadiths.Total,
		LastPage:   env.Hadiths.LastPage,
		Hadiths:    make([]Hadith, 0, len(env.Hadiths.Data)),
	}
	if perPage, err := env.Hadiths.PerPage.Int64(); err == nil {
		result.PerPage = int(perPage)
	}
	for _, h := range env.Hadiths.Data {
		result.Hadiths = append(result.Hadiths, Hadith{
			Number:  h.HadithNumber.String(),
			Arabic:  h.HadithArabic,
			English: h.HadithEnglish,
			Urdu:    h.HadithUrdu,
			Grade:   h.Status,
			Chapter: h.Chapter.ChapterEnglish,
		})
	}
	return result, nil
}
