package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hkhalifa/deen-companion/internal/assistant"
	"github.com/hkhalifa/deen-companion/internal/content/quran"
)

// AssistantController serves the tafsir, concept and scholar endpoints
// backed by the generative assistant.
type AssistantController struct {
	ai    assistant.Client
	quran *quran.Client
}

func NewAssistantController(ai assistant.Client, quranClient *quran.Client) *AssistantController {
	return &AssistantController{ai: ai, quran: quranClient}
}

type explainVerseRequest struct {
	Surah int `json:"surah" binding:"required"`
	Ayah  int `json:"ayah" binding:"required"`
}

// ExplainVerse fetches the verse text and asks the assistant for tafsir.
func (ac *AssistantController) ExplainVerse(c *gin.Context) {
	var req explainVerseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "surah and ayah are required")
		return
	}

	detail, err := ac.quran.GetAyah(c.Request.Context(), req.Surah, req.Ayah, quran.EditionForLanguage(""), "")
	if err != nil {
		if errors.Is(err, quran.ErrNotFound) {
			respondNotFound(c, "ayah")
			return
		}
		respondBadGateway(c, err, "fetch ayah")
		return
	}

	message := assistant.TafsirMessage(req.Surah, req.Ayah, detail.Arabic, detail.Translation)
	explanation, err := ac.ai.Generate(c.Request.Context(), assistant.TafsirPrompt, message)
	if err != nil {
		respondBadGateway(c, err, "generate tafsir")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"verse": gin.H{
			"surah":       req.Surah,
			"ayah":        req.Ayah,
			"arabic":      detail.Arabic,
			"translation": detail.Translation,
		},
		"explanation": explanation,
	})
}

type explainConceptRequest struct {
	Term string `json:"term" binding:"required"`
}

func (ac *AssistantController) ExplainConcept(c *gin.Context) {
	var req explainConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "term is required")
		return
	}
	term := strings.TrimSpace(req.Term)
	if term == "" {
		respondBadRequest(c, "term is required")
		return
	}

	explanation, err := ac.ai.Generate(c.Request.Context(), assistant.ConceptPrompt, assistant.ConceptMessage(term))
	if err != nil {
		respondBadGateway(c, err, "explain concept")
		return
	}
	c.JSON(http.StatusOK, gin.H{"term": term, "explanation": explanation})
}

type scholarBioRequest struct {
	Name string `json:"name" binding:"required"`
}

func (ac *AssistantController) ScholarBio(c *gin.Context) {
	var req scholarBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondBadRequest(c, "name is required")
		return
	}

	biography, err := ac.ai.Generate(c.Request.Context(), assistant.ScholarPrompt, assistant.ScholarMessage(name))
	if err != nil {
		respondBadGateway(c, err, "scholar biography")
		return
	}
	c.JSON(http.StatusOK, gin.H{"scholarName": name, "biography": biography})
}
