package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hkhalifa/deen-companion/internal/assistant"
	"github.com/hkhalifa/deen-companion/internal/cache"
	"github.com/hkhalifa/deen-companion/internal/database/questions"
	"github.com/hkhalifa/deen-companion/internal/entities"
	"github.com/hkhalifa/deen-companion/internal/tasks"
)

// QuestionController manages user questions and their answers. Answers come
// either from the assistant via Ask or from a manual PATCH.
type QuestionController struct {
	repo       *questions.Repository
	ai         assistant.Client
	taskClient *tasks.Client
	cache      *cache.Cache
}

func NewQuestionController(repo *questions.Repository, ai assistant.Client, taskClient *tasks.Client, c *cache.Cache) *QuestionController {
	return &QuestionController{repo: repo, ai: ai, taskClient: taskClient, cache: c}
}

func (qc *QuestionController) List(c *gin.Context) {
	userID := GetUserID(c)
	key := cache.QuestionsKey(userID)

	var cached []entities.Question
	if found, _ := qc.cache.Get(c.Request.Context(), key, &cached); found {
		c.JSON(http.StatusOK, gin.H{"questions": cached})
		return
	}

	list, err := qc.repo.ListByUser(userID)
	if err != nil {
		respondInternalError(c, err, "list questions")
		return
	}
	_ = qc.cache.Set(c.Request.Context(), key, list)
	c.JSON(http.StatusOK, gin.H{"questions": list})
}

func (qc *QuestionController) ListAnswered(c *gin.Context) {
	list, err := qc.repo.ListAnsweredByUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list answered questions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": list})
}

func (qc *QuestionController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	question, err := qc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "question")
			return
		}
		respondInternalError(c, err, "get question")
		return
	}
	if question.UserID != GetUserID(c) {
		respondNotFound(c, "question")
		return
	}
	c.JSON(http.StatusOK, question)
}

type createQuestionRequest struct {
	Question string `json:"question" binding:"required"`
}

// Create stores a question without invoking the assistant.
func (qc *QuestionController) Create(c *gin.Context) {
	var req createQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "question is required")
		return
	}

	userID := GetUserID(c)
	question, err := qc.repo.Create(&entities.Question{
		UserID:   userID,
		Question: strings.TrimSpace(req.Question),
		Status:   entities.QuestionStatusPending,
	})
	if err != nil {
		respondInternalError(c, err, "create question")
		return
	}

	_ = qc.cache.Invalidate(c.Request.Context(), cache.EntityQuestions, userID)
	respondCreated(c, question)
}

type answerQuestionRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// Answer records a manual answer. Answered questions cannot be re-answered.
func (qc *QuestionController) Answer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req answerQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "answer is required")
		return
	}

	userID := GetUserID(c)
	existing, err := qc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "question")
			return
		}
		respondInternalError(c, err, "get question")
		return
	}
	if existing.UserID != userID {
		respondNotFound(c, "question")
		return
	}

	updated, err := qc.repo.MarkAnswered(id, req.Answer)
	if err != nil {
		if errors.Is(err, questions.ErrAlreadyAnswered) {
			respondError(c, http.StatusConflict, "question is already answered")
			return
		}
		respondInternalError(c, err, "answer question")
		return
	}

	_ = qc.cache.Invalidate(c.Request.Context(), cache.EntityQuestions, userID)
	c.JSON(http.StatusOK, updated)
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask stores the question and answers it with the assistant in one call.
// When the assistant is unavailable the question stays pending, a retry
// task is enqueued, and the pending record is returned with 202.
func (qc *QuestionController) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "question is required")
		return
	}
	text := strings.TrimSpace(req.Question)
	if text == "" {
		respondBadRequest(c, "question is required")
		return
	}

	userID := GetUserID(c)
	question, err := qc.repo.Create(&entities.Question{
		UserID:   userID,
		Question: text,
		Status:   entities.QuestionStatusPending,
	})
	if err != nil {
		respondInternalError(c, err, "create question")
		return
	}
	_ = qc.cache.Invalidate(c.Request.Context(), cache.EntityQuestions, userID)

	answer, aiErr := qc.ai.Generate(c.Request.Context(), assistant.QuestionPrompt, text)
	if aiErr != nil {
		slog.Error("assistant unavailable, queuing retry", "question_id", question.ID, "error", aiErr)
		if qc.taskClient != nil {
			if _, err := qc.taskClient.Add(tasks.AnswerQuestionTask{QuestionID: question.ID}).Save(); err != nil {
				slog.Error("enqueue answer task", "question_id", question.ID, "error", err)
			}
		}
		respondAccepted(c, "answer is being prepared", question)
		return
	}

	updated, err := qc.repo.MarkAnswered(question.ID, answer)
	if err != nil {
		respondInternalError(c, err, "store answer")
		return
	}
	_ = qc.cache.Invalidate(c.Request.Context(), cache.EntityQuestions, userID)
	c.JSON(http.StatusOK, updated)
}
