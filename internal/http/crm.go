package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hkhalifa/deen-companion/internal/cache"
	"github.com/hkhalifa/deen-companion/internal/database/crm"
	"github.com/hkhalifa/deen-companion/internal/entities"
)

// CRMController manages clients, meetings, tasks and the summary report.
// All records are scoped to the signed-in user; foreign ids are answered
// with 404 rather than 403.
type CRMController struct {
	repo  *crm.Repository
	cache *cache.Cache
}

func NewCRMController(repo *crm.Repository, c *cache.Cache) *CRMController {
	return &CRMController{repo: repo, cache: c}
}

// --- clients ---

func (cc *CRMController) ListClients(c *gin.Context) {
	userID := GetUserID(c)
	key := cache.ClientsKey(userID)

	var cached []entities.Client
	if found, _ := cc.cache.Get(c.Request.Context(), key, &cached); found {
		c.JSON(http.StatusOK, gin.H{"clients": cached})
		return
	}

	clients, err := cc.repo.ListClients(userID)
	if err != nil {
		respondInternalError(c, err, "list clients")
		return
	}
	_ = cc.cache.Set(c.Request.Context(), key, clients)
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

type clientRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

func (cc *CRMController) CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "first_name, last_name and a valid email are required")
		return
	}

	status := entities.ClientStatus(req.Status)
	if req.Status == "" {
		status = entities.ClientStatusLead
	} else if !entities.ValidClientStatus(status) {
		respondBadRequest(c, "status must be lead, active or past")
		return
	}

	userID := GetUserID(c)
	client, err := cc.repo.CreateClient(&entities.Client{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Status:    status,
		Notes:     req.Notes,
	})
	if err != nil {
		respondInternalError(c, err, "create client")
		return
	}

	_ = cc.cache.Invalidate(c.Request.Context(), cache.EntityClients, userID)
	respondCreated(c, client)
}

func (cc *CRMController) GetClient(c *gin.Context) {
	client, ok := cc.ownedClient(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, client)
}

type clientUpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
}

func (cc *CRMController) UpdateClient(c *gin.Context) {
	client, ok := cc.ownedClient(c)
	if !ok {
		return
	}

	var req clientUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid client payload")
		return
	}

	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Status != nil {
		if !entities.ValidClientStatus(entities.ClientStatus(*req.Status)) {
			respondBadRequest(c, "status must be lead, active or past")
			return
		}
		updates["status"] = *req.Status
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		respondBadRequest(c, "no fields to update")
		return
	}

	updated, err := cc.repo.UpdateClient(client.ID, updates)
	if err != nil {
		respondInternalError(c, err, "update client")
		return
	}

	_ = cc.cache.Invalidate(c.Request.Context(), cache.EntityClients, GetUserID(c))
	c.JSON(http.StatusOK, updated)
}

// DeleteClient removes the client record. Its meetings and tasks are kept.
func (cc *CRMController) DeleteClient(c *gin.Context) {
	client, ok := cc.ownedClient(c)
	if !ok {
		return
	}

	if err := cc.repo.DeleteClient(client.ID); err != nil {
		respondInternalError(c, err, "delete client")
		return
	}

	_ = cc.cache.Invalidate(c.Request.Context(), cache.EntityClients, GetUserID(c))
	respondSuccess(c, "client deleted")
}

func (cc *CRMController) ListClientMeetings(c *gin.Context) {
	client, ok := cc.ownedClient(c)
	if !ok {
		return
	}

	meetings, err := cc.repo.ListMeetingsByClient(client.ID)
	if err != nil {
		respondInternalError(c, err, "list client meetings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"meetings": meetings})
}

func (cc *CRMController) ownedClient(c *gin.Context) (*entities.Client, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}
	client, err := cc.repo.GetClient(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "client")
			return nil, false
		}
		respondInternalError(c, err, "get client")
		return nil, false
	}
	if client.UserID != GetUserID(c) {
		respondNotFound(c, "client")
		return nil, false
	}
	return client, true
}

// --- meetings ---

func (cc *CRMController) ListMeetings(c *gin.Context) {
	userID := GetUserID(c)
	key := cache.MeetingsKey(userID)

	var cached []entities.Meeting
	if found, _ := cc.cache.Get(c.Request.Context(), key, &cached); found {
		c.JSON(http.StatusOK, gin.H{"meetings": cached})
		return
	}

	meetings, err := cc.repo.ListMeetings(userID)
	if err != nil {
		respondInternalError(c, err, "list meetings")
		return
	}
	_ = cc.cache.Set(c.Request.Context(), key, meetings)
	c.JSON(http.StatusOK, gin.H{"meetings": meetings})
}

type meetingRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

func (cc *CRMController) CreateMeeting(c *gin.Context) {
	var req meetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "client_id, title, date and time are required")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondBadRequest(c, "date must be formatted as YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		respondBadRequest(c, "time must be formatted as HH:MM")
		return
	}

	userID := GetUserID(c)
	client, err := cc.repo.GetClient(req.ClientID)
	if err != nil || client.UserID != userID {
		respondNotFound(c, "client")
		return
	}

	meeting, err := cc.repo.CreateMeeting(&entities.Meeting{
		UserID:   userID,
		ClientID: req.ClientID,
		Title:    req.Title,
		Date:     date,
		Time:     req.Time,
		Location: req.Location,
		Notes:    req.Notes,
	})
	if err != nil {
		respondInternalError(c, err, "create meeting")
		return
	}

	_ = cc.cache.Invalidate(c.Request.Context(), cache.EntityMeetings, userID)
	respondCreated(c, meeting)
}

type meetingUpdateRequest struct {
	Title    *string `json:"title"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
}

func (cc *CRMController) UpdateMeeting(c *gin.Context) {
	meeting, ok := cc.ownedMeeting(c)
	if !ok {
		return
	}

	var req meetingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid meeting payload")
		return
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			respondBadRequest(c, "date must be formatted as YYYY-MM-DD")
			return
		}
		updates["date"] = date
	}
	if req.Time != nil {
		if _, err := time.Parse("15:04", *req.Time); err != nil {
			respondBadRequest(c, "time must be formatted as HH:MM")
			return
		}
		updates["time"] = *req.Time
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		respondBadRequest(c, "no fields to update")
		return
	}

	updated, err := cc.repo.UpdateMeeting(meeting.ID, updates)
	if err != nil {
		respondInternalError(c, err, "update meeting")
		return
	}

	_ = cc.cache.Invalidate(c.Request.Context(), cache.EntityMeetings, GetUserID(c))
	c.JSON(http.StatusOK, updated)
}

func (cc *CRMController) DeleteMeeting(c *gin.Context) {
	meeting, ok := cc.ownedMeeting(c)
	if !ok {
		return
	}

	if err := cc.repo.DeleteMeeting(meeting.ID); err != nil {
		respondInternalError(c, err, "delete meeting")
		return
	}

	_ = cc.cache.Invalidate(c.Request.Context(), cache.EntityMeetings, GetUserID(c))
	respondSuccess(c, "meeting deleted")
}

func (cc *CRMController) ownedMeeting(c *gin.Context) (*entities.Meeting, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}
	meeting, err := cc.repo.GetMeeting(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "meeting")
			return nil, false
		}
		respondInternalError(c, err, "get meeting")
		return nil, false
	}
	if meeting.UserID != GetUserID(c) {
		respondNotFound(c, "meeting")
		return nil, false
	}
	return meeting, true
}

// --- tasks ---

func (cc *CRMController) ListTasks(c *gin.Context) {
	userID := GetUserID(c)
	key := cache.TasksKey(userID)

	var cached []entities.Task
	if found, _ := cc.cache.Get(c.Request.Context(), key, &cached); found {
		c.JSON(http.StatusOK, gin.H{"tasks": cached})
		return
	}

	list, err := cc.repo.ListTasks(userID)
	if err != nil {
		respondInternalError(c, err, "list tasks")
		return
	}
	_ = cc.cache.Set(c.Request.Context(), key, list)
	c.JSON(http.StatusOK, gin.H{"tasks": list})
}

type taskRequest struct {
	ClientID    *uint  `json:"client_id"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
}

func (cc *CRMController) CreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	priority := entities.TaskPriority(req.Priority)
	if req.Priority == "" {
		priority = entities.TaskPriorityMedium
	} else if !entities.ValidTaskPriority(priority) {
		respondBadRequest(c, "priority must be low, medium or high")
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			respondBadRequest(c, "due_date must be formatted as YYYY-MM-DD")
			return
		}
		dueDate = &parsed
	}

	userID := GetUserID(c)
	if req.ClientID != nil {
		client, err := cc.repo.GetClient(*req.ClientID)
		if err != nil || client.UserID != userID {
			respondNotFound(c, "client")
			return
		}
	}

	task, err := cc.repo.CreateTask(&entities.Task{
		UserID:      userID,
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    priority,
	})
	if err != nil {
		respondInternalError(c, err, "create task")
		return
	}

	_ = cc.cache.Invalidate(c.Request.Context(), cache.EntityTasks, userID)
	respondCreated(c, task)
}

type taskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}

func (cc *CRMController) UpdateTask(c *gin.Context) {
	task, ok := cc.ownedTask(c)
	if !ok {
		return
	}

	var req taskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid task payload")
		return
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			updates["due_date"] = nil
		} else {
			parsed, err := time.Parse("2006-01-02", *req.DueDate)
			if err != nil {
				respondBadRequest(c, "due_date must be formatted as YYYY-MM-DD")
				return
			}
			updates["due_date"] = parsed
		}
	}
	if req.Priority != nil {
		if !entities.ValidTaskPriority(entities.TaskPriority(*req.Priority)) {
			respondBadRequest(c, "priority must be low, medium or high")
			return
		}
		updates["priority"] = *req.Priority
	}
	if req.Completed != nil {
		updates["completed"] = *req.Completed
	}
	if len(updates) == 0 {
		respondBadRequest(c, "no fields to update")
		return
	}

	updated, err := cc.repo.UpdateTask(task.ID, updates)
	if err != nil {
		respondInternalError(c, err, "update task")
		return
	}

	_ = cc.cache.Invalidate(c.Request.Context(), cache.EntityTasks, GetUserID(c))
	c.JSON(http.StatusOK, updated)
}

func (cc *CRMController) CompleteTask(c *gin.Context) {
	task, ok := cc.ownedTask(c)
	if !ok {
		return
	}

	updated, err := cc.repo.SetTaskCompleted(task.ID, true)
	if err != nil {
		respondInternalError(c, err, "complete task")
		return
	}

	_ = cc.cache.Invalidate(c.Request.Context(), cache.EntityTasks, GetUserID(c))
	c.JSON(http.StatusOK, updated)
}

func (cc *CRMController) DeleteTask(c *gin.Context) {
	task, ok := cc.ownedTask(c)
	if !ok {
		return
	}

	if err := cc.repo.DeleteTask(task.ID); err != nil {
		respondInternalError(c, err, "delete task")
		return
	}

	_ = cc.cache.Invalidate(c.Request.Context(), cache.EntityTasks, GetUserID(c))
	respondSuccess(c, "task deleted")
}

func (cc *CRMController) ownedTask(c *gin.Context) (*entities.Task, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}
	task, err := cc.repo.GetTask(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "task")
			return nil, false
		}
		respondInternalError(c, err, "get task")
		return nil, false
	}
	if task.UserID != GetUserID(c) {
		respondNotFound(c, "task")
		return nil, false
	}
	return task, true
}

// --- reports ---

func (cc *CRMController) GetSummary(c *gin.Context) {
	userID := GetUserID(c)
	key := cache.SummaryKey(userID)

	var cached crm.Summary
	if found, _ := cc.cache.Get(c.Request.Context(), key, &cached); found {
		c.JSON(http.StatusOK, &cached)
		return
	}

	summary, err := cc.repo.GetSummary(userID, time.Now().UTC())
	if err != nil {
		respondInternalError(c, err, "build summary")
		return
	}
	_ = cc.cache.Set(c.Request.Context(), key, summary)
	c.JSON(http.StatusOK, summary)
}
