// Package crm provides database operations for clients, meetings and
// tasks, plus the aggregation behind the reports endpoint.
package crm

import (
	"time"

	"gorm.io/gorm"

	"github.com/hkhalifa/deen-companion/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// --- Clients ---

func (r *Repository) CreateClient(c *entities.Client) (*entities.Client, error) {
	if err := r.db.Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Repository) GetClient(id uint) (*entities.Client, error) {
	var c entities.Client
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListClients(userID uint) ([]entities.Client, error) {
	var cs []entities.Client
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&cs).Error
	return cs, err
}

// UpdateClient applies a partial update via a column map so untouched
// fields keep their persisted values.
func (r *Repository) UpdateClient(id uint, updates map[string]any) (*entities.Client, error) {
	result := r.db.Model(&entities.Client{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetClient(id)
}

// DeleteClient removes a client. Meetings referencing it are untouched.
func (r *Repository) DeleteClient(id uint) error {
	result := r.db.Delete(&entities.Client{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --- Meetings ---

func (r *Repository) CreateMeeting(m *entities.Meeting) (*entities.Meeting, error) {
	if err := r.db.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Repository) GetMeeting(id uint) (*entities.Meeting, error) {
	var m entities.Meeting
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) ListMeetings(userID uint) ([]entities.Meeting, error) {
	var ms []entities.Meeting
	err := r.db.Where("user_id = ?", userID).Order("date ASC").Find(&ms).Error
	return ms, err
}

func (r *Repository) ListMeetingsByClient(clientID uint) ([]entities.Meeting, error) {
	var ms []entities.Meeting
	err := r.db.Where("client_id = ?", clientID).Order("date ASC").Find(&ms).Error
	return ms, err
}

func (r *Repository) UpdateMeeting(id uint, updates map[string]any) (*entities.Meeting, error) {
	result := r.db.Model(&entities.Meeting{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetMeeting(id)
}

func (r *Repository) DeleteMeeting(id uint) error {
	result := r.db.Delete(&entities.Meeting{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --- Tasks ---

func (r *Repository) CreateTask(t *entities.Task) (*entities.Task, error) {
	if err := r.db.Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Repository) GetTask(id uint) (*entities.Task, error) {
	var t entities.Task
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) ListTasks(userID uint) ([]entities.Task, error) {
	var ts []entities.Task
	err := r.db.Where("user_id = ?", userID).
		Order("completed ASC, due_date ASC").Find(&ts).Error
	return ts, err
}

func (r *Repository) UpdateTask(id uint, updates map[string]any) (*entities.Task, error) {
	result := r.db.Model(&entities.Task{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetTask(id)
}

// SetTaskCompleted flips the completion flag.
func (r *Repository) SetTaskCompleted(id uint, completed bool) (*entities.Task, error) {
	return r.UpdateTask(id, map[string]any{"completed": completed})
}

func (r *Repository) DeleteTask(id uint) error {
	result := r.db.Delete(&entities.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --- Reports ---

// Summary aggregates a user's CRM data for the reports view.
type Summary struct {
	ClientsByStatus  map[entities.ClientStatus]int64 `json:"clients_by_status"`
	TotalClients     int64                           `json:"total_clients"`
	UpcomingMeetings int64                           `json:"upcoming_meetings"`
	OpenTasks        int64                           `json:"open_tasks"`
	OverdueTasks     int64                           `json:"overdue_tasks"`
}

// GetSummary computes the report counts as of now.
func (r *Repository) GetSummary(userID uint, now time.Time) (*Summary, error) {
	summary := &Summary{
		ClientsByStatus: make(map[entities.ClientStatus]int64),
	}

	type statusCount struct {
		Status entities.ClientStatus
		Count  int64
	}
	var counts []statusCount
	err := r.db.Model(&entities.Client{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, sc := range counts {
		summary.ClientsByStatus[sc.Status] = sc.Count
		summary.TotalClients += sc.Count
	}

	err = r.db.Model(&entities.Meeting{}).
		Where("user_id = ? AND date >= ?", userID, now).
		Count(&summary.UpcomingMeetings).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&entities.Task{}).
		Where("user_id = ? AND completed = ?", userID, false).
		Count(&summary.OpenTasks).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&entities.Task{}).
		Where("user_id = ? AND completed = ? AND due_date IS NOT NULL AND due_date < ?", userID, false, now).
		Count(&summary.OverdueTasks).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}
