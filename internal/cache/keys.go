package cache

import (
	"context"
	"fmt"
)

// Entity names writes are keyed by.
type Entity string

const (
	EntityBookmarks Entity = "bookmarks"
	EntityProgress  Entity = "progress"
	EntityQuestions Entity = "questions"
	EntityHistory   Entity = "history"
	EntityClients   Entity = "clients"
	EntityMeetings  Entity = "meetings"
	EntityTasks     Entity = "tasks"
)

// Per-user list cache key builders.

func BookmarksKey(userID uint) string { return fmt.Sprintf("bookmarks:%d", userID) }
func ProgressKey(userID uint) string  { return fmt.Sprintf("progress:%d", userID) }
func QuestionsKey(userID uint) string { return fmt.Sprintf("questions:%d", userID) }
func HistoryKey(userID uint) string   { return fmt.Sprintf("history:%d", userID) }
func ClientsKey(userID uint) string   { return fmt.Sprintf("clients:%d", userID) }
func MeetingsKey(userID uint) string  { return fmt.Sprintf("meetings:%d", userID) }
func TasksKey(userID uint) string     { return fmt.Sprintf("tasks:%d", userID) }
func SummaryKey(userID uint) string   { return fmt.Sprintf("crm-summary:%d", userID) }

// dependents maps each entity to every key builder a write to that
// entity must invalidate. Cross-entity edges exist where one record
// appears in another list: client writes touch the CRM summary and the
// meeting/task lists that embed client names, and meeting/task writes
// touch the summary counts.
var dependents = map[Entity][]func(uint) string{
	EntityBookmarks: {BookmarksKey},
	EntityProgress:  {ProgressKey},
	EntityQuestions: {QuestionsKey},
	EntityHistory:   {HistoryKey},
	EntityClients:   {ClientsKey, MeetingsKey, TasksKey, SummaryKey},
	EntityMeetings:  {MeetingsKey, SummaryKey},
	EntityTasks:     {TasksKey, SummaryKey},
}

// KeysFor returns the cache keys a write to the entity invalidates for
// one user.
func KeysFor(entity Entity, userID uint) []string {
	builders := dependents[entity]
	keys := make([]string, 0, len(builders))
	for _, b := range builders {
		keys = append(keys, b(userID))
	}
	return keys
}

// Invalidate drops every key affected by a write to the entity.
func (c *Cache) Invalidate(ctx context.Context, entity Entity, userID uint) error {
	return c.Delete(ctx, KeysFor(entity, userID)...)
}
