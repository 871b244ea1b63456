// Package database owns the GORM connection and schema migration.
//
// Per-entity repositories live in subpackages (users, bookmarks, progress,
// prayersettings, questions, searchhistory, crm). Repositories propagate
// gorm.ErrRecordNotFound to callers so the HTTP layer can distinguish a
// missing row from a backend failure.
package database
