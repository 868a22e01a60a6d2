package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// Indexes backing the listing filters and default sort.
var indexes = []index{
	{"users", "idx_users_role", "role"},
	{"users", "idx_users_created_at", "created_at"},
	{"projects", "idx_projects_status", "status"},
	{"projects", "idx_projects_created_at", "created_at"},
	{"tasks", "idx_tasks_project_id", "project_id"},
	{"tasks", "idx_tasks_status", "status"},
	{"tasks", "idx_tasks_created_at", "created_at"},
	{"project_assignees", "idx_project_assignees_user_id", "user_id"},
	{"task_assignees", "idx_task_assignees_user_id", "user_id"},
}

// Migrate creates the tables for the given row types and the listing indexes.
func Migrate(db *gorm.DB, log *zap.Logger, tables ...any) error {
	log.Info("running database migrations")
	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}
	log.Info("database migrations completed")
	return nil
}

// AddIndexes creates any missing listing index.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()
	for _, idx := range indexes {
		if !migrator.HasTable(idx.table) {
			continue
		}
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		log.Debug("created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}
	return nil
}
