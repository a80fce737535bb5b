package database

import (
	"fmt"

	"github.com/sakumura/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		// Project indexes for owner-scoped filtering and sorting
		{&models.Project{}, "projects", "idx_projects_user_id_status", "user_id, status"},
		{&models.Project{}, "projects", "idx_projects_created_at", "created_at"},

		// Task indexes for filtering and sorting
		{&models.Task{}, "tasks", "idx_tasks_project_id_status", "project_id, status"},
		{&models.Task{}, "tasks", "idx_tasks_priority", "priority"},
		{&models.Task{}, "tasks", "idx_tasks_due_date", "due_date"},
		{&models.Task{}, "tasks", "idx_tasks_created_at", "created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
