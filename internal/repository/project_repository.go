package repository

import (
	"strings"

	"github.com/sakumura/taskboard-api/internal/database"
	"github.com/sakumura/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// taskCountSelect attaches the live task count to each project row.
const taskCountSelect = "projects.*, (SELECT COUNT(*) FROM tasks WHERE tasks.project_id = projects.id) AS task_count"

var projectSortColumns = map[string]string{
	"createdAt": "projects.created_at",
	"updatedAt": "projects.updated_at",
	"name":      "projects.name",
}

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByIDForOwner finds a project by ID under the given owner. An ownership
// miss surfaces as gorm.ErrRecordNotFound, same as a missing row.
func (r *GormProjectRepository) FindByIDForOwner(id, ownerID uint64, withTasks bool) (*models.Project, error) {
	var project models.Project

	query := r.db.Select(taskCountSelect).
		Where("projects.id = ? AND projects.user_id = ?", id, ownerID)

	if withTasks {
		query = query.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.created_at DESC")
		})
	}

	if err := query.First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// List retrieves owner-scoped projects with filtering and pagination
func (r *GormProjectRepository) List(filter ProjectFilter) ([]models.Project, int64, error) {
	var projects []models.Project

	query := r.db.Model(&models.Project{}).Where("projects.user_id = ?", filter.OwnerID)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(projects.name) LIKE ? OR LOWER(projects.description) LIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("projects.status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Select(taskCountSelect).
		Order(orderClause(projectSortColumns, filter.SortBy, filter.SortOrder, "projects.created_at")).
		Scopes(database.Paginate(filter.Page, filter.Limit)).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// UpdateForOwner applies a partial update. The write carries the same owner
// predicate as the existence check, and both run in one transaction so a
// non-owner's update can never partially apply. An empty field map performs
// no write at all.
func (r *GormProjectRepository) UpdateForOwner(id, ownerID uint64, fields map[string]interface{}) (*models.Project, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&project).Error; err != nil {
			return err
		}

		if len(fields) == 0 {
			return nil
		}

		return tx.Model(&models.Project{}).
			Where("id = ? AND user_id = ?", id, ownerID).
			Updates(fields).Error
	})
	if err != nil {
		return nil, err
	}

	return r.FindByIDForOwner(id, ownerID, false)
}

// Delete removes a project and all of its tasks in one transaction. If the
// owner predicate matches nothing the transaction rolls back and the tasks
// survive.
func (r *GormProjectRepository) Delete(id, ownerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

// ExistsForOwner reports whether the project exists under the owner
func (r *GormProjectRepository) ExistsForOwner(id, ownerID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Project{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Count(&count).Error
	return count > 0, err
}

func orderClause(columns map[string]string, sortBy, sortOrder, fallback string) string {
	column, ok := columns[sortBy]
	if !ok {
		column = fallback
	}

	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}

	return column + " " + direction
}
