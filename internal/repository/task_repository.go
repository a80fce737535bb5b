package repository

import (
	"strings"

	"github.com/sakumura/taskboard-api/internal/database"
	"github.com/sakumura/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// priorityOrder maps the priority enum onto a sortable rank (LOW lowest).
const priorityOrder = "CASE tasks.priority WHEN 'LOW' THEN 0 WHEN 'MEDIUM' THEN 1 ELSE 2 END"

var taskSortColumns = map[string]string{
	"createdAt": "tasks.created_at",
	"updatedAt": "tasks.updated_at",
	"title":     "tasks.title",
	"dueDate":   "tasks.due_date",
	"priority":  priorityOrder,
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByIDForOwner finds a task whose project belongs to the owner. A task in
// someone else's project surfaces as gorm.ErrRecordNotFound.
func (r *GormTaskRepository) FindByIDForOwner(id, ownerID uint64) (*models.Task, error) {
	var task models.Task

	err := r.db.
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.id = ? AND projects.user_id = ?", id, ownerID).
		Preload("Project").
		First(&task).Error
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks in the owner's projects with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.user_id = ?", filter.OwnerID)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(tasks.title) LIKE ? OR LOWER(tasks.description) LIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("tasks.status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("tasks.priority = ?", filter.Priority)
	}
	if filter.ProjectID != 0 {
		query = query.Where("tasks.project_id = ?", filter.ProjectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order(orderClause(taskSortColumns, filter.SortBy, filter.SortOrder, "tasks.created_at")).
		Scopes(database.Paginate(filter.Page, filter.Limit)).
		Preload("Project").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// UpdateForOwner applies a partial update. The write's own predicate requires
// the task to sit in one of the owner's projects, so the ownership check and
// the write form a single atomic unit. An empty field map performs no write.
func (r *GormTaskRepository) UpdateForOwner(id, ownerID uint64, fields map[string]interface{}) (*models.Task, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.
			Joins("JOIN projects ON projects.id = tasks.project_id").
			Where("tasks.id = ? AND projects.user_id = ?", id, ownerID).
			First(&task).Error; err != nil {
			return err
		}

		if len(fields) == 0 {
			return nil
		}

		owned := tx.Model(&models.Project{}).Select("id").Where("user_id = ?", ownerID)
		res := tx.Model(&models.Task{}).
			Where("id = ? AND project_id IN (?)", id, owned).
			Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.FindByIDForOwner(id, ownerID)
}

// Delete removes a task; the delete's predicate carries the transitive
// ownership check.
func (r *GormTaskRepository) Delete(id, ownerID uint64) error {
	owned := r.db.Model(&models.Project{}).Select("id").Where("user_id = ?", ownerID)

	res := r.db.Where("id = ? AND project_id IN (?)", id, owned).Delete(&models.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
