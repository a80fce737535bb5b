package repository

import (
	"github.com/sakumura/taskboard-api/internal/models"
)

// ProjectFilter holds filtering options for listing projects. OwnerID is
// always required; every query it produces is owner-scoped.
type ProjectFilter struct {
	OwnerID   uint64
	Search    string
	Status    models.ProjectStatus
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// TaskFilter holds filtering options for listing tasks. Ownership is
// enforced transitively through the task's project.
type TaskFilter struct {
	OwnerID   uint64
	Search    string
	Status    models.TaskStatus
	Priority  models.TaskPriority
	ProjectID uint64
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByIDForOwner finds a project by ID under the given owner, with its
	// task count attached. A project owned by someone else is
	// indistinguishable from a missing one.
	FindByIDForOwner(id, ownerID uint64, withTasks bool) (*models.Project, error)

	// List retrieves owner-scoped projects with filtering and pagination
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// UpdateForOwner applies a partial update atomically with the ownership
	// check and returns the refreshed project
	UpdateForOwner(id, ownerID uint64, fields map[string]interface{}) (*models.Project, error)

	// Delete removes a project and cascades to its tasks, atomically with
	// the ownership check
	Delete(id, ownerID uint64) error

	// ExistsForOwner reports whether the project exists under the owner
	ExistsForOwner(id, ownerID uint64) (bool, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByIDForOwner finds a task whose project belongs to the owner
	FindByIDForOwner(id, ownerID uint64) (*models.Task, error)

	// List retrieves tasks in the owner's projects with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// UpdateForOwner applies a partial update atomically with the transitive
	// ownership check and returns the refreshed task
	UpdateForOwner(id, ownerID uint64, fields map[string]interface{}) (*models.Task, error)

	// Delete removes a task, atomically with the transitive ownership check
	Delete(id, ownerID uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by their lowercase-normalized email
	FindByEmail(email string) (*models.User, error)
}
