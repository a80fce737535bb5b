package kanban

import (
	"context"

	"github.com/sakumura/taskboard-api/internal/models"
	"github.com/sakumura/taskboard-api/internal/services"
)

// ServiceUpdater adapts TaskService to the board's StatusUpdater. Each board
// belongs to one authenticated owner; the service re-checks ownership on
// every transition.
type ServiceUpdater struct {
	tasks   *services.TaskService
	ownerID uint64
}

// NewServiceUpdater creates a ServiceUpdater for one owner.
func NewServiceUpdater(tasks *services.TaskService, ownerID uint64) *ServiceUpdater {
	return &ServiceUpdater{
		tasks:   tasks,
		ownerID: ownerID,
	}
}

// UpdateTaskStatus issues the status mutation for the board.
func (u *ServiceUpdater) UpdateTaskStatus(_ context.Context, taskID uint64, status models.TaskStatus) error {
	_, err := u.tasks.UpdateStatus(u.ownerID, taskID, status)
	return err
}
