package services

import (
	"errors"
	"fmt"

	"github.com/sakumura/taskboard-api/internal/models"
	"github.com/sakumura/taskboard-api/internal/repository"
	"github.com/sakumura/taskboard-api/internal/validation"
	"gorm.io/gorm"
)

var (
	// ErrTaskNotFound covers both a missing task and one whose project
	// belongs to another user.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTargetProjectNotFound is returned when a task is reassigned to a
	// project the caller does not own. The task is left unmodified.
	ErrTargetProjectNotFound = errors.New("target project not found")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// List returns tasks in the owner's projects matching the query. A projectId
// filter pointing at someone else's project simply matches nothing.
func (s *TaskService) List(ownerID uint64, query *validation.TaskQuery) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		OwnerID:   ownerID,
		Search:    query.Search,
		Status:    query.Status,
		Priority:  query.Priority,
		ProjectID: query.ProjectID,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
		Page:      query.Page,
		Limit:     query.Limit,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// Get returns a single task owned through its project
func (s *TaskService) Get(ownerID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDForOwner(taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// Create persists a new task after verifying the target project belongs to
// the owner.
func (s *TaskService) Create(ownerID uint64, input *validation.CreateTaskInput) (*models.Task, error) {
	owned, err := s.projectRepo.ExistsForOwner(input.ProjectID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify project ownership: %w", err)
	}
	if !owned {
		return nil, ErrProjectNotFound
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
		ProjectID:   input.ProjectID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByIDForOwner(task.ID, ownerID)
}

// Update applies a partial update to an owned task. Reassigning the task to
// another project additionally requires the caller to own the target project;
// a miss leaves the task untouched.
func (s *TaskService) Update(ownerID, taskID uint64, input *validation.UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDForOwner(taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	// Nothing to write; the fetch above already enforced ownership.
	if input.IsEmpty() {
		return task, nil
	}

	if input.ProjectID != nil && *input.ProjectID != task.ProjectID {
		owned, err := s.projectRepo.ExistsForOwner(*input.ProjectID, ownerID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify project ownership: %w", err)
		}
		if !owned {
			return nil, ErrTargetProjectNotFound
		}
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.ClearDescription {
		fields["description"] = nil
	} else if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.Priority != nil {
		fields["priority"] = *input.Priority
	}
	if input.ClearDueDate {
		fields["due_date"] = nil
	} else if input.DueDate != nil {
		fields["due_date"] = *input.DueDate
	}
	if input.ProjectID != nil {
		fields["project_id"] = *input.ProjectID
	}

	updated, err := s.taskRepo.UpdateForOwner(taskID, ownerID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

// UpdateStatus moves a task to a new status column. This is the mutation the
// board workflow issues.
func (s *TaskService) UpdateStatus(ownerID, taskID uint64, status models.TaskStatus) (*models.Task, error) {
	return s.Update(ownerID, taskID, &validation.UpdateTaskInput{Status: &status})
}

// Delete removes an owned task
func (s *TaskService) Delete(ownerID, taskID uint64) error {
	if err := s.taskRepo.Delete(taskID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
