package services

import (
	"errors"
	"fmt"

	"github.com/sakumura/taskboard-api/internal/models"
	"github.com/sakumura/taskboard-api/internal/repository"
	"github.com/sakumura/taskboard-api/internal/validation"
	"gorm.io/gorm"
)

// ErrProjectNotFound covers both a missing project and one owned by another
// user; callers cannot tell the two apart.
var ErrProjectNotFound = errors.New("project not found")

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// List returns the owner's projects matching the query
func (s *ProjectService) List(ownerID uint64, query *validation.ProjectQuery) ([]models.Project, int64, error) {
	filter := repository.ProjectFilter{
		OwnerID:   ownerID,
		Search:    query.Search,
		Status:    query.Status,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
		Page:      query.Page,
		Limit:     query.Limit,
	}

	projects, total, err := s.projectRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, total, nil
}

// Get returns a single owned project with its tasks
func (s *ProjectService) Get(ownerID, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByIDForOwner(projectID, ownerID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	return project, nil
}

// Create persists a new project under the owner
func (s *ProjectService) Create(ownerID uint64, input *validation.CreateProjectInput) (*models.Project, error) {
	status := input.Status
	if status == "" {
		status = models.ProjectStatusActive
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		UserID:      ownerID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// Update applies a partial update to an owned project. An update carrying no
// fields performs no write; the ownership check still applies.
func (s *ProjectService) Update(ownerID, projectID uint64, input *validation.UpdateProjectInput) (*models.Project, error) {
	if input.IsEmpty() {
		project, err := s.projectRepo.FindByIDForOwner(projectID, ownerID, false)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
		return project, nil
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.ClearDescription {
		fields["description"] = nil
	} else if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}

	project, err := s.projectRepo.UpdateForOwner(projectID, ownerID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// Delete removes an owned project and all of its tasks
func (s *ProjectService) Delete(ownerID, projectID uint64) error {
	if err := s.projectRepo.Delete(projectID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
