package validation

import (
	"github.com/sakumura/taskboard-api/internal/constants"
	"github.com/sakumura/taskboard-api/internal/models"
)

// CreateProjectInput is the validated payload for creating a project.
type CreateProjectInput struct {
	Name        string
	Description *string
	Status      models.ProjectStatus
}

// UpdateProjectInput is the validated partial payload for updating a project.
// Nil pointers mean the field was not provided; ClearDescription records an
// explicit null.
type UpdateProjectInput struct {
	Name             *string
	Description      *string
	ClearDescription bool
	Status           *models.ProjectStatus
}

// IsEmpty reports whether the partial update carries no changes at all.
func (in *UpdateProjectInput) IsEmpty() bool {
	return in.Name == nil && in.Description == nil && !in.ClearDescription && in.Status == nil
}

// ValidateCreateProject checks a project creation payload.
func ValidateCreateProject(raw map[string]interface{}) (*CreateProjectInput, Errors) {
	errs := Errors{}
	input := &CreateProjectInput{}

	name, present, null, ok := stringField(raw, "name")
	if !present || null || !ok {
		errs.add("name", "Project name is required")
	} else if checkLength(errs, "name", name, 1, constants.MaxNameLength) {
		input.Name = name
	}

	if desc, present, null, ok := stringField(raw, "description"); present && !null {
		if !ok {
			errs.add("description", "Description must be a string")
		} else if checkLength(errs, "description", desc, 0, constants.MaxDescriptionLength) {
			input.Description = &desc
		}
	}

	if status, present, null, ok := stringField(raw, "status"); present && !null {
		parsed := models.ProjectStatus(status)
		if !ok || !parsed.IsValid() {
			errs.add("status", "Invalid project status")
		} else {
			input.Status = parsed
		}
	}

	if errs.Any() {
		return nil, errs
	}
	return input, nil
}

// ValidateUpdateProject checks a partial project update payload.
func ValidateUpdateProject(raw map[string]interface{}) (*UpdateProjectInput, Errors) {
	errs := Errors{}
	input := &UpdateProjectInput{}

	if name, present, null, ok := stringField(raw, "name"); present {
		if null || !ok {
			errs.add("name", "Project name is required")
		} else if checkLength(errs, "name", name, 1, constants.MaxNameLength) {
			input.Name = &name
		}
	}

	if desc, present, null, ok := stringField(raw, "description"); present {
		switch {
		case null:
			input.ClearDescription = true
		case !ok:
			errs.add("description", "Description must be a string")
		case checkLength(errs, "description", desc, 0, constants.MaxDescriptionLength):
			input.Description = &desc
		}
	}

	if status, present, null, ok := stringField(raw, "status"); present {
		parsed := models.ProjectStatus(status)
		if null || !ok || !parsed.IsValid() {
			errs.add("status", "Invalid project status")
		} else {
			input.Status = &parsed
		}
	}

	if errs.Any() {
		return nil, errs
	}
	return input, nil
}
