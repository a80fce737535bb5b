package validation

import (
	"time"

	"github.com/sakumura/taskboard-api/internal/constants"
	"github.com/sakumura/taskboard-api/internal/models"
)

// CreateTaskInput is the validated payload for creating a task.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
	ProjectID   uint64
}

// UpdateTaskInput is the validated partial payload for updating a task.
// Nil pointers mean the field was not provided; the Clear flags record
// explicit nulls on nullable fields.
type UpdateTaskInput struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *models.TaskStatus
	Priority         *models.TaskPriority
	DueDate          *time.Time
	ClearDueDate     bool
	ProjectID        *uint64
}

// IsEmpty reports whether the partial update carries no changes at all.
func (in *UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil &&
		in.Description == nil && !in.ClearDescription &&
		in.Status == nil &&
		in.Priority == nil &&
		in.DueDate == nil && !in.ClearDueDate &&
		in.ProjectID == nil
}

// ValidateCreateTask checks a task creation payload. The project identifier
// may arrive in the body or be forced by the nested route; pass it through
// the raw map either way.
func ValidateCreateTask(raw map[string]interface{}) (*CreateTaskInput, Errors) {
	errs := Errors{}
	input := &CreateTaskInput{}

	title, present, null, ok := stringField(raw, "title")
	if !present || null || !ok {
		errs.add("title", "Task title is required")
	} else if checkLength(errs, "title", title, 1, constants.MaxNameLength) {
		input.Title = title
	}

	if desc, present, null, ok := stringField(raw, "description"); present && !null {
		if !ok {
			errs.add("description", "Description must be a string")
		} else if checkLength(errs, "description", desc, 0, constants.MaxDescriptionLength) {
			input.Description = &desc
		}
	}

	if status, present, null, ok := stringField(raw, "status"); present && !null {
		parsed := models.TaskStatus(status)
		if !ok || !parsed.IsValid() {
			errs.add("status", "Invalid task status")
		} else {
			input.Status = parsed
		}
	}

	if priority, present, null, ok := stringField(raw, "priority"); present && !null {
		parsed := models.TaskPriority(priority)
		if !ok || !parsed.IsValid() {
			errs.add("priority", "Invalid task priority")
		} else {
			input.Priority = parsed
		}
	}

	if due, present, null, ok := stringField(raw, "dueDate"); present && !null {
		if !ok {
			errs.add("dueDate", "Invalid due date")
		} else if parsed, valid := parseDateTime(due); !valid {
			errs.add("dueDate", "Invalid due date")
		} else {
			input.DueDate = &parsed
		}
	}

	projectID, present, ok := idField(raw, "projectId")
	if !present || !ok {
		errs.add("projectId", "Invalid project ID")
	} else {
		input.ProjectID = projectID
	}

	if errs.Any() {
		return nil, errs
	}
	return input, nil
}

// ValidateUpdateTask checks a partial task update payload.
func ValidateUpdateTask(raw map[string]interface{}) (*UpdateTaskInput, Errors) {
	errs := Errors{}
	input := &UpdateTaskInput{}

	if title, present, null, ok := stringField(raw, "title"); present {
		if null || !ok {
			errs.add("title", "Task title is required")
		} else if checkLength(errs, "title", title, 1, constants.MaxNameLength) {
			input.Title = &title
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
		parsed := models.TaskStatus(status)
		if null || !ok || !parsed.IsValid() {
			errs.add("status", "Invalid task status")
		} else {
			input.Status = &parsed
		}
	}

	if priority, present, null, ok := stringField(raw, "priority"); present {
		parsed := models.TaskPriority(priority)
		if null || !ok || !parsed.IsValid() {
			errs.add("priority", "Invalid task priority")
		} else {
			input.Priority = &parsed
		}
	}

	if due, present, null, ok := stringField(raw, "dueDate"); present {
		switch {
		case null:
			input.ClearDueDate = true
		case !ok:
			errs.add("dueDate", "Invalid due date")
		default:
			if parsed, valid := parseDateTime(due); !valid {
				errs.add("dueDate", "Invalid due date")
			} else {
				input.DueDate = &parsed
			}
		}
	}

	if projectID, present, ok := idField(raw, "projectId"); present {
		if !ok {
			errs.add("projectId", "Invalid project ID")
		} else {
			input.ProjectID = &projectID
		}
	}

	if errs.Any() {
		return nil, errs
	}
	return input, nil
}
