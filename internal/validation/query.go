package validation

import (
	"net/url"
	"strconv"

	"github.com/sakumura/taskboard-api/internal/constants"
	"github.com/sakumura/taskboard-api/internal/models"
)

// ProjectQuery holds validated list parameters for projects.
type ProjectQuery struct {
	Page      int
	Limit     int
	Search    string
	Status    models.ProjectStatus
	SortBy    string
	SortOrder string
}

// TaskQuery holds validated list parameters for tasks.
type TaskQuery struct {
	Page      int
	Limit     int
	Search    string
	Status    models.TaskStatus
	Priority  models.TaskPriority
	ProjectID uint64
	SortBy    string
	SortOrder string
}

var projectSortFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"name":      true,
}

var taskSortFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"title":     true,
	"dueDate":   true,
	"priority":  true,
}

// ValidateProjectQuery checks list-projects query parameters. Invalid
// parameters are validation failures, not silently clamped values.
func ValidateProjectQuery(values url.Values) (*ProjectQuery, Errors) {
	errs := Errors{}
	q := &ProjectQuery{
		Page:      constants.MinPage,
		Limit:     constants.DefaultPageSize,
		SortBy:    "createdAt",
		SortOrder: "desc",
	}

	parsePage(values, q.pageTargets(), errs)
	q.Search = values.Get("search")

	if status := values.Get("status"); status != "" {
		parsed := models.ProjectStatus(status)
		if !parsed.IsValid() {
			errs.add("status", "Invalid project status")
		} else {
			q.Status = parsed
		}
	}

	parseSort(values, &q.SortBy, &q.SortOrder, projectSortFields, errs)

	if errs.Any() {
		return nil, errs
	}
	return q, nil
}

// ValidateTaskQuery checks list-tasks query parameters.
func ValidateTaskQuery(values url.Values) (*TaskQuery, Errors) {
	errs := Errors{}
	q := &TaskQuery{
		Page:      constants.MinPage,
		Limit:     constants.DefaultPageSize,
		SortBy:    "createdAt",
		SortOrder: "desc",
	}

	parsePage(values, q.pageTargets(), errs)
	q.Search = values.Get("search")

	if status := values.Get("status"); status != "" {
		parsed := models.TaskStatus(status)
		if !parsed.IsValid() {
			errs.add("status", "Invalid task status")
		} else {
			q.Status = parsed
		}
	}

	if priority := values.Get("priority"); priority != "" {
		parsed := models.TaskPriority(priority)
		if !parsed.IsValid() {
			errs.add("priority", "Invalid task priority")
		} else {
			q.Priority = parsed
		}
	}

	if projectID := values.Get("projectId"); projectID != "" {
		parsed, err := strconv.ParseUint(projectID, 10, 64)
		if err != nil || parsed == 0 {
			errs.add("projectId", "Invalid project ID")
		} else {
			q.ProjectID = parsed
		}
	}

	parseSort(values, &q.SortBy, &q.SortOrder, taskSortFields, errs)

	if errs.Any() {
		return nil, errs
	}
	return q, nil
}

type pageTargets struct {
	page  *int
	limit *int
}

func (q *ProjectQuery) pageTargets() pageTargets { return pageTargets{&q.Page, &q.Limit} }
func (q *TaskQuery) pageTargets() pageTargets    { return pageTargets{&q.Page, &q.Limit} }

func parsePage(values url.Values, t pageTargets, errs Errors) {
	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < constants.MinPage {
			errs.add("page", "Page must be a positive integer")
		} else {
			*t.page = page
		}
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > constants.MaxPageSize {
			errs.add("limit", "Limit must be between 1 and 1000")
		} else {
			*t.limit = limit
		}
	}
}

func parseSort(values url.Values, sortBy, sortOrder *string, allowed map[string]bool, errs Errors) {
	if raw := values.Get("sortBy"); raw != "" {
		if !allowed[raw] {
			errs.add("sortBy", "Invalid sort field")
		} else {
			*sortBy = raw
		}
	}

	if raw := values.Get("sortOrder"); raw != "" {
		if raw != "asc" && raw != "desc" {
			errs.add("sortOrder", "Sort order must be asc or desc")
		} else {
			*sortOrder = raw
		}
	}
}
