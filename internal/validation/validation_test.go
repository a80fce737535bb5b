package validation

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sakumura/taskboard-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestValidateRegister_NormalizesEmail(t *testing.T) {
	input, errs := ValidateRegister(map[string]interface{}{
		"email":    "Alice@Example.COM",
		"password": "supersecret",
	})
	require.Nil(t, errs)
	require.Equal(t, "alice@example.com", input.Email)
	require.Nil(t, input.Name)
}

func TestValidateRegister_InvalidEmail(t *testing.T) {
	for _, email := range []string{"", "not-an-email", "a@", "Display Name <a@b.com>"} {
		_, errs := ValidateRegister(map[string]interface{}{
			"email":    email,
			"password": "supersecret",
		})
		require.NotNil(t, errs, "email %q should fail", email)
		require.Contains(t, errs["email"], "Invalid email address")
	}
}

func TestValidateRegister_PasswordBoundaries(t *testing.T) {
	// 7 characters: one short of the minimum.
	_, errs := ValidateRegister(map[string]interface{}{
		"email":    "a@example.com",
		"password": strings.Repeat("x", 7),
	})
	require.Contains(t, errs["password"], "Password must be at least 8 characters")

	// Exactly 8 passes.
	_, errs = ValidateRegister(map[string]interface{}{
		"email":    "a@example.com",
		"password": strings.Repeat("x", 8),
	})
	require.Nil(t, errs)

	// 101 characters: one over the maximum.
	_, errs = ValidateRegister(map[string]interface{}{
		"email":    "a@example.com",
		"password": strings.Repeat("x", 101),
	})
	require.Contains(t, errs["password"], "Password must be less than 100 characters")
}

func TestValidateLogin_NoStrengthChecks(t *testing.T) {
	// A short password is fine at login; only registration enforces length.
	input, errs := ValidateLogin(map[string]interface{}{
		"email":    "a@example.com",
		"password": "x",
	})
	require.Nil(t, errs)
	require.Equal(t, "x", input.Password)
}

func TestValidateCreateProject_NameBoundaries(t *testing.T) {
	_, errs := ValidateCreateProject(map[string]interface{}{
		"name": strings.Repeat("a", 256),
	})
	require.Contains(t, errs["name"], "Name must be at most 255 characters")

	input, errs := ValidateCreateProject(map[string]interface{}{
		"name": strings.Repeat("a", 255),
	})
	require.Nil(t, errs)
	require.Len(t, input.Name, 255)

	_, errs = ValidateCreateProject(map[string]interface{}{
		"name": "",
	})
	require.Contains(t, errs["name"], "Name is required")
}

func TestValidateCreateProject_MultibyteLength(t *testing.T) {
	// Length is counted in runes, not bytes.
	input, errs := ValidateCreateProject(map[string]interface{}{
		"name": strings.Repeat("あ", 255),
	})
	require.Nil(t, errs)
	require.NotEmpty(t, input.Name)
}

func TestValidateUpdateProject_DistinguishesAbsentAndNull(t *testing.T) {
	// Absent description: untouched.
	input, errs := ValidateUpdateProject(map[string]interface{}{
		"name": "Renamed",
	})
	require.Nil(t, errs)
	require.False(t, input.ClearDescription)
	require.Nil(t, input.Description)

	// Explicit null: clear it.
	input, errs = ValidateUpdateProject(map[string]interface{}{
		"description": nil,
	})
	require.Nil(t, errs)
	require.True(t, input.ClearDescription)

	// Null name is invalid; names cannot be cleared.
	_, errs = ValidateUpdateProject(map[string]interface{}{
		"name": nil,
	})
	require.Contains(t, errs["name"], "Project name is required")
}

func TestValidateUpdateProject_Empty(t *testing.T) {
	input, errs := ValidateUpdateProject(map[string]interface{}{})
	require.Nil(t, errs)
	require.True(t, input.IsEmpty())
}

func TestValidateCreateTask_Defaults(t *testing.T) {
	input, errs := ValidateCreateTask(map[string]interface{}{
		"title":     "New Task",
		"projectId": float64(3),
	})
	require.Nil(t, errs)
	require.Equal(t, uint64(3), input.ProjectID)
	// Omitted status and priority stay zero; the service applies defaults.
	require.Empty(t, string(input.Status))
	require.Empty(t, string(input.Priority))
}

func TestValidateCreateTask_ProjectIDForms(t *testing.T) {
	// The nested route injects the identifier as a decimal string.
	input, errs := ValidateCreateTask(map[string]interface{}{
		"title":     "New Task",
		"projectId": "42",
	})
	require.Nil(t, errs)
	require.Equal(t, uint64(42), input.ProjectID)

	for _, bad := range []interface{}{nil, "abc", float64(0), float64(-1), float64(1.5), true} {
		_, errs := ValidateCreateTask(map[string]interface{}{
			"title":     "New Task",
			"projectId": bad,
		})
		require.NotNil(t, errs, "projectId %v should fail", bad)
		require.Contains(t, errs["projectId"], "Invalid project ID")
	}
}

func TestValidateCreateTask_DueDate(t *testing.T) {
	input, errs := ValidateCreateTask(map[string]interface{}{
		"title":     "New Task",
		"projectId": float64(1),
		"dueDate":   "2026-09-15T12:00:00Z",
	})
	require.Nil(t, errs)
	require.NotNil(t, input.DueDate)
	require.Equal(t, time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC), input.DueDate.UTC())

	_, errs = ValidateCreateTask(map[string]interface{}{
		"title":     "New Task",
		"projectId": float64(1),
		"dueDate":   "next tuesday",
	})
	require.Contains(t, errs["dueDate"], "Invalid due date")
}

func TestValidateCreateTask_InvalidEnums(t *testing.T) {
	_, errs := ValidateCreateTask(map[string]interface{}{
		"title":     "New Task",
		"projectId": float64(1),
		"status":    "BLOCKED",
		"priority":  "URGENT",
	})
	require.Contains(t, errs["status"], "Invalid task status")
	require.Contains(t, errs["priority"], "Invalid task priority")
}

func TestValidateUpdateTask_ClearFlags(t *testing.T) {
	input, errs := ValidateUpdateTask(map[string]interface{}{
		"description": nil,
		"dueDate":     nil,
	})
	require.Nil(t, errs)
	require.True(t, input.ClearDescription)
	require.True(t, input.ClearDueDate)
	require.False(t, input.IsEmpty())

	// Status cannot be cleared.
	_, errs = ValidateUpdateTask(map[string]interface{}{
		"status": nil,
	})
	require.Contains(t, errs["status"], "Invalid task status")
}

func TestValidateUpdateTask_Empty(t *testing.T) {
	input, errs := ValidateUpdateTask(map[string]interface{}{})
	require.Nil(t, errs)
	require.True(t, input.IsEmpty())
}

func TestValidateProjectQuery_Defaults(t *testing.T) {
	q, errs := ValidateProjectQuery(url.Values{})
	require.Nil(t, errs)
	require.Equal(t, 1, q.Page)
	require.Equal(t, 10, q.Limit)
	require.Equal(t, "createdAt", q.SortBy)
	require.Equal(t, "desc", q.SortOrder)
}

func TestValidateProjectQuery_Invalid(t *testing.T) {
	_, errs := ValidateProjectQuery(url.Values{
		"page":      {"0"},
		"limit":     {"1001"},
		"status":    {"DORMANT"},
		"sortBy":    {"priority"},
		"sortOrder": {"sideways"},
	})
	require.NotNil(t, errs)
	require.Contains(t, errs["page"], "Page must be a positive integer")
	require.Contains(t, errs["limit"], "Limit must be between 1 and 1000")
	require.Contains(t, errs["status"], "Invalid project status")
	require.Contains(t, errs["sortBy"], "Invalid sort field")
	require.Contains(t, errs["sortOrder"], "Sort order must be asc or desc")
}

func TestValidateTaskQuery_Filters(t *testing.T) {
	q, errs := ValidateTaskQuery(url.Values{
		"status":    {"IN_PROGRESS"},
		"priority":  {"HIGH"},
		"projectId": {"7"},
		"sortBy":    {"priority"},
		"sortOrder": {"asc"},
	})
	require.Nil(t, errs)
	require.Equal(t, models.TaskStatusInProgress, q.Status)
	require.Equal(t, models.TaskPriorityHigh, q.Priority)
	require.Equal(t, uint64(7), q.ProjectID)
	require.Equal(t, "priority", q.SortBy)
	require.Equal(t, "asc", q.SortOrder)
}

func TestValidateTaskQuery_InvalidProjectID(t *testing.T) {
	_, errs := ValidateTaskQuery(url.Values{
		"projectId": {"abc"},
	})
	require.Contains(t, errs["projectId"], "Invalid project ID")
}
