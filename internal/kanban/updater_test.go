package kanban

import (
	"context"
	"testing"

	"github.com/sakumura/taskboard-api/internal/models"
	"github.com/sakumura/taskboard-api/internal/repository"
	"github.com/sakumura/taskboard-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type updaterTestEnv struct {
	db    *gorm.DB
	tasks *services.TaskService
}

func setupUpdaterTestEnv(t *testing.T) updaterTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	taskRepo := repository.NewTaskRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	return updaterTestEnv{
		db:    db,
		tasks: services.NewTaskService(taskRepo, projectRepo),
	}
}

func (env updaterTestEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hashedpassword"}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env updaterTestEnv) createProject(t *testing.T, name string, userID uint64) *models.Project {
	t.Helper()
	project := &models.Project{Name: name, Status: models.ProjectStatusActive, UserID: userID}
	require.NoError(t, env.db.Create(project).Error)
	return project
}

func (env updaterTestEnv) createTask(t *testing.T, title string, projectID uint64) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:     title,
		Status:    models.TaskStatusTodo,
		Priority:  models.TaskPriorityMedium,
		ProjectID: projectID,
	}
	require.NoError(t, env.db.Create(task).Error)
	return task
}

func TestServiceUpdater_MovePersists(t *testing.T) {
	env := setupUpdaterTestEnv(t)

	owner := env.createUser(t, "owner@example.com")
	project := env.createProject(t, "Board", owner.ID)
	task := env.createTask(t, "drag me", project.ID)

	updater := NewServiceUpdater(env.tasks, owner.ID)
	board := NewBoard(updater, CardsFromTasks([]models.Task{*task}))

	err := board.MoveTask(context.Background(), task.ID, models.TaskStatusInProgress)
	require.NoError(t, err)
	require.Equal(t, StateStable, board.State())

	// The transition went through the service and hit the database.
	var stored models.Task
	require.NoError(t, env.db.First(&stored, task.ID).Error)
	require.Equal(t, models.TaskStatusInProgress, stored.Status)
}

func TestServiceUpdater_ForeignTaskRollsBack(t *testing.T) {
	env := setupUpdaterTestEnv(t)

	owner := env.createUser(t, "owner@example.com")
	other := env.createUser(t, "other@example.com")
	theirs := env.createProject(t, "Theirs", other.ID)
	task := env.createTask(t, "not yours", theirs.ID)

	// A stale board view holding someone else's task: the server-side
	// ownership check fails the move and the board reverts wholesale.
	updater := NewServiceUpdater(env.tasks, owner.ID)
	board := NewBoard(updater, CardsFromTasks([]models.Task{*task}), WithNoticeTTL(0))

	before := board.Tasks()

	err := board.MoveTask(context.Background(), task.ID, models.TaskStatusDone)
	require.ErrorIs(t, err, services.ErrTaskNotFound)
	require.Equal(t, before, board.Tasks())

	_, hasNotice := board.Notice()
	require.True(t, hasNotice)

	// The row never changed.
	var stored models.Task
	require.NoError(t, env.db.First(&stored, task.ID).Error)
	require.Equal(t, models.TaskStatusTodo, stored.Status)
}
