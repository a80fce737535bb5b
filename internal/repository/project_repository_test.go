package repository

import (
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// anyTime matches any time argument, for gorm-managed timestamps.
type anyTime struct{}

func (anyTime) Match(v driver.Value) bool {
	_, ok := v.(time.Time)
	return ok
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestGormProjectRepository_ExistsForOwner(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM .projects. WHERE id = \? AND user_id = \?`).
		WithArgs(5, 9).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	owned, err := repo.ExistsForOwner(5, 9)
	require.NoError(t, err)
	require.True(t, owned)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProjectRepository_Delete_CascadesInOneTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectBegin()
	// Tasks go first so the project delete cannot orphan them.
	mock.ExpectExec(`DELETE FROM .tasks. WHERE project_id = \?`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM .projects. WHERE id = \? AND user_id = \?`).
		WithArgs(5, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(5, 9))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProjectRepository_Delete_RollsBackOnOwnershipMiss(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM .tasks. WHERE project_id = \?`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 3))
	// Owner predicate matches nothing, so the task deletes must not commit.
	mock.ExpectExec(`DELETE FROM .projects. WHERE id = \? AND user_id = \?`).
		WithArgs(5, 9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(5, 9)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProjectRepository_UpdateForOwner_CarriesOwnerPredicate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProjectRepository(db)

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM .projects. WHERE id = \? AND user_id = \?`).
		WithArgs(5, 9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "user_id", "created_at", "updated_at"}).
			AddRow(5, "Old Name", "ACTIVE", 9, now, now))
	// The write itself repeats the predicate; the check and the update form
	// one atomic unit.
	mock.ExpectExec(`UPDATE .projects. SET .name.=\?,.updated_at.=\? WHERE id = \? AND user_id = \?`).
		WithArgs("New Name", anyTime{}, 5, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT projects\.\*, \(SELECT COUNT\(\*\) FROM tasks WHERE tasks\.project_id = projects\.id\) AS task_count FROM .projects. WHERE projects\.id = \? AND projects\.user_id = \?`).
		WithArgs(5, 9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "user_id", "task_count", "created_at", "updated_at"}).
			AddRow(5, "New Name", "ACTIVE", 9, 2, now, now))

	project, err := repo.UpdateForOwner(5, 9, map[string]interface{}{"name": "New Name"})
	require.NoError(t, err)
	require.Equal(t, "New Name", project.Name)
	require.Equal(t, int64(2), project.TaskCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProjectRepository_UpdateForOwner_EmptyFieldsPerformNoWrite(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProjectRepository(db)

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM .projects. WHERE id = \? AND user_id = \?`).
		WithArgs(5, 9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "user_id", "created_at", "updated_at"}).
			AddRow(5, "Name", "ACTIVE", 9, now, now))
	// No UPDATE is expected: an empty partial update leaves updated_at alone.
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT projects\.\*, \(SELECT COUNT\(\*\) FROM tasks WHERE tasks\.project_id = projects\.id\) AS task_count FROM .projects. WHERE projects\.id = \? AND projects\.user_id = \?`).
		WithArgs(5, 9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "user_id", "task_count", "created_at", "updated_at"}).
			AddRow(5, "Name", "ACTIVE", 9, 0, now, now))

	project, err := repo.UpdateForOwner(5, 9, map[string]interface{}{})
	require.NoError(t, err)
	require.Equal(t, "Name", project.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProjectRepository_UpdateForOwner_MissSurfacesAsNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM .projects. WHERE id = \? AND user_id = \?`).
		WithArgs(5, 9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.UpdateForOwner(5, 9, map[string]interface{}{"name": "New Name"})
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}
