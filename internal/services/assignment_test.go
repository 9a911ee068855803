package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockManager(t *testing.T) (*AssignmentManager, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewAssignmentManager(gdb, log), mock
}

func TestAssignmentCreateReservesAndPersists(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id"}).AddRow(300, 1))
	mock.ExpectQuery(`SELECT \* FROM "resources" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "total", "available"}).
			AddRow(30, 1, "10", "10"))
	mock.ExpectQuery(`SELECT \* FROM "projects" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "total_budget", "remaining_budget"}).
			AddRow(1, 42, "1000", "1000"))
	mock.ExpectQuery(`INSERT INTO "assignments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(`UPDATE "resources" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "projects" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assignment, err := m.Create(context.Background(), 42, 300, 30, decimal.NewFromInt(4), decimal.NewFromInt(300))
	require.NoError(t, err)

	assert.Equal(t, uint(7), assignment.ID)
	assert.True(t, assignment.Quantity.Equal(decimal.NewFromInt(4)))
	assert.False(t, assignment.AssignedAt.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentCreateRejectsOverdraw(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id"}).AddRow(300, 1))
	mock.ExpectQuery(`SELECT \* FROM "resources" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "total", "available"}).
			AddRow(30, 1, "10", "6"))
	mock.ExpectQuery(`SELECT \* FROM "projects" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "total_budget", "remaining_budget"}).
			AddRow(1, 42, "1000", "700"))
	mock.ExpectRollback()

	_, err := m.Create(context.Background(), 42, 300, 30, decimal.NewFromInt(8), decimal.NewFromInt(100))
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentCreateForbidsOutsiders(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id"}).AddRow(300, 1))
	mock.ExpectQuery(`SELECT \* FROM "resources" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "total", "available"}).
			AddRow(30, 1, "10", "10"))
	mock.ExpectQuery(`SELECT \* FROM "projects" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "total_budget", "remaining_budget"}).
			AddRow(1, 42, "1000", "1000"))
	mock.ExpectQuery(`SELECT \* FROM "project_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "user_id"}))
	mock.ExpectRollback()

	_, err := m.Create(context.Background(), 99, 300, 30, decimal.NewFromInt(1), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrForbidden)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentReverseTwiceLeavesStateUntouched(t *testing.T) {
	m, mock := newMockManager(t)

	reversedAt := time.Now().Add(-time.Hour)

	// The second reversal finds the row already soft-deleted and commits
	// without touching the resource, the budget, or the assignment again.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "assignments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "task_id", "resource_id", "quantity", "estimated_cost", "deleted_at"}).
			AddRow(7, 300, 30, "4", "300", reversedAt))
	mock.ExpectCommit()

	require.NoError(t, m.Reverse(context.Background(), 42, 7))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentCreateTaskNotFound(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id"}))
	mock.ExpectRollback()

	_, err := m.Create(context.Background(), 42, 300, 30, decimal.NewFromInt(1), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
