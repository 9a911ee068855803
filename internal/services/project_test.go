package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskup-dev/taskup/internal/cascade"
)

func newMockProjectService(t *testing.T) (*ProjectService, sqlmock.Sqlmock) {
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

	return NewProjectService(gdb, log), mock
}

func TestRemoveMemberTwiceLeavesStateUntouched(t *testing.T) {
	s, mock := newMockProjectService(t)

	removedAt := time.Now().Add(-time.Hour)

	// The member row is already soft-deleted: no cascade steps run, no
	// notification is written, and the call still reports success.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}).
			AddRow(1, 42, "Alpha"))
	mock.ExpectQuery(`SELECT \* FROM "project_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "user_id", "deleted_at"}).
			AddRow(20, 1, 100, removedAt))
	mock.ExpectCommit()

	summary, err := s.RemoveMember(context.Background(), 42, 1, 100)
	require.NoError(t, err)

	assert.Equal(t, cascade.StateCommitted, summary.State)
	assert.Zero(t, summary.MembersRemoved)
	assert.Zero(t, summary.TasksDeleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveMemberForbidsNonOwnerRemovingOthers(t *testing.T) {
	s, mock := newMockProjectService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}).
			AddRow(1, 42, "Alpha"))
	mock.ExpectRollback()

	_, err := s.RemoveMember(context.Background(), 99, 1, 100)
	assert.ErrorIs(t, err, ErrForbidden)

	assert.NoError(t, mock.ExpectationsWereMet())
}
