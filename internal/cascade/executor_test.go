package cascade

import (
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return gdb, mock
}

func quietExecutor() *Executor {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewExecutor(log)
}

func TestExecutorAppliesFullPlan(t *testing.T) {
	gdb, mock := newMockDB(t)

	plan := Plan{
		ProjectID: 1,
		Steps: []Step{
			{Kind: StepSoftDeleteMember, TargetID: 20},
			{Kind: StepDeactivateTeamMembership, TargetID: 6},
			{Kind: StepSoftDeleteTask, TargetID: 300},
			{Kind: StepSoftDeleteScope, TargetID: 60, Optional: true},
			{Kind: StepHardDeleteStakeholder, TargetID: 50, Optional: true},
			{Kind: StepSoftDeleteAttachments, TargetID: 1},
			{Kind: StepSoftDeleteProject, TargetID: 1},
		},
	}

	mock.ExpectExec(`UPDATE "project_members" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "team_memberships" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "tasks" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SAVEPOINT cascade_step_3`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "project_scopes" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SAVEPOINT cascade_step_4`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "stakeholders"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "attachments" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`UPDATE "projects" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 1))

	summary, err := quietExecutor().Apply(gdb, plan)
	require.NoError(t, err)

	assert.Equal(t, StateProjectMarkedDeleted, summary.State)
	assert.Equal(t, 1, summary.MembersRemoved)
	assert.Equal(t, 1, summary.MembershipsDisabled)
	assert.Equal(t, 1, summary.TasksDeleted)
	assert.True(t, summary.ScopeDeleted)
	assert.Equal(t, 1, summary.StakeholdersDeleted)
	assert.Equal(t, 3, summary.AttachmentsDeleted)
	assert.True(t, summary.ProjectDeleted)
	assert.Empty(t, summary.OptionalStepFailures)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorContinuesPastOptionalFailure(t *testing.T) {
	gdb, mock := newMockDB(t)

	plan := Plan{
		ProjectID: 1,
		Steps: []Step{
			{Kind: StepSoftDeleteScope, TargetID: 60, Optional: true},
			{Kind: StepSoftDeleteAttachments, TargetID: 1},
			{Kind: StepSoftDeleteProject, TargetID: 1},
		},
	}

	mock.ExpectExec(`SAVEPOINT cascade_step_0`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "project_scopes" SET "deleted_at"`).WillReturnError(errors.New("locked"))
	mock.ExpectExec(`ROLLBACK TO SAVEPOINT cascade_step_0`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "attachments" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "projects" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 1))

	summary, err := quietExecutor().Apply(gdb, plan)
	require.NoError(t, err)

	assert.Equal(t, StateProjectMarkedDeleted, summary.State)
	assert.False(t, summary.ScopeDeleted)
	assert.True(t, summary.ProjectDeleted)
	require.Len(t, summary.OptionalStepFailures, 1)
	assert.Contains(t, summary.OptionalStepFailures[0], "soft_delete_scope")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorAbortsOnMandatoryFailure(t *testing.T) {
	gdb, mock := newMockDB(t)

	plan := Plan{
		ProjectID: 1,
		Steps: []Step{
			{Kind: StepSoftDeleteMember, TargetID: 20},
			{Kind: StepSoftDeleteProject, TargetID: 1},
		},
	}

	mock.ExpectExec(`UPDATE "project_members" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "projects" SET "deleted_at"`).WillReturnError(errors.New("connection reset"))

	summary, err := quietExecutor().Apply(gdb, plan)
	require.Error(t, err)

	assert.Equal(t, StateAborted, summary.State)
	assert.Equal(t, 1, summary.MembersRemoved)
	assert.False(t, summary.ProjectDeleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorRejectsUnknownStep(t *testing.T) {
	gdb, _ := newMockDB(t)

	plan := Plan{ProjectID: 1, Steps: []Step{{Kind: StepKind("bogus"), TargetID: 1}}}

	summary, err := quietExecutor().Apply(gdb, plan)
	require.Error(t, err)
	assert.Equal(t, StateAborted, summary.State)
}
