package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/taskup-dev/taskup/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func withID(id uint) gorm.Model { return gorm.Model{ID: id} }

func kinds(steps []Step) []StepKind {
	out := make([]StepKind, len(steps))
	for i, s := range steps {
		out[i] = s.Kind
	}
	return out
}

func TestPlanProjectEraseOrdering(t *testing.T) {
	g := Graph{
		Project: models.Project{Model: withID(1), OwnerID: 10},
		Members: []models.ProjectMember{
			{Model: withID(20), ProjectID: 1, UserID: 100},
		},
		Resources: []models.Resource{
			{Model: withID(30), ProjectID: 1},
		},
		Risks: []models.Risk{
			{Model: withID(40), ProjectID: 1},
		},
		Stakeholders: []models.Stakeholder{
			{Model: withID(50), ProjectID: 1},
		},
		Scope: &models.ProjectScope{
			Model:                 withID(60),
			ProjectID:             1,
			ScopeManagementPlanID: uintPtr(61),
			WBSID:                 uintPtr(62),
		},
	}

	plan := PlanProjectErase(g)

	assert.Equal(t, uint(1), plan.ProjectID)
	assert.Equal(t, []StepKind{
		StepSoftDeleteMember,
		StepSoftDeleteScope,
		StepHardDeleteScopePlan,
		StepHardDeleteWBS,
		StepSoftDeleteResource,
		StepSoftDeleteRisk,
		StepHardDeleteStakeholder,
		StepSoftDeleteAttachments,
		StepSoftDeleteProject,
	}, kinds(plan.Steps))

	// Attachments and project steps target the project itself.
	last := plan.Steps[len(plan.Steps)-1]
	assert.Equal(t, uint(1), last.TargetID)
	assert.False(t, last.Optional)
}

func TestPlanProjectEraseWithoutScope(t *testing.T) {
	g := Graph{
		Project: models.Project{Model: withID(1)},
	}

	plan := PlanProjectErase(g)

	assert.Equal(t, []StepKind{
		StepSoftDeleteAttachments,
		StepSoftDeleteProject,
	}, kinds(plan.Steps))
}

func TestPlanProjectEraseOptionalFlags(t *testing.T) {
	g := Graph{
		Project:      models.Project{Model: withID(1)},
		Resources:    []models.Resource{{Model: withID(30)}},
		Risks:        []models.Risk{{Model: withID(40)}},
		Stakeholders: []models.Stakeholder{{Model: withID(50)}},
		Scope:        &models.ProjectScope{Model: withID(60)},
	}

	optional := map[StepKind]bool{}
	for _, step := range PlanProjectErase(g).Steps {
		optional[step.Kind] = step.Optional
	}

	assert.True(t, optional[StepSoftDeleteScope])
	assert.True(t, optional[StepSoftDeleteResource])
	assert.True(t, optional[StepSoftDeleteRisk])
	assert.True(t, optional[StepHardDeleteStakeholder])
	assert.False(t, optional[StepSoftDeleteAttachments])
	assert.False(t, optional[StepSoftDeleteProject])
}

func TestPlanMemberRemoval(t *testing.T) {
	member := models.ProjectMember{Model: withID(20), ProjectID: 1, UserID: 100}

	g := Graph{
		Project: models.Project{Model: withID(1)},
		Members: []models.ProjectMember{member},
		Teams:   []models.Team{{Model: withID(5), ProjectID: 1}},
		TeamMemberships: []models.TeamMembership{
			{Model: withID(6), TeamID: 5, UserID: 100, IsActive: true},
			{Model: withID(7), TeamID: 5, UserID: 100, IsActive: false}, // already inactive
			{Model: withID(8), TeamID: 5, UserID: 200, IsActive: true},  // someone else
		},
		Tasks: []models.Task{
			{Model: withID(300), ProjectID: 1, AssignedTo: uintPtr(100)},
			{Model: withID(301), ProjectID: 1, ParentTaskID: uintPtr(300)}, // subtask, unassigned
			{Model: withID(302), ProjectID: 1, AssignedTo: uintPtr(200)},   // someone else's
		},
	}

	plan := PlanMemberRemoval(g, member)

	require.Equal(t, []StepKind{
		StepSoftDeleteMember,
		StepDeactivateTeamMembership,
		StepSoftDeleteTask,
		StepSoftDeleteTask,
	}, kinds(plan.Steps))

	assert.Equal(t, uint(20), plan.Steps[0].TargetID)
	assert.Equal(t, uint(6), plan.Steps[1].TargetID)
	assert.Equal(t, uint(300), plan.Steps[2].TargetID)
	assert.Equal(t, uint(301), plan.Steps[3].TargetID)
}

func TestPlanMemberRemovalIgnoresOtherProjectTeams(t *testing.T) {
	member := models.ProjectMember{Model: withID(20), ProjectID: 1, UserID: 100}

	g := Graph{
		Project: models.Project{Model: withID(1)},
		Teams:   []models.Team{}, // membership's team is not in this project
		TeamMemberships: []models.TeamMembership{
			{Model: withID(6), TeamID: 99, UserID: 100, IsActive: true},
		},
	}

	plan := PlanMemberRemoval(g, member)

	assert.Equal(t, []StepKind{StepSoftDeleteMember}, kinds(plan.Steps))
}

func TestMemberRemovalSubtaskCycleGuard(t *testing.T) {
	member := models.ProjectMember{Model: withID(20), ProjectID: 1, UserID: 100}

	// 300 -> 301 -> 300: a corrupted parent pointer must not loop the walk.
	g := Graph{
		Project: models.Project{Model: withID(1)},
		Tasks: []models.Task{
			{Model: withID(300), AssignedTo: uintPtr(100), ParentTaskID: uintPtr(301)},
			{Model: withID(301), ParentTaskID: uintPtr(300)},
		},
	}

	plan := PlanMemberRemoval(g, member)

	require.Equal(t, []StepKind{
		StepSoftDeleteMember,
		StepSoftDeleteTask,
		StepSoftDeleteTask,
	}, kinds(plan.Steps))
	assert.Equal(t, uint(300), plan.Steps[1].TargetID)
	assert.Equal(t, uint(301), plan.Steps[2].TargetID)
}
