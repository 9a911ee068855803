// Package cascade computes and applies the ordered state changes required to
// erase a project or a project member without leaving live entities pointing
// at dead ones.
package cascade

import "github.com/taskup-dev/taskup/internal/models"

type StepKind string

const (
	StepSoftDeleteMember         StepKind = "soft_delete_member"
	StepDeactivateTeamMembership StepKind = "deactivate_team_membership"
	StepSoftDeleteTask           StepKind = "soft_delete_task"
	StepSoftDeleteScope          StepKind = "soft_delete_scope"
	StepHardDeleteScopePlan      StepKind = "hard_delete_scope_plan"
	StepHardDeleteRequirementDoc StepKind = "hard_delete_requirement_doc"
	StepHardDeleteScopeStatement StepKind = "hard_delete_scope_statement"
	StepHardDeleteWBS            StepKind = "hard_delete_wbs"
	StepSoftDeleteResource       StepKind = "soft_delete_resource"
	StepSoftDeleteRisk           StepKind = "soft_delete_risk"
	StepHardDeleteStakeholder    StepKind = "hard_delete_stakeholder"
	StepSoftDeleteAttachments    StepKind = "soft_delete_attachments"
	StepSoftDeleteProject        StepKind = "soft_delete_project"
)

// Step is one state change of a plan. TargetID is the row the step acts on,
// except for StepSoftDeleteAttachments where it is the project id of the
// bulk update. Optional steps may fail without aborting the cascade.
type Step struct {
	Kind     StepKind
	TargetID uint
	Optional bool
}

type Plan struct {
	ProjectID uint
	Steps     []Step
}

// Graph is the snapshot of a project's dependency graph at plan time. All
// slices hold live rows only, except Stakeholders which includes soft-deleted
// rows because stakeholder erasure is physical.
type Graph struct {
	Project         models.Project
	Members         []models.ProjectMember
	Teams           []models.Team
	TeamMemberships []models.TeamMembership
	Tasks           []models.Task
	Resources       []models.Resource
	Risks           []models.Risk
	Stakeholders    []models.Stakeholder
	Scope           *models.ProjectScope
}

// PlanProjectErase builds the full project-deletion plan in dependency
// order. Member sub-plans come first: member removal re-reads the project,
// which must still be live at that point.
func PlanProjectErase(g Graph) Plan {
	plan := Plan{ProjectID: g.Project.ID}

	for _, member := range g.Members {
		plan.Steps = append(plan.Steps, memberSteps(g, member)...)
	}

	if g.Scope != nil {
		plan.Steps = append(plan.Steps, Step{Kind: StepSoftDeleteScope, TargetID: g.Scope.ID, Optional: true})
		if g.Scope.ScopeManagementPlanID != nil {
			plan.Steps = append(plan.Steps, Step{Kind: StepHardDeleteScopePlan, TargetID: *g.Scope.ScopeManagementPlanID, Optional: true})
		}
		if g.Scope.RequirementDocumentID != nil {
			plan.Steps = append(plan.Steps, Step{Kind: StepHardDeleteRequirementDoc, TargetID: *g.Scope.RequirementDocumentID, Optional: true})
		}
		if g.Scope.ScopeStatementID != nil {
			plan.Steps = append(plan.Steps, Step{Kind: StepHardDeleteScopeStatement, TargetID: *g.Scope.ScopeStatementID, Optional: true})
		}
		if g.Scope.WBSID != nil {
			plan.Steps = append(plan.Steps, Step{Kind: StepHardDeleteWBS, TargetID: *g.Scope.WBSID, Optional: true})
		}
	}

	// Resource removal never refunds assignment cost or quantity: the work
	// the budget paid for already happened. Only the resource row itself is
	// retired.
	for _, res := range g.Resources {
		plan.Steps = append(plan.Steps, Step{Kind: StepSoftDeleteResource, TargetID: res.ID, Optional: true})
	}

	for _, risk := range g.Risks {
		plan.Steps = append(plan.Steps, Step{Kind: StepSoftDeleteRisk, TargetID: risk.ID, Optional: true})
	}

	for _, sh := range g.Stakeholders {
		plan.Steps = append(plan.Steps, Step{Kind: StepHardDeleteStakeholder, TargetID: sh.ID, Optional: true})
	}

	plan.Steps = append(plan.Steps,
		Step{Kind: StepSoftDeleteAttachments, TargetID: g.Project.ID},
		Step{Kind: StepSoftDeleteProject, TargetID: g.Project.ID},
	)

	return plan
}

// PlanMemberRemoval builds the standalone removal plan for one project
// member: the member row, their active team memberships, and every live task
// assigned to them (subtasks included).
func PlanMemberRemoval(g Graph, member models.ProjectMember) Plan {
	return Plan{ProjectID: g.Project.ID, Steps: memberSteps(g, member)}
}

func memberSteps(g Graph, member models.ProjectMember) []Step {
	steps := []Step{{Kind: StepSoftDeleteMember, TargetID: member.ID}}

	teamIDs := make(map[uint]bool, len(g.Teams))
	for _, team := range g.Teams {
		teamIDs[team.ID] = true
	}
	for _, tm := range g.TeamMemberships {
		if tm.UserID == member.UserID && tm.IsActive && teamIDs[tm.TeamID] {
			steps = append(steps, Step{Kind: StepDeactivateTeamMembership, TargetID: tm.ID})
		}
	}

	// The member's tasks are abandoned, not reassigned. Their assignments
	// stay untouched: a task retired this way keeps its budget spent.
	children := make(map[uint][]uint)
	for _, task := range g.Tasks {
		if task.ParentTaskID != nil {
			children[*task.ParentTaskID] = append(children[*task.ParentTaskID], task.ID)
		}
	}

	visited := make(map[uint]bool)
	for _, task := range g.Tasks {
		if task.AssignedTo != nil && *task.AssignedTo == member.UserID {
			steps = appendTaskSteps(steps, task.ID, children, visited)
		}
	}

	return steps
}

// appendTaskSteps walks a task and its subtask tree. Task rows form a tree
// by construction, but the traversal carries a visited set so a corrupted
// parent pointer cannot loop it.
func appendTaskSteps(steps []Step, taskID uint, children map[uint][]uint, visited map[uint]bool) []Step {
	if visited[taskID] {
		return steps
	}
	visited[taskID] = true

	steps = append(steps, Step{Kind: StepSoftDeleteTask, TargetID: taskID})
	for _, childID := range children[taskID] {
		steps = appendTaskSteps(steps, childID, children, visited)
	}

	return steps
}
