package cascade

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/taskup-dev/taskup/internal/models"
)

// State tracks where a cascade is in its lifecycle. Mandatory-step failures
// before the project is marked deleted move the machine to StateAborted and
// roll the transaction back.
type State string

const (
	StateRequested             State = "requested"
	StateAuthorized            State = "authorized"
	StateMembersProcessed      State = "members_processed"
	StateScopeProcessed        State = "scope_processed"
	StateResourcesProcessed    State = "resources_processed"
	StateRisksProcessed        State = "risks_processed"
	StateStakeholdersProcessed State = "stakeholders_processed"
	StateAttachmentsProcessed  State = "attachments_processed"
	StateProjectMarkedDeleted  State = "project_marked_deleted"
	StateCommitted             State = "committed"
	StateAborted               State = "aborted"
)

// Summary reports what a cascade touched. Optional-step failures are
// recorded here instead of failing the operation.
type Summary struct {
	State                State    `json:"state"`
	MembersRemoved       int      `json:"members_removed"`
	MembershipsDisabled  int      `json:"team_memberships_disabled"`
	TasksDeleted         int      `json:"tasks_deleted"`
	ScopeDeleted         bool     `json:"scope_deleted"`
	ResourcesDeleted     int      `json:"resources_deleted"`
	RisksDeleted         int      `json:"risks_deleted"`
	StakeholdersDeleted  int      `json:"stakeholders_deleted"`
	AttachmentsDeleted   int      `json:"attachments_deleted"`
	ProjectDeleted       bool     `json:"project_deleted"`
	OptionalStepFailures []string `json:"optional_step_failures,omitempty"`
}

type Executor struct {
	Log *logrus.Logger
}

func NewExecutor(log *logrus.Logger) *Executor {
	return &Executor{Log: log}
}

// Apply runs every step of the plan against tx, in order. The caller owns
// the transaction: a non-nil error must roll it back. Optional steps that
// fail are logged, recorded in the summary, and skipped over.
func (e *Executor) Apply(tx *gorm.DB, plan Plan) (Summary, error) {
	summary := Summary{State: StateAuthorized}

	for i, step := range plan.Steps {
		if err := e.runStep(tx, plan, step, i, &summary); err != nil {
			summary.State = StateAborted
			return summary, err
		}

		summary.State = stateAfter(step.Kind, summary.State)
	}

	return summary, nil
}

// runStep executes one step. Optional steps run under a savepoint: a failed
// statement poisons the surrounding Postgres transaction, so tolerating the
// failure requires rolling the step's own work back before continuing.
func (e *Executor) runStep(tx *gorm.DB, plan Plan, step Step, idx int, summary *Summary) error {
	if !step.Optional {
		if err := e.applyStep(tx, plan, step, summary); err != nil {
			return fmt.Errorf("cascade step %s (id %d): %w", step.Kind, step.TargetID, err)
		}
		return nil
	}

	name := fmt.Sprintf("cascade_step_%d", idx)
	if err := tx.SavePoint(name).Error; err != nil {
		return fmt.Errorf("cascade step %s (id %d): savepoint: %w", step.Kind, step.TargetID, err)
	}

	if err := e.applyStep(tx, plan, step, summary); err != nil {
		if rbErr := tx.RollbackTo(name).Error; rbErr != nil {
			return fmt.Errorf("cascade step %s (id %d): rollback to savepoint: %w", step.Kind, step.TargetID, rbErr)
		}

		failure := fmt.Sprintf("%s (id %d): %v", step.Kind, step.TargetID, err)
		summary.OptionalStepFailures = append(summary.OptionalStepFailures, failure)
		e.Log.WithFields(logrus.Fields{
			"project_id": plan.ProjectID,
			"step":       string(step.Kind),
			"target_id":  step.TargetID,
		}).WithError(err).Warn("optional cascade step failed, continuing")
	}

	return nil
}

func (e *Executor) applyStep(tx *gorm.DB, plan Plan, step Step, summary *Summary) error {
	switch step.Kind {
	case StepSoftDeleteMember:
		if err := tx.Delete(&models.ProjectMember{}, step.TargetID).Error; err != nil {
			return err
		}
		summary.MembersRemoved++

	case StepDeactivateTeamMembership:
		if err := tx.Model(&models.TeamMembership{}).Where("id = ?", step.TargetID).Update("is_active", false).Error; err != nil {
			return err
		}
		summary.MembershipsDisabled++

	case StepSoftDeleteTask:
		if err := tx.Delete(&models.Task{}, step.TargetID).Error; err != nil {
			return err
		}
		summary.TasksDeleted++

	case StepSoftDeleteScope:
		if err := tx.Delete(&models.ProjectScope{}, step.TargetID).Error; err != nil {
			return err
		}
		summary.ScopeDeleted = true

	case StepHardDeleteScopePlan:
		return tx.Unscoped().Delete(&models.ScopeManagementPlan{}, step.TargetID).Error

	case StepHardDeleteRequirementDoc:
		return tx.Unscoped().Delete(&models.RequirementDocument{}, step.TargetID).Error

	case StepHardDeleteScopeStatement:
		return tx.Unscoped().Delete(&models.ScopeStatement{}, step.TargetID).Error

	case StepHardDeleteWBS:
		if err := tx.Unscoped().Where("wbs_id = ?", step.TargetID).Delete(&models.WorkPackage{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.WorkBreakdownStructure{}, step.TargetID).Error

	case StepSoftDeleteResource:
		if err := tx.Delete(&models.Resource{}, step.TargetID).Error; err != nil {
			return err
		}
		summary.ResourcesDeleted++

	case StepSoftDeleteRisk:
		if err := tx.Delete(&models.Risk{}, step.TargetID).Error; err != nil {
			return err
		}
		summary.RisksDeleted++

	case StepHardDeleteStakeholder:
		if err := tx.Unscoped().Delete(&models.Stakeholder{}, step.TargetID).Error; err != nil {
			return err
		}
		summary.StakeholdersDeleted++

	case StepSoftDeleteAttachments:
		// User-owned attachments (profile pictures) outlive the project.
		result := tx.Where("project_id = ? AND entity_type <> ?", step.TargetID, models.AttachmentEntityUser).
			Delete(&models.Attachment{})
		if result.Error != nil {
			return result.Error
		}
		summary.AttachmentsDeleted = int(result.RowsAffected)

	case StepSoftDeleteProject:
		if err := tx.Delete(&models.Project{}, step.TargetID).Error; err != nil {
			return err
		}
		summary.ProjectDeleted = true

	default:
		return fmt.Errorf("unknown cascade step kind %q", step.Kind)
	}

	return nil
}

func stateAfter(kind StepKind, current State) State {
	switch kind {
	case StepSoftDeleteMember, StepDeactivateTeamMembership, StepSoftDeleteTask:
		return StateMembersProcessed
	case StepSoftDeleteScope, StepHardDeleteScopePlan, StepHardDeleteRequirementDoc,
		StepHardDeleteScopeStatement, StepHardDeleteWBS:
		return StateScopeProcessed
	case StepSoftDeleteResource:
		return StateResourcesProcessed
	case StepSoftDeleteRisk:
		return StateRisksProcessed
	case StepHardDeleteStakeholder:
		return StateStakeholdersProcessed
	case StepSoftDeleteAttachments:
		return StateAttachmentsProcessed
	case StepSoftDeleteProject:
		return StateProjectMarkedDeleted
	}
	return current
}
