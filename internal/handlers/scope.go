package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskup-dev/taskup/db"
	"github.com/taskup-dev/taskup/internal/logging"
	"github.com/taskup-dev/taskup/internal/models"
	"github.com/taskup-dev/taskup/internal/services"
	"github.com/taskup-dev/taskup/internal/utils"
)

type ScopeManagementPlanRequest struct {
	ScopePreparation       string `json:"scope_preparation"`
	WBSDevelopmentApproach string `json:"wbs_development_approach"`
	ScopeBaselineApproval  string `json:"scope_baseline_approval"`
	DeliverableImpact      string `json:"deliverable_impact"`
}

type RequirementDocumentRequest struct {
	StakeholderNeeds   string `json:"stakeholder_needs"`
	Traceability       string `json:"traceability"`
	AcceptanceCriteria string `json:"acceptance_criteria"`
}

type ScopeStatementRequest struct {
	ScopeDescription   string `json:"scope_description"`
	Deliverables       string `json:"deliverables"`
	AcceptanceCriteria string `json:"acceptance_criteria"`
	Exclusions         string `json:"exclusions"`
	StatementOfWork    string `json:"statement_of_work"`
}

type WorkPackageRequest struct {
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	EstimatedDuration int    `json:"estimated_duration"`
}

type WBSRequest struct {
	WorkPackages []WorkPackageRequest `json:"work_packages" binding:"required"`
}

func scopeRequestContext(ctx *gin.Context) (uint, uint, bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, 0, false
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, 0, false
	}

	return userID, projectID, true
}

func GetProjectScope(ctx *gin.Context) {
	userID, projectID, ok := scopeRequestContext(ctx)

	if !ok {
		return
	}

	svc := services.NewScopeService(db.DB, logging.Logger)

	scope, err := svc.Get(ctx.Request.Context(), userID, projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, scope)
}

func CreateScopeManagementPlan(ctx *gin.Context) {
	userID, projectID, ok := scopeRequestContext(ctx)

	if !ok {
		return
	}

	var body ScopeManagementPlanRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	plan := models.ScopeManagementPlan{
		ScopePreparation:       body.ScopePreparation,
		WBSDevelopmentApproach: body.WBSDevelopmentApproach,
		ScopeBaselineApproval:  body.ScopeBaselineApproval,
		DeliverableImpact:      body.DeliverableImpact,
	}

	svc := services.NewScopeService(db.DB, logging.Logger)

	if err := svc.SetManagementPlan(ctx.Request.Context(), userID, projectID, &plan); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, plan)
}

func CreateRequirementDocument(ctx *gin.Context) {
	userID, projectID, ok := scopeRequestContext(ctx)

	if !ok {
		return
	}

	var body RequirementDocumentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	doc := models.RequirementDocument{
		StakeholderNeeds:   body.StakeholderNeeds,
		Traceability:       body.Traceability,
		AcceptanceCriteria: body.AcceptanceCriteria,
	}

	svc := services.NewScopeService(db.DB, logging.Logger)

	if err := svc.SetRequirementDocument(ctx.Request.Context(), userID, projectID, &doc); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, doc)
}

func CreateScopeStatement(ctx *gin.Context) {
	userID, projectID, ok := scopeRequestContext(ctx)

	if !ok {
		return
	}

	var body ScopeStatementRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	stmt := models.ScopeStatement{
		ScopeDescription:   body.ScopeDescription,
		Deliverables:       body.Deliverables,
		AcceptanceCriteria: body.AcceptanceCriteria,
		Exclusions:         body.Exclusions,
		StatementOfWork:    body.StatementOfWork,
	}

	svc := services.NewScopeService(db.DB, logging.Logger)

	if err := svc.SetScopeStatement(ctx.Request.Context(), userID, projectID, &stmt); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, stmt)
}

func CreateWBS(ctx *gin.Context) {
	userID, projectID, ok := scopeRequestContext(ctx)

	if !ok {
		return
	}

	var body WBSRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	wbs := models.WorkBreakdownStructure{
		WorkPackageName: "Master WBS",
		WorkDescription: "Aggregated from work packages",
	}
	for _, wp := range body.WorkPackages {
		wbs.WorkPackages = append(wbs.WorkPackages, models.WorkPackage{
			Name:              wp.Name,
			Description:       wp.Description,
			EstimatedDuration: wp.EstimatedDuration,
		})
	}

	svc := services.NewScopeService(db.DB, logging.Logger)

	if err := svc.SetWBS(ctx.Request.Context(), userID, projectID, &wbs); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, wbs)
}
