package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/taskup-dev/taskup/internal/handlers"
	"github.com/taskup-dev/taskup/internal/middleware"
	"github.com/taskup-dev/taskup/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.PATCH("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			projects.POST("/:project_id/members", handlers.AddProjectMember)
			projects.DELETE("/:project_id/members/:user_id", handlers.RemoveProjectMember)

			projects.POST("/:project_id/tasks", handlers.CreateTask)

			projects.POST("/:project_id/resources", handlers.CreateResource)
			projects.GET("/:project_id/resources", handlers.ListResources)
			projects.PATCH("/:project_id/resources/:resource_id", handlers.UpdateResource)
			projects.DELETE("/:project_id/resources/:resource_id", handlers.DeleteResource)

			projects.GET("/:project_id/scope", handlers.GetProjectScope)
			projects.PUT("/:project_id/scope/management-plan", handlers.CreateScopeManagementPlan)
			projects.PUT("/:project_id/scope/requirements", handlers.CreateRequirementDocument)
			projects.PUT("/:project_id/scope/statement", handlers.CreateScopeStatement)
			projects.PUT("/:project_id/scope/wbs", handlers.CreateWBS)

			projects.POST("/:project_id/risks", handlers.CreateRisk)
			projects.GET("/:project_id/risks", handlers.ListRisks)
			projects.DELETE("/:project_id/risks/:risk_id", handlers.DeleteRisk)

			projects.POST("/:project_id/stakeholders", handlers.CreateStakeholder)
			projects.GET("/:project_id/stakeholders", handlers.ListStakeholders)
			projects.DELETE("/:project_id/stakeholders/:stakeholder_id", handlers.DeleteStakeholder)

			projects.POST("/:project_id/attachments", handlers.CreateAttachment)
			projects.GET("/:project_id/attachments", handlers.ListAttachments)
		}

		tasks := api.Group("/tasks", middleware.AuthMiddleware())
		{
			tasks.PATCH("/:task_id", handlers.UpdateTask)
			tasks.DELETE("/:task_id", handlers.DeleteTask)
		}

		assignments := api.Group("/assignments", middleware.AuthMiddleware())
		{
			assignments.POST("", handlers.CreateAssignment)
			assignments.PATCH("/:assignment_id", handlers.UpdateAssignment)
			assignments.DELETE("/:assignment_id", handlers.ReverseAssignment)
		}
	}

	return r
}
