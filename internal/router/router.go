package router

import (
	"time"

	"github.com/crewly-dev/crewly/internal/handlers"
	"github.com/crewly-dev/crewly/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	Projects      *handlers.ProjectHandler
	Members       *handlers.MemberHandler
	Invites       *handlers.InviteHandler
	Tasks         *handlers.TaskHandler
	Notifications *handlers.NotificationHandler
	Sweep         *handlers.SweepHandler
}

func NewRouter(allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.GinZapMiddleware(zap.L()))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		// External scheduler trigger, shared-secret auth.
		api.GET("/cron/sweep", h.Sweep.Trigger)
		api.POST("/cron/sweep", h.Sweep.Trigger)

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), h.Auth.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), h.Auth.Update)
			auth.DELETE("/me", middleware.AuthMiddleware(), h.Auth.Delete)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", h.Projects.Create)
			projects.GET("", h.Projects.List)
			projects.GET("/:project_id", h.Projects.Get)
			projects.PATCH("/:project_id", h.Projects.Update)
			projects.DELETE("/:project_id", h.Projects.Delete)

			projects.GET("/:project_id/members", h.Members.List)
			projects.POST("/:project_id/members", h.Members.Add)
			projects.DELETE("/:project_id/members/:user_id", h.Members.Remove)

			projects.POST("/:project_id/invites", h.Invites.Create)

			projects.POST("/:project_id/tasks", h.Tasks.Create)
			projects.GET("/:project_id/tasks", h.Tasks.List)
			projects.PATCH("/:project_id/tasks/:task_id", h.Tasks.Update)
			projects.DELETE("/:project_id/tasks/:task_id", h.Tasks.Delete)
		}

		invites := api.Group("/invites", middleware.AuthMiddleware())
		{
			invites.GET("", h.Invites.ListMine)
			invites.POST("/:invite_id", h.Invites.Respond)
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", h.Notifications.List)
			notifications.PATCH("", h.Notifications.MarkAllRead)
			notifications.DELETE("", h.Notifications.DeleteAll)
			notifications.PATCH("/:notification_id", h.Notifications.MarkRead)
		}
	}

	return r
}
