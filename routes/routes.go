package routes

import (
	"time"

	"github.com/baptisteba/PassChef/config"
	"github.com/baptisteba/PassChef/constants"
	"github.com/baptisteba/PassChef/handlers"
	"github.com/baptisteba/PassChef/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(hm *handlers.HandlerManager, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "x-auth-token"},
	}))

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"service":   "passchef",
			"timestamp": time.Now().UTC(),
		})
	})

	api := r.Group("/api")
	{
		api.POST("/auth/login", hm.AuthenticationHandler.Login)

		// everything else requires a valid token
		auth := api.Group("")
		auth.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			auth.POST("/auth/register", middleware.RoleAuthorization(constants.RoleAdmin), hm.AuthenticationHandler.Register)
			auth.GET("/auth/me", hm.AuthenticationHandler.Me)

			groups := auth.Group("/groups")
			{
				groups.GET("", hm.GroupHandler.List)
				groups.POST("", middleware.RoleAuthorization(constants.RoleAdmin, constants.RoleGroupOwner), hm.GroupHandler.Create)
				groups.GET("/:id", hm.GroupHandler.Get)
				groups.PUT("/:id", hm.GroupHandler.Update)
				groups.DELETE("/:id", middleware.RoleAuthorization(constants.RoleAdmin, constants.RoleGroupOwner), hm.GroupHandler.Delete)
				groups.POST("/:id/access", hm.GroupHandler.GrantAccess)
				groups.DELETE("/:id/access/:userId", hm.GroupHandler.RevokeAccess)
			}

			sites := auth.Group("/sites")
			{
				sites.GET("", hm.SiteHandler.List)
				sites.POST("", hm.SiteHandler.Create)
				sites.GET("/:id", hm.SiteHandler.Get)
				sites.PUT("/:id", hm.SiteHandler.Update)
				sites.DELETE("/:id", hm.SiteHandler.Delete)
				sites.GET("/:id/events", hm.SiteHandler.Events)

				sites.GET("/:id/documents", hm.DocumentHandler.ListBySite)
				sites.POST("/:id/documents", hm.DocumentHandler.UploadForSite)
				sites.GET("/:id/external-tools", hm.ExternalToolHandler.ListBySite)
				sites.POST("/:id/external-tools", hm.ExternalToolHandler.CreateForSite)
				sites.GET("/:id/wan-connections", hm.WANHandler.ListBySite)
				sites.POST("/:id/wan-connections", hm.WANHandler.CreateForSite)
				sites.GET("/:id/deployments", hm.DeploymentHandler.ListBySite)
				sites.POST("/:id/deployments", hm.DeploymentHandler.Create)
				sites.GET("/:id/archived-deployments", hm.DeploymentHandler.ListArchivedBySite)

				sites.GET("/:id/wifi-deployment", hm.DeploymentHandler.ListBySite)
				sites.POST("/:id/wifi-deployment", hm.DeploymentHandler.Create)
				sites.GET("/:id/wifi-deployment/:deploymentId", hm.DeploymentHandler.Get)
				sites.PUT("/:id/wifi-deployment/:deploymentId", hm.DeploymentHandler.Update)
				sites.DELETE("/:id/wifi-deployment/:deploymentId", hm.DeploymentHandler.Delete)
				sites.POST("/:id/wifi-deployment/:deploymentId/archive", hm.DeploymentHandler.Archive)
			}

			documents := auth.Group("/documents")
			{
				documents.GET("", hm.DocumentHandler.List)
				documents.POST("/upload", hm.DocumentHandler.Upload)
				documents.POST("/external", hm.DocumentHandler.CreateExternal)
				documents.GET("/:id", hm.DocumentHandler.Get)
				documents.GET("/:id/download", hm.DocumentHandler.Download)
				documents.POST("/:id/comments", hm.DocumentHandler.AddComment)
				documents.DELETE("/:id", hm.DocumentHandler.Delete)
			}

			tools := auth.Group("/external-tools")
			{
				tools.GET("", hm.ExternalToolHandler.List)
				tools.POST("", hm.ExternalToolHandler.Create)
				tools.GET("/:id", hm.ExternalToolHandler.Get)
				tools.PUT("/:id", hm.ExternalToolHandler.Update)
				tools.DELETE("/:id", hm.ExternalToolHandler.Delete)
			}

			wan := auth.Group("/wan")
			{
				wan.GET("", hm.WANHandler.List)
				wan.POST("", hm.WANHandler.Create)
				wan.GET("/:id", hm.WANHandler.Get)
				wan.PUT("/:id", hm.WANHandler.Update)
				wan.DELETE("/:id", hm.WANHandler.Delete)
			}

			deployments := auth.Group("/deployments")
			{
				deployments.GET("/:id", hm.DeploymentHandler.Get)
				deployments.PUT("/:id", hm.DeploymentHandler.Update)
				deployments.DELETE("/:id", hm.DeploymentHandler.Delete)
				deployments.POST("/:id/archive", hm.DeploymentHandler.Archive)

				deployments.GET("/:id/comments", hm.DeploymentHandler.ListComments)
				deployments.POST("/:id/comments", hm.DeploymentHandler.AddComment)

				deployments.GET("/:id/tasks", hm.DeploymentHandler.ListTasks)
				deployments.POST("/:id/tasks", hm.DeploymentHandler.AddTask)
				deployments.PUT("/:id/tasks/:taskId", hm.DeploymentHandler.UpdateTask)
				deployments.DELETE("/:id/tasks/:taskId", hm.DeploymentHandler.DeleteTask)
			}

			admin := auth.Group("/admin")
			admin.Use(middleware.RoleAuthorization(constants.RoleAdmin))
			{
				admin.POST("/reset-database", hm.AdminHandler.ResetDatabase)
			}
		}
	}

	return r
}
