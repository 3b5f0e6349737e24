package main

import (
	"net/http"

	"poi-platform/internal/auth"
	"poi-platform/internal/catalog"
	"poi-platform/internal/rbac"
	"poi-platform/internal/users"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, m *auth.Manager, userSvc *users.Service, catalogSvc *catalog.Service) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protect := []gin.HandlerFunc{auth.StripToken(), auth.VerifyToken(m)}

	api := r.Group("/api")

	uh := users.Handlers{Svc: userSvc}
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", uh.Register)
		authGroup.POST("/login", uh.Login)
		authGroup.GET("/me", append(protect, uh.Me)...)
	}

	// The two listing collections share one handler type, parameterized
	// by kind.
	for path, kind := range map[string]catalog.Kind{
		"/places":      catalog.KindPlace,
		"/restaurants": catalog.KindRestaurant,
	} {
		h := catalog.Handlers{Svc: catalogSvc, Kind: kind}
		g := api.Group(path, protect...)
		{
			g.GET("", h.List)
			g.GET("/:id", h.Get)
			g.POST("", h.Create)
			g.PUT("/:id", h.Update)
			g.DELETE("/:id", h.Delete)
			g.PUT("/:id/rating", h.SetRating)
			g.POST("/:id/comments", h.AddComment)
			g.PUT("/:id/comments/:commentId", h.EditComment)
			g.DELETE("/:id/comments/:commentId", h.DeleteComment)
		}
	}

	admin := api.Group("/admin", protect...)
	admin.Use(rbac.RequireAdmin())
	{
		admin.GET("/users", uh.AdminList)
		admin.DELETE("/listings/:id", catalog.AdminDelete(catalogSvc))
	}
}
