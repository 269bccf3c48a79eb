package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/robolab-go/docs"
	"github.com/linskybing/robolab-go/internal/api/handlers"
	"github.com/linskybing/robolab-go/internal/api/middleware"
	"github.com/linskybing/robolab-go/internal/application"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func RegisterRoutes(r *gin.Engine, svc *application.Services, h *handlers.Handlers) {
	authMiddleware := middleware.NewAuth(svc.Access)
	session := middleware.SessionAuthMiddleware(svc.Auth)

	r.GET("/healthz", h.Health.Healthz)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.InstanceName(docs.SwaggerInfo.InstanceName())))

	// public
	r.POST("/auth/login", h.Auth.Login)
	r.POST("/submissions", h.Submission.CreateSubmission)

	authGroup := r.Group("/auth")
	authGroup.Use(session)
	{
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/session", h.Auth.Session)
	}

	admin := r.Group("/admin")
	admin.Use(session)
	{
		admin.GET("/dashboard", authMiddleware.Reviewer(), h.Review.GetDashboard)
		admin.GET("/submissions", authMiddleware.Reviewer(), h.Review.GetSubmissions)
		admin.GET("/submissions/:id", authMiddleware.Reviewer(), h.Review.GetSubmissionByID)
		admin.PUT("/submissions/:id/review", authMiddleware.Reviewer(), h.Review.ReviewSubmission)

		admin.GET("/activity", authMiddleware.Admin(), h.Activity.GetActivity)
		admin.GET("/notifications", authMiddleware.Admin(), h.Notification.GetNotifications)

		admin.GET("/profiles", authMiddleware.Admin(), h.Profile.GetProfiles)
		admin.PUT("/profiles/:id/role", authMiddleware.SuperAdmin(), h.Profile.UpdateRole)
	}
}

// NewRouter builds the engine with the shared middleware stack.
func NewRouter(svc *application.Services, h *handlers.Handlers, appURL string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORSMiddleware(appURL))
	RegisterRoutes(r, svc, h)
	return r
}
