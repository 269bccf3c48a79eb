package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/linskybing/robolab-go/internal/application"
	"github.com/linskybing/robolab-go/internal/domain/account"
	"github.com/linskybing/robolab-go/internal/domain/profile"
	"github.com/linskybing/robolab-go/pkg/apperr"
	"github.com/linskybing/robolab-go/pkg/response"
	"github.com/linskybing/robolab-go/pkg/utils"
)

// ProfileKey holds the resolved profile after a role gate passes.
const ProfileKey = "profile"

// Auth handles authorization middleware
type Auth struct {
	access *application.AccessService
}

// NewAuth creates a new Auth middleware instance
func NewAuth(access *application.AccessService) *Auth {
	return &Auth{access: access}
}

type gate func(ctx context.Context, p account.Principal) (profile.Profile, error)

func (a *Auth) require(check gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := utils.GetPrincipalFromContext(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
			c.Abort()
			return
		}
		prof, err := check(c.Request.Context(), p)
		if err != nil {
			status := apperr.HTTPStatus(err)
			msg := err.Error()
			if status == http.StatusForbidden {
				msg = "Permission denied"
			}
			c.JSON(status, response.ErrorResponse{Error: msg})
			c.Abort()
			return
		}
		c.Set(ProfileKey, prof)
		c.Next()
	}
}

// Reviewer admits principals allowed to review submissions.
func (a *Auth) Reviewer() gin.HandlerFunc {
	return a.require(a.access.RequireReviewer)
}

// Admin admits super_admin and admin profiles.
func (a *Auth) Admin() gin.HandlerFunc {
	return a.require(a.access.RequireAdmin)
}

// SuperAdmin admits super_admin profiles only.
func (a *Auth) SuperAdmin() gin.HandlerFunc {
	return a.require(func(ctx context.Context, p account.Principal) (profile.Profile, error) {
		prof, err := a.access.ResolveProfile(ctx, p)
		if err != nil {
			return profile.Profile{}, err
		}
		if prof.Role != profile.RoleSuperAdmin {
			return profile.Profile{}, apperr.ErrForbidden
		}
		return prof, nil
	})
}

// CORSMiddleware allows the configured frontend origin and local development hosts.
func CORSMiddleware(appURL string) gin.HandlerFunc {
	appURL = strings.TrimRight(appURL, "/")
	config := cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if appURL != "" && origin == appURL {
				return true
			}
			if strings.HasPrefix(origin, "http://localhost:") {
				return true
			}
			if strings.HasPrefix(origin, "http://127.0.0.1:") {
				return true
			}
			return false
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	return cors.New(config)
}
