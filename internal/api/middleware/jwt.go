package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/linskybing/robolab-go/internal/application"
	"github.com/linskybing/robolab-go/internal/domain/account"
	"github.com/linskybing/robolab-go/pkg/apperr"
	"github.com/linskybing/robolab-go/pkg/response"
	"github.com/linskybing/robolab-go/pkg/types"
	"github.com/linskybing/robolab-go/pkg/utils"
)

// TokenCookie is the cookie the login handler sets alongside the JSON token.
const TokenCookie = "token"

// BearerToken reads the token from the Authorization header or the token cookie.
func BearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", errors.New("authorization header format must be Bearer {token}")
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", errors.New("authorization required (header or cookie)")
}

// SessionAuthMiddleware resolves the bearer token to a live session and stores
// the principal in the context. Signed-out and expired sessions are rejected.
func SessionAuthMiddleware(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := BearerToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
			c.Abort()
			return
		}

		sess, err := auth.GetSession(c.Request.Context(), tokenStr)
		if err != nil {
			status := apperr.HTTPStatus(err)
			msg := "invalid or expired session"
			if status != http.StatusUnauthorized {
				msg = err.Error()
			}
			c.JSON(status, response.ErrorResponse{Error: msg})
			c.Abort()
			return
		}

		claims := &types.Claims{
			AccountID: sess.AccountID,
			Email:     sess.Email,
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        sess.ID,
				ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			},
		}
		utils.SetPrincipal(c, claims, account.Principal{
			AccountID: sess.AccountID,
			Email:     sess.Email,
			SessionID: sess.ID,
		})
		c.Next()
	}
}
