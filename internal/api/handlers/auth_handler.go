package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/robolab-go/internal/application"
	"github.com/linskybing/robolab-go/internal/domain/account"
	"github.com/linskybing/robolab-go/pkg/response"
	"github.com/linskybing/robolab-go/pkg/utils"
)

type AuthHandler struct {
	svc    *application.AuthService
	access *application.AccessService
	secure bool
}

func NewAuthHandler(svc *application.AuthService, access *application.AccessService, secure bool) *AuthHandler {
	return &AuthHandler{svc: svc, access: access, secure: secure}
}

// Login godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param input body account.LoginInput true "Credentials"
// @Success 200 {object} account.SessionDTO
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 401 {object} response.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req account.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	token, sess, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, maxAge, "/", "", h.secure, true)

	dto := account.SessionDTO{
		Token:     token,
		SessionID: sess.ID,
		AccountID: sess.AccountID,
		Email:     sess.Email,
		ExpiresAt: sess.ExpiresAt,
	}
	prof, err := h.access.ResolveProfile(c.Request.Context(), account.Principal{
		AccountID: sess.AccountID,
		Email:     sess.Email,
		SessionID: sess.ID,
	})
	if err == nil {
		dto.Role = string(prof.Role)
		dto.IsAdmin = prof.IsAdmin()
	}
	c.JSON(http.StatusOK, dto)
}

// Logout godoc
// @Summary End the current session
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.MessageResponse "Logout successful"
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	p, err := utils.GetPrincipalFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	if err := h.svc.SignOut(c.Request.Context(), p.SessionID); err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie("token", "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Logout successful"})
}

// Session godoc
// @Summary Current session and role
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} account.SessionDTO
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	p, err := utils.GetPrincipalFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	prof, err := h.access.ResolveProfile(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	dto := account.SessionDTO{
		SessionID: p.SessionID,
		AccountID: p.AccountID,
		Email:     p.Email,
		Role:      string(prof.Role),
		IsAdmin:   prof.IsAdmin(),
	}
	if claims.ExpiresAt != nil {
		dto.ExpiresAt = claims.ExpiresAt.Time
	}
	c.JSON(http.StatusOK, dto)
}
