package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/robolab-go/internal/application"
	"github.com/linskybing/robolab-go/internal/domain/profile"
	"github.com/linskybing/robolab-go/pkg/response"
	"github.com/linskybing/robolab-go/pkg/utils"
)

type ProfileHandler struct {
	svc *application.AccessService
}

func NewProfileHandler(svc *application.AccessService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// GetProfiles godoc
// @Summary List staff profiles
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Success 200 {array} profile.Profile
// @Failure 403 {object} response.ErrorResponse
// @Router /admin/profiles [get]
func (h *ProfileHandler) GetProfiles(c *gin.Context) {
	profiles, err := h.svc.ListProfiles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// UpdateRole godoc
// @Summary Change a profile's role
// @Tags profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param input body profile.UpdateRoleInput true "New role"
// @Success 200 {object} profile.Profile
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Only super_admin may change roles"
// @Failure 404 {object} response.ErrorResponse "Profile not found"
// @Router /admin/profiles/{id}/role [put]
func (h *ProfileHandler) UpdateRole(c *gin.Context) {
	p, err := utils.GetPrincipalFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	var input profile.UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
		return
	}
	updated, err := h.svc.UpdateRole(c.Request.Context(), p, c.Param("id"), input.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
