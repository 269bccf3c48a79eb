package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/robolab-go/internal/application"
	"github.com/linskybing/robolab-go/internal/domain/submission"
	"github.com/linskybing/robolab-go/pkg/apperr"
	"github.com/linskybing/robolab-go/pkg/response"
	"github.com/linskybing/robolab-go/pkg/utils"
)

type ReviewHandler struct {
	svc       *application.ReviewService
	dashboard *application.DashboardService
}

func NewReviewHandler(svc *application.ReviewService, dashboard *application.DashboardService) *ReviewHandler {
	return &ReviewHandler{svc: svc, dashboard: dashboard}
}

func parseListFilter(c *gin.Context) (submission.ListFilter, error) {
	filter := submission.ListFilter{Query: strings.TrimSpace(c.Query("q"))}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" && raw != "all" {
		st := submission.Status(raw)
		if !st.Valid() {
			return filter, apperr.Invalid("status", "unknown status "+raw)
		}
		filter.Status = &st
	}
	return filter, nil
}

// GetDashboard godoc
// @Summary Admin dashboard
// @Description Status counts over all submissions plus the filtered list, newest first.
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "Exact status filter"
// @Param q query string false "Matches title, student name, roll number or email"
// @Success 200 {object} application.Dashboard
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /admin/dashboard [get]
func (h *ReviewHandler) GetDashboard(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	dash, err := h.dashboard.Load(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// GetSubmissions godoc
// @Summary List submissions
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "Exact status filter"
// @Param q query string false "Free-text filter"
// @Success 200 {array} submission.Submission
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /admin/submissions [get]
func (h *ReviewHandler) GetSubmissions(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	subs, err := h.dashboard.ListSubmissions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// GetSubmissionByID godoc
// @Summary Get submission detail
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} submission.Submission
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Submission not found"
// @Router /admin/submissions/{id} [get]
func (h *ReviewHandler) GetSubmissionByID(c *gin.Context) {
	p, err := utils.GetPrincipalFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	sub, err := h.svc.GetForReviewer(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// ReviewSubmission godoc
// @Summary Change a submission's status
// @Description Approved and rejected require comments. Supplying version enables a conflict check.
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param input body submission.ReviewSubmissionInput true "Decision"
// @Success 200 {object} submission.Submission
// @Failure 400 {object} response.ErrorResponse "Validation failed"
// @Failure 403 {object} response.ErrorResponse "Not a reviewer"
// @Failure 404 {object} response.ErrorResponse "Submission not found"
// @Failure 409 {object} response.ErrorResponse "Version conflict"
// @Router /admin/submissions/{id}/review [put]
func (h *ReviewHandler) ReviewSubmission(c *gin.Context) {
	p, err := utils.GetPrincipalFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	var input submission.ReviewSubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
		return
	}
	sub, err := h.svc.Review(c.Request.Context(), application.ReviewInput{
		SubmissionID:    c.Param("id"),
		Status:          input.Status,
		Comments:        input.Comments,
		Reviewer:        p,
		ExpectedVersion: input.Version,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
