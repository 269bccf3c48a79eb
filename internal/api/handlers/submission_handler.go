package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/robolab-go/internal/application"
	"github.com/linskybing/robolab-go/internal/domain/submission"
	"github.com/linskybing/robolab-go/pkg/response"
)

type SubmissionHandler struct {
	svc *application.SubmissionService
}

func NewSubmissionHandler(svc *application.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

// CreateSubmission godoc
// @Summary Submit a project proposal
// @Description Public intake form. A confirmation email and admin alerts are queued after the submission is stored.
// @Tags submissions
// @Accept json
// @Produce json
// @Param input body submission.CreateSubmissionInput true "Proposal"
// @Success 201 {object} submission.Submission
// @Failure 400 {object} response.ErrorResponse "Validation failed"
// @Failure 503 {object} response.ErrorResponse "Data store unavailable"
// @Router /submissions [post]
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var input submission.CreateSubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
		return
	}
	sub, err := h.svc.Submit(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}
