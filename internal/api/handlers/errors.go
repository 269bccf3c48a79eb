package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/robolab-go/pkg/apperr"
	"github.com/linskybing/robolab-go/pkg/response"
)

// respondError writes err with the status code its kind maps to.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	body := response.ErrorResponse{Error: err.Error()}

	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		body.Error = "validation failed"
		body.Fields = ve.Fields
	case status == http.StatusServiceUnavailable:
		log.Printf("store error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		body.Error = "data store unavailable, please retry"
	case status == http.StatusInternalServerError:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		body.Error = "internal server error"
	}
	c.JSON(status, body)
}
