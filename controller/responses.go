package controller

import (
	"errors"
	"net/http"

	"enquirydesk-backend/models"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the response envelope. Invalid IDs
// are a 400, missing records a 404, validation failures a 400 with the
// field-level list, everything else a 500.
func respondError(c *gin.Context, message string, err error) {
	var verrs models.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Success: false,
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: verrs.Error(),
			},
			Errors: verrs,
		})
	case errors.Is(err, models.ErrInvalidID):
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Success: false,
			Code:    http.StatusBadRequest,
			Message: message,
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.APIResponse{
			Success: false,
			Code:    http.StatusNotFound,
			Message: message,
			Error: &models.APIError{
				Type:    "NotFoundError",
				Details: err.Error(),
			},
		})
	default:
		// Raw store/infra error text stays in the logs; callers only get
		// a generic message.
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Success: false,
			Code:    http.StatusInternalServerError,
			Message: message,
			Error: &models.APIError{
				Type:    "DatabaseError",
				Details: "An internal error occurred",
			},
		})
	}
}

func respondBadRequest(c *gin.Context, message, details string) {
	c.JSON(http.StatusBadRequest, models.APIResponse{
		Success: false,
		Code:    http.StatusBadRequest,
		Message: message,
		Error: &models.APIError{
			Type:    "ValidationError",
			Details: details,
		},
	})
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, models.APIResponse{
		Success: true,
		Code:    http.StatusCreated,
		Message: message,
		Data:    data,
	})
}
