package controllers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Mawaqit/models"
)

// respondError maps service errors onto HTTP statuses. message is what the
// client sees in "error".
func respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": message, "details": err.Error()})
	case errors.Is(err, models.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{"error": message, "details": err.Error()})
	case errors.Is(err, models.ErrStorageUnavailable):
		log.Error(message, "path", c.FullPath(), "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": message, "details": "storage temporarily unavailable", "retryable": true})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": message, "details": err.Error()})
	default:
		log.Error(message, "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message, "details": err.Error()})
	}
}

// RegisterBindingValidators teaches gin's validator the profile rules.
func RegisterBindingValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return models.RegisterValidators(v)
}
