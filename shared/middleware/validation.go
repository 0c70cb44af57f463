package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/eaglebank/bank-account-service/shared/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type BadRequestErrorResponse struct {
	Message string            `json:"message"`
	Details []ValidationError `json:"details"`
}

func ValidateRequest(obj any) []ValidationError {
	var validationErrors []ValidationError

	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Message: err.Error(), Type: "invalid"}}
	}
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fe.Field(),
			Message: getErrorMsg(fe),
			Type:    fe.Tag(),
		})
	}

	return validationErrors
}

func getErrorMsg(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "len":
		return "Value must have length " + err.Param()
	case "alpha":
		return "Value must contain letters only"
	case "oneof":
		return "Value must be one of: " + err.Param()
	case "gte":
		return "Value must be greater than or equal to " + err.Param()
	default:
		return "Invalid value"
	}
}

func RespondWithValidationError(c *gin.Context, validationErrors []ValidationError) {
	c.JSON(http.StatusBadRequest, BadRequestErrorResponse{
		Message: "Invalid request data",
		Details: validationErrors,
	})
}

func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"message": message,
	})
}

// RespondWithDomainError maps the error kinds of the models package onto HTTP
// status codes. Anything unclassified is logged and reported as a 500 with
// fallback as the message.
func RespondWithDomainError(c *gin.Context, err error, fallback string) {
	var (
		notFound   *models.NotFoundError
		validation *models.ValidationError
		conflict   *models.ConflictError
	)
	switch {
	case errors.As(err, &notFound):
		RespondWithError(c, http.StatusNotFound, notFound.Error())
	case errors.As(err, &validation):
		RespondWithValidationError(c, []ValidationError{{
			Field:   validation.Field,
			Message: validation.Message,
			Type:    "invalid",
		}})
	case errors.As(err, &conflict):
		RespondWithError(c, http.StatusConflict, conflict.Error())
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}
