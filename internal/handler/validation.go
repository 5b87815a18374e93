package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/turnoya/booking-api/pkg/errors"
)

// BindJSON binds the request body and converts validator failures into a
// ValidationError carrying per-field messages.
func BindJSON(c *gin.Context, obj interface{}) error {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperrors.FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: validationMessage(fe),
			})
		}
		return apperrors.Validation("invalid request", fields...)
	}
	return apperrors.Validation("malformed request body")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid":
		return "must be a valid id"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	case "gt", "gte":
		return "is too small"
	case "lte", "lt":
		return "is too large"
	case "datetime":
		return "must be a valid date"
	case "oneof":
		return "has an unsupported value"
	default:
		return "is invalid"
	}
}
