package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"wanderlog/places-service/internal/app/places/entity"
)

// respondSuccess отдает ответ в едином конверте {status, message, data}
func respondSuccess(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, entity.Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// respondList отдает список в конверте со вложенным полем data:
// {"status": ..., "message": ..., "data": {"data": [...]}}
func respondList(c *gin.Context, code int, message string, items interface{}) {
	c.JSON(code, entity.Response{
		Status:  "success",
		Message: message,
		Data:    entity.ListData{Data: items},
	})
}

// respondError отдает ошибку в том же конверте без полезной нагрузки
func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, entity.Response{
		Status:  "error",
		Message: message,
	})
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
