package pkg

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	appError "github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/sirupsen/logrus"
)

func SuccessResponse[T any](c *fiber.Ctx, statusCode int, data T, message string) error {
	return c.Status(statusCode).JSON(models.WebResponse[T]{
		Success:    true,
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
	})
}

// ErrorResponse renders err with the error envelope. Stacks are only
// exposed when production is false.
func ErrorResponse(c *fiber.Ctx, err error, production bool) error {
	resp := models.ErrorResponse{Errors: []string{}}
	status := fiber.StatusInternalServerError

	var appErr *appError.AppError
	var fiberErr *fiber.Error
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &appErr):
		status = appErr.StatusCode
		resp.Message = appErr.Message
		if appErr.Errors != nil {
			resp.Errors = appErr.Errors
		}
		if !production {
			resp.Stack = appErr.Stack()
		}
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		if status < 400 || status > 599 {
			status = appError.KindFromStatus(status).StatusCode()
		}
		resp.Message = fiberErr.Message
	case errors.As(err, &validationErrs):
		status = fiber.StatusBadRequest
		resp.Message = "Validation failed"
		resp.Errors = ValidationMessages(validationErrs)
	default:
		logrus.Errorf("[%s] %s", reflect.TypeOf(err).String(), err)
		resp.Message = "Internal Server Error"
		if !production {
			resp.Message = err.Error()
			resp.Stack = fmt.Sprintf("%+v", err)
		}
	}

	return c.Status(status).JSON(resp)
}

// NewErrorHandler is installed as fiber's ErrorHandler so every error leaves
// through ErrorResponse.
func NewErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return ErrorResponse(c, err, production)
	}
}

// ValidationMessages flattens validator errors into one line per field.
func ValidationMessages(errs validator.ValidationErrors) []string {
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s failed on %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		messages = append(messages, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return messages
}
