package errors

import (
	stderrors "errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rishabhcod/event-registration-system2/service"
)

func RaiseError(context *fiber.Ctx, status int, message string, data interface{}) error {
	return context.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    data})
}

func RaisePermissionsError(context *fiber.Ctx) error {
	return RaiseError(context, fiber.StatusUnauthorized, "unauthorized", nil)
}

func RaiseInternalServerError(context *fiber.Ctx, message string) error {
	return RaiseError(context, fiber.StatusInternalServerError, message, nil)
}

func RaiseBadRequestError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusBadRequest, "bad request", data)
}

func RaiseNotFoundError(context *fiber.Ctx, message string) error {
	return RaiseError(context, fiber.StatusNotFound, message, nil)
}

func RaiseConflictError(context *fiber.Ctx, message string) error {
	return RaiseError(context, fiber.StatusConflict, message, nil)
}

// RaiseServiceError renders a service error. Unknown errors are store failures: the cause
// goes to the log and the caller only sees failureMessage.
func RaiseServiceError(context *fiber.Ctx, log *slog.Logger, err error, failureMessage string) error {
	switch {
	case stderrors.Is(err, service.ErrValidation):
		return RaiseBadRequestError(context, strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": "))
	case stderrors.Is(err, service.ErrEventNotFound):
		return RaiseNotFoundError(context, err.Error())
	case stderrors.Is(err, service.ErrRegistrationNotFound):
		return RaiseNotFoundError(context, err.Error())
	case stderrors.Is(err, service.ErrNoSeatsAvailable), stderrors.Is(err, service.ErrEventUnavailable):
		return RaiseConflictError(context, err.Error())
	case stderrors.Is(err, service.ErrInvalidCredentials):
		return RaiseError(context, fiber.StatusUnauthorized, err.Error(), nil)
	case stderrors.Is(err, service.ErrUnauthorized):
		return RaisePermissionsError(context)
	}

	log.Error(failureMessage, "method", context.Method(), "path", context.Path(), "err", err)
	return RaiseInternalServerError(context, failureMessage)
}
