// Package apperror defines the error kinds returned by the services and how they map to HTTP responses.
package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnect-backend/src/lib"
)

type Kind int

const (
	KindStoreFailure Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindForbidden
	KindUnauthenticated
	KindAlreadyLiked
	KindNotLiked
)

// FieldErrors maps an input field name to a human readable message.
type FieldErrors map[string]string

type AppError struct {
	Kind    Kind
	Message string
	Fields  FieldErrors
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Code is the machine readable identifier sent to clients.
func (e *AppError) Code() string {
	switch e.Kind {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindForbidden:
		return "FORBIDDEN"
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindAlreadyLiked:
		return "ALREADY_LIKED"
	case KindNotLiked:
		return "NOT_LIKED"
	default:
		return "STORE_FAILURE"
	}
}

// StatusCode returns the HTTP status for the error kind.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindValidation, KindAlreadyLiked, KindNotLiked:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindForbidden:
		return fiber.StatusForbidden
	case KindUnauthenticated:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func Validation(fields FieldErrors) *AppError {
	return &AppError{Kind: KindValidation, Message: "Invalid input", Fields: fields}
}

// InvalidField is a validation error for a single field.
func InvalidField(field, message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Fields: FieldErrors{field: message}}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Conflict(field, message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message, Fields: FieldErrors{field: message}}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func Unauthenticated(message string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: message}
}

func AlreadyLiked() *AppError {
	return &AppError{Kind: KindAlreadyLiked, Message: "User already liked this post"}
}

func NotLiked() *AppError {
	return &AppError{Kind: KindNotLiked, Message: "You have not yet liked this post"}
}

// StoreFailure wraps an error coming from the persistence layer.
func StoreFailure(op string, err error) *AppError {
	return &AppError{Kind: KindStoreFailure, Message: op + " failed", Err: err}
}

// Is reports whether err carries an AppError of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// Handler is the fiber ErrorHandler that renders AppErrors and fiber errors as JSON.
// onInternal is called for 5xx responses so the caller can log them.
func Handler(onInternal func(c *fiber.Ctx, err error)) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *AppError
		if errors.As(err, &appErr) {
			if appErr.StatusCode() >= fiber.StatusInternalServerError && onInternal != nil {
				onInternal(c, err)
			}
			body := fiber.Map{
				"message": appErr.Message,
				"code":    appErr.Code(),
			}
			if len(appErr.Fields) > 0 {
				body["errors"] = appErr.Fields
			}
			if appErr.Kind == KindStoreFailure {
				body["message"] = "Server error"
			}
			return c.Status(appErr.StatusCode()).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(lib.MessageResponse(fiberErr.Message))
		}

		if onInternal != nil {
			onInternal(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
			"code":    "INTERNAL_ERROR",
		})
	}
}
