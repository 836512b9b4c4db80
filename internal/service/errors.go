package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"civic-forum-api/internal/repository"
	"civic-forum-api/internal/response"
)

// maxCommentBodyLength is counted in runes
const maxCommentBodyLength = 5000

// translateError maps an error that escaped a repository call or a transaction
// onto an AppError. AppErrors raised inside the unit of work pass through unchanged.
func translateError(err error, notFoundMessage, failMessage string) error {
	var appErr *response.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, gorm.ErrRecordNotFound):
		return response.NewNotFoundError(notFoundMessage, "")
	case errors.Is(err, repository.ErrConflict):
		return response.NewConflictError("Concurrent update, please retry", "")
	default:
		return response.NewAppError(response.ErrCodeInternal, failMessage, err.Error())
	}
}

// notFoundOr turns gorm.ErrRecordNotFound into a NOT_FOUND AppError and returns other errors as is
func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewNotFoundError(message, "")
	}
	return err
}

func validateCommentBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return response.NewValidationError("Comment body is required", "body")
	}
	if utf8.RuneCountInString(body) > maxCommentBodyLength {
		return response.NewValidationError("Comment body must be at most 5000 characters", "body")
	}
	return nil
}
