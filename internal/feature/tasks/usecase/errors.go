// Package usecase implements the business logic for the tasks feature.
package usecase

import "errors"

var (
	// ErrTaskNotFound is returned when a task does not exist or belongs to
	// another user. The two cases are deliberately indistinguishable so the
	// existence of foreign tasks is never leaked.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidTitle is returned when the title fails the minimum-shape check.
	ErrInvalidTitle = errors.New("title must be at least 3 characters")

	// ErrInvalidStatus is returned when an unknown status value is supplied.
	ErrInvalidStatus = errors.New("status must be one of pending, in-progress, completed")
)
