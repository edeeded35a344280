// Package entity defines the domain entities for the tasks feature.
package entity

import "time"

// Status is the lifecycle state of a task.
type Status string

const (
	// StatusPending is the default state of a newly created task.
	StatusPending Status = "pending"
	// StatusInProgress marks a task that has been started.
	StatusInProgress Status = "in-progress"
	// StatusCompleted marks a finished task.
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the accepted status values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task represents a single task record owned by exactly one user.
type Task struct {
	// ID is the unique identifier for the task.
	ID uint `gorm:"primaryKey"`

	// OwnerID references the user that created the task.
	// Every read/update/delete is scoped by this column so that
	// foreign tasks are indistinguishable from missing ones.
	OwnerID uint `gorm:"index;not null"`

	// Title is the required task title.
	Title string `gorm:"size:255;not null"`

	// Description holds optional task details.
	Description string `gorm:"size:1000"`

	// Status is one of pending, in-progress, completed.
	Status Status `gorm:"size:32;not null;default:pending"`

	// CreatedAt is the timestamp when the task was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the task was last updated.
	UpdatedAt time.Time
}
