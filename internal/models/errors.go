package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is
	ErrValidation = errors.New("validation error")
	// ErrNotFound matches every *NotFoundError via errors.Is
	ErrNotFound = errors.New("not found")
	// ErrAlreadyVoted matches every *AlreadyVotedError via errors.Is
	ErrAlreadyVoted = errors.New("already voted")
)

// ValidationError represents bad input on a single field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError represents a reference to a resource that does not exist
type NotFoundError struct {
	Resource string `json:"resource"`
	ID       string `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyVotedError is returned when a client votes twice on the same news item
type AlreadyVotedError struct {
	ClientID string `json:"clientId"`
	NewsID   string `json:"newsId"`
}

func (e *AlreadyVotedError) Error() string {
	return fmt.Sprintf("client %q already voted on news %q", e.ClientID, e.NewsID)
}

func (e *AlreadyVotedError) Is(target error) bool {
	return target == ErrAlreadyVoted
}
