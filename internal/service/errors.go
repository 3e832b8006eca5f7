package service

import (
	"errors"
	"fmt"

	"ambientefest/internal/repository"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrIDRequired   = fmt.Errorf("%w: id is required", ErrInvalidInput)
	ErrInvalidID    = fmt.Errorf("%w: id must be numeric", ErrInvalidInput)

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserBlocked        = errors.New("user is blocked")
	ErrEmailTaken         = errors.New("email already registered")
	ErrSignupUnverified   = errors.New("account was created but could not be verified")

	ErrSlotUnavailable  = errors.New("time slot is not available")
	ErrInvalidTimeRange = errors.New("start time must be before end time")

	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	ErrCommentForbidden = errors.New("only clients can comment")

	ErrNoImages      = errors.New("at least one image is required")
	ErrInvalidImage  = errors.New("file is not an accepted image")
	ErrImageTooLarge = errors.New("image exceeds the size limit")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// translate maps repository sentinels onto service ones and leaves BaaS
// errors untouched for the HTTP layer.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, repository.ErrEmailTaken):
		return fmt.Errorf("%w: %w", ErrEmailTaken, err)
	}
	return err
}
