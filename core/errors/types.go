// ABOUTME: Typed errors raised by the feed service
// ABOUTME: Each carries the code the API reports next to the HTTP status

package errors

import (
	"errors"
	"fmt"
)

// Error codes reported to API callers
const (
	CodeFeedUnavailable = "feed-unavailable"
	CodeFeedInvalid     = "feed-invalid"
	CodeBadParams       = "badparams"
)

// Coded is implemented by errors that have an API error code
type Coded interface {
	error
	Code() string
}

// ValidationError reports a request parameter that cannot be used
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Code() string { return CodeBadParams }

// FeedUnavailableError is returned when syndication feeds are disabled
type FeedUnavailableError struct{}

func (e *FeedUnavailableError) Error() string {
	return "Syndication feeds are not available"
}

func (e *FeedUnavailableError) Code() string { return CodeFeedUnavailable }

// InvalidFeedFormatError is returned for a format outside the configured set
type InvalidFeedFormatError struct {
	Format  string
	Allowed []string
}

func (e *InvalidFeedFormatError) Error() string {
	return fmt.Sprintf("Invalid subscription feed type: %q", e.Format)
}

func (e *InvalidFeedFormatError) Code() string { return CodeFeedInvalid }

// CodeOf returns the code of the first Coded error in err's chain, or ""
func CodeOf(err error) string {
	var coded Coded
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}

func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

func IsFeedUnavailable(err error) bool {
	var unavailableErr *FeedUnavailableError
	return errors.As(err, &unavailableErr)
}

func IsInvalidFeedFormat(err error) bool {
	var formatErr *InvalidFeedFormatError
	return errors.As(err, &formatErr)
}

// WrapError prefixes err with message, keeping it unwrappable. nil stays nil.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
