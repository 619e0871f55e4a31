package models

import (
	"errors"
	"fmt"
)

// ValidationError rejects an empty or malformed dataset.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, a ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, a...)}
}

// ForecastError rejects a forecast request the model cannot serve,
// e.g. insufficient history or fitting divergence.
type ForecastError struct {
	Msg string
	Err error
}

func (e *ForecastError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ForecastError) Unwrap() error { return e.Err }

// NewForecastError builds a ForecastError with a formatted message.
func NewForecastError(format string, a ...interface{}) *ForecastError {
	return &ForecastError{Msg: fmt.Sprintf(format, a...)}
}

// SummaryUnavailableError marks a failed narrative summary. It is always
// recovered locally; the pipeline substitutes a placeholder instead of
// failing the request.
type SummaryUnavailableError struct {
	Err error
}

func (e *SummaryUnavailableError) Error() string {
	return fmt.Sprintf("summary unavailable: %v", e.Err)
}

func (e *SummaryUnavailableError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsForecast reports whether err is (or wraps) a ForecastError.
func IsForecast(err error) bool {
	var fe *ForecastError
	return errors.As(err, &fe)
}
