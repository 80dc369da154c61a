// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
)

type ErrorType string

const (
	ErrorResourceAlreadyExists ErrorType = "ResourceAlreadyExists"
	ErrorAuthorization         ErrorType = "Authorization"
	ErrorServiceUnavailable    ErrorType = "ServiceUnavailable"
	ErrorMalformedResponse     ErrorType = "MalformedResponse"
	ErrorMissingConfiguration  ErrorType = "MissingConfiguration"
	ErrorInvalidRequest        ErrorType = "InvalidRequest"
	ErrorResourceNotFound      ErrorType = "ResourceNotFound"
	ErrorUnknown               ErrorType = "Unknown"
)

func (e ErrorType) String() string {
	return string(e)
}

// AppError is an error carrying its place in the workflow's error taxonomy.
type AppError interface {
	error

	ErrorType() ErrorType

	// Operation is the remote call or local step that failed, if known.
	Operation() string

	Unwrap() error
}

type appError struct {
	errorType ErrorType
	operation string
	message   string
	cause     error
}

type ErrorOption func(err *appError)

func WithOperation(op string) ErrorOption {
	return func(err *appError) {
		err.operation = op
	}
}

func WithErrorMessage(msg string) ErrorOption {
	return func(err *appError) {
		err.message = msg
	}
}

func WithCause(cause error) ErrorOption {
	return func(err *appError) {
		err.cause = cause
	}
}

func NewAppError(errorType ErrorType, opts ...ErrorOption) AppError {
	err := &appError{errorType: errorType}
	for _, option := range opts {
		option(err)
	}
	return err
}

func (e *appError) ErrorType() ErrorType {
	return e.errorType
}

func (e *appError) Operation() string {
	return e.operation
}

func (e *appError) Unwrap() error {
	return e.cause
}

func (e *appError) Error() string {
	msg := string(e.errorType)
	if e.operation != "" {
		msg = e.operation + ": " + msg
	}
	if e.message != "" {
		msg += ": " + e.message
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// GetErrorType returns the taxonomy type of the first AppError in err's
// chain, or ErrorUnknown.
func GetErrorType(err error) ErrorType {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.ErrorType()
	}
	return ErrorUnknown
}

func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	return GetErrorType(err) == errorType
}
