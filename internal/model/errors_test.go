// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	testCases := []struct {
		name          string
		err           AppError
		expectedError string
	}{
		{
			name:          "type only",
			err:           NewAppError(ErrorMalformedResponse),
			expectedError: "MalformedResponse",
		},
		{
			name:          "with operation and cause",
			err:           NewAppError(ErrorAuthorization, WithOperation("CreateLogGroup"), WithCause(errors.New("not allowed"))),
			expectedError: "CreateLogGroup: Authorization: not allowed",
		},
		{
			name:          "with message",
			err:           NewAppError(ErrorMissingConfiguration, WithErrorMessage("LOGGINGROLEARN")),
			expectedError: "MissingConfiguration: LOGGINGROLEARN",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedError, tc.err.Error())
		})
	}
}

func TestIsErrorTypeThroughWrapping(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("enable logging: %w", NewAppError(ErrorServiceUnavailable, WithCause(cause)))

	assert.True(t, IsErrorType(err, ErrorServiceUnavailable))
	assert.False(t, IsErrorType(err, ErrorAuthorization))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrorUnknown, GetErrorType(errors.New("plain")))
	assert.False(t, IsErrorType(nil, ErrorUnknown))
}
