// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package awserr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"

	"github.com/aws/bedrock-invocation-logging/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected model.ErrorType
	}{
		{"already exists", &smithy.GenericAPIError{Code: "ResourceAlreadyExistsException"}, model.ErrorResourceAlreadyExists},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "no"}, model.ErrorAuthorization},
		{"throttled", &smithy.GenericAPIError{Code: "ThrottlingException"}, model.ErrorServiceUnavailable},
		{"validation", &smithy.GenericAPIError{Code: "ValidationException"}, model.ErrorInvalidRequest},
		{"not found", &smithy.GenericAPIError{Code: "ResourceNotFoundException"}, model.ErrorResourceNotFound},
		{"unknown client code", &smithy.GenericAPIError{Code: "SomethingNew", Fault: smithy.FaultClient}, model.ErrorUnknown},
		{"unknown server code", &smithy.GenericAPIError{Code: "SomethingNew", Fault: smithy.FaultServer}, model.ErrorServiceUnavailable},
		{"wrapped api error", fmt.Errorf("operation error: %w", &smithy.GenericAPIError{Code: "AccessDenied"}), model.ErrorAuthorization},
		{"transport", errors.New("dial tcp 127.0.0.1:1: connection refused"), model.ErrorServiceUnavailable},
		{"canceled", context.Canceled, model.ErrorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify("Op", tt.err)
			assert.Equal(t, tt.expected, model.GetErrorType(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestClassifyKeepsAppErrors(t *testing.T) {
	original := model.NewAppError(model.ErrorMalformedResponse)
	assert.Same(t, original, Classify("Op", original))
	assert.NoError(t, Classify("Op", nil))
}

func TestIsAlreadyExists(t *testing.T) {
	assert.True(t, IsAlreadyExists(Classify("CreateLogGroup", &smithy.GenericAPIError{Code: "ResourceAlreadyExistsException"})))
	assert.False(t, IsAlreadyExists(Classify("CreateLogGroup", &smithy.GenericAPIError{Code: "AccessDeniedException"})))
}
