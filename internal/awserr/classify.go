// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package awserr

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"

	"github.com/aws/bedrock-invocation-logging/internal/model"
)

var codeToErrorType = map[string]model.ErrorType{
	"ResourceAlreadyExistsException": model.ErrorResourceAlreadyExists,
	"ConflictException":              model.ErrorResourceAlreadyExists,

	"AccessDeniedException":         model.ErrorAuthorization,
	"AccessDenied":                  model.ErrorAuthorization,
	"UnauthorizedOperation":         model.ErrorAuthorization,
	"UnrecognizedClientException":   model.ErrorAuthorization,
	"InvalidSignatureException":     model.ErrorAuthorization,
	"ExpiredTokenException":         model.ErrorAuthorization,
	"IncompleteSignature":           model.ErrorAuthorization,
	"MissingAuthenticationToken":    model.ErrorAuthorization,
	"InvalidClientTokenId":          model.ErrorAuthorization,
	"AuthFailure":                   model.ErrorAuthorization,
	"NotAuthorized":                 model.ErrorAuthorization,
	"UnauthorizedException":         model.ErrorAuthorization,
	"SignatureDoesNotMatch":         model.ErrorAuthorization,
	"OperationAbortedException":     model.ErrorServiceUnavailable,
	"ServiceUnavailableException":   model.ErrorServiceUnavailable,
	"ServiceUnavailable":            model.ErrorServiceUnavailable,
	"ThrottlingException":           model.ErrorServiceUnavailable,
	"InternalServerException":       model.ErrorServiceUnavailable,
	"InternalFailure":               model.ErrorServiceUnavailable,
	"ModelNotReadyException":        model.ErrorServiceUnavailable,
	"ModelTimeoutException":         model.ErrorServiceUnavailable,
	"ServiceQuotaExceededException": model.ErrorServiceUnavailable,
	"LimitExceededException":        model.ErrorServiceUnavailable,

	"ValidationException":       model.ErrorInvalidRequest,
	"InvalidParameterException": model.ErrorInvalidRequest,
	"InvalidParameterValue":     model.ErrorInvalidRequest,
	"SerializationException":    model.ErrorInvalidRequest,
	"ModelErrorException":       model.ErrorInvalidRequest,
	"ResourceNotFoundException": model.ErrorResourceNotFound,
}

// Classify maps an error returned by an AWS client onto the workflow's error
// taxonomy. API errors are matched by code; errors that never reached the
// service (DNS, connection refused, timeouts) are ServiceUnavailable.
// A nil err returns nil.
func Classify(operation string, err error) error {
	if err == nil {
		return nil
	}

	var appErr model.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.Canceled) {
		return model.NewAppError(model.ErrorUnknown, model.WithOperation(operation), model.WithCause(err))
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		errorType, ok := codeToErrorType[apiErr.ErrorCode()]
		if !ok {
			errorType = model.ErrorUnknown
			if apiErr.ErrorFault() == smithy.FaultServer {
				errorType = model.ErrorServiceUnavailable
			}
		}
		return model.NewAppError(errorType, model.WithOperation(operation), model.WithCause(err))
	}

	return model.NewAppError(model.ErrorServiceUnavailable, model.WithOperation(operation), model.WithCause(err))
}

// IsAlreadyExists reports whether err is the benign "already exists"
// outcome of a create call.
func IsAlreadyExists(err error) bool {
	return model.IsErrorType(err, model.ErrorResourceAlreadyExists)
}
