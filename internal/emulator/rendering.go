// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package emulator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"
)

const (
	ErrorTypeResourceAlreadyExists = "ResourceAlreadyExistsException"
	ErrorTypeResourceNotFound      = "ResourceNotFoundException"
	ErrorTypeInvalidParameter      = "InvalidParameterException"
	ErrorTypeValidation            = "ValidationException"
	ErrorTypeAccessDenied          = "AccessDeniedException"
	ErrorTypeUnknownOperation      = "UnknownOperationException"
	ErrorTypeInternalServer        = "InternalServerException"
	ErrorTypeServiceUnavailable    = "ServiceUnavailableException"

	headerErrorType = "X-Amzn-ErrorType"
	headerRequestID = "X-Amzn-RequestId"

	contentTypeAmzJSON11 = "application/x-amz-json-1.1"
)

// RenderAWSError writes an error in the shape both the JSON 1.1 and REST
// JSON protocols decode.
func RenderAWSError(w http.ResponseWriter, r *http.Request, status int, errorType string, format string, args ...interface{}) {
	w.Header().Set(headerErrorType, errorType)
	render.Status(r, status)
	render.JSON(w, r, &errorResponse{
		Type:    errorType,
		Message: fmt.Sprintf(format, args...),
	})
}

// RenderInternalServerError logs err and reports a server fault.
func RenderInternalServerError(w http.ResponseWriter, r *http.Request, err error) {
	log.WithError(err).Warn("Emulator request failed")
	RenderAWSError(w, r, http.StatusInternalServerError, ErrorTypeInternalServer, "Internal server error")
}

// renderAmzJSON writes a JSON 1.1 success body. render.JSON fixes the
// content type to application/json, which this protocol does not use.
func renderAmzJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		RenderInternalServerError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypeAmzJSON11)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.WithError(err).Warn("Error while rendering response")
	}
}
