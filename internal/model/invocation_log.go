// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// InvocationLog is the record Bedrock delivers for every model invocation
// while invocation logging is enabled.
type InvocationLog struct {
	SchemaType    string           `json:"schemaType"`
	SchemaVersion string           `json:"schemaVersion"`
	Timestamp     time.Time        `json:"timestamp"`
	AccountID     string           `json:"accountId,omitempty"`
	Identity      *Identity        `json:"identity,omitempty"`
	Region        string           `json:"region,omitempty"`
	RequestID     string           `json:"requestId"`
	Operation     string           `json:"operation"`
	ModelID       string           `json:"modelId"`
	Input         InvocationInput  `json:"input"`
	Output        InvocationOutput `json:"output"`
	ErrorCode     string           `json:"errorCode,omitempty"`
}

type Identity struct {
	Arn string `json:"arn"`
}

type InvocationInput struct {
	InputContentType string          `json:"inputContentType,omitempty"`
	InputBodyJSON    json.RawMessage `json:"inputBodyJson,omitempty"`
	InputBodyS3Path  string          `json:"inputBodyS3Path,omitempty"`
	InputTokenCount  int             `json:"inputTokenCount,omitempty"`
}

type InvocationOutput struct {
	OutputContentType string          `json:"outputContentType,omitempty"`
	OutputBodyJSON    json.RawMessage `json:"outputBodyJson,omitempty"`
	OutputBodyS3Path  string          `json:"outputBodyS3Path,omitempty"`
	OutputTokenCount  int             `json:"outputTokenCount,omitempty"`
}

// ParseInvocationLog decodes a log message as an invocation log record.
// Messages of any other shape fail with MalformedResponse.
func ParseInvocationLog(message string) (InvocationLog, error) {
	var entry InvocationLog
	if err := json.Unmarshal([]byte(message), &entry); err != nil {
		return InvocationLog{}, NewAppError(ErrorMalformedResponse,
			WithErrorMessage("log message is not an invocation log record"), WithCause(err))
	}
	if entry.SchemaType != InvocationLogSchemaType {
		return InvocationLog{}, NewAppError(ErrorMalformedResponse,
			WithErrorMessage(fmt.Sprintf("unexpected schemaType %q", entry.SchemaType)))
	}
	if entry.ModelID == "" {
		return InvocationLog{}, NewAppError(ErrorMalformedResponse, WithErrorMessage("invocation log record has no modelId"))
	}
	return entry, nil
}
