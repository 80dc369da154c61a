// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package subscriber

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws/bedrock-invocation-logging/internal/model"
)

func batch(t *testing.T, data events.CloudwatchLogsData) events.CloudwatchLogsEvent {
	payload, err := json.Marshal(data)
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err = zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return events.CloudwatchLogsEvent{
		AWSLogs: events.CloudwatchLogsRawData{Data: base64.StdEncoding.EncodeToString(buf.Bytes())},
	}
}

func record(t *testing.T, modelID string, in, out int) string {
	entry := model.InvocationLog{
		SchemaType:    model.InvocationLogSchemaType,
		SchemaVersion: model.InvocationLogSchemaVersion,
		RequestID:     "req-" + modelID,
		Operation:     "InvokeModel",
		ModelID:       modelID,
		Input:         model.InvocationInput{InputTokenCount: in},
		Output:        model.InvocationOutput{OutputTokenCount: out},
	}
	data, err := json.Marshal(entry)
	require.NoError(t, err)
	return string(data)
}

func TestHandleSummarizesBatch(t *testing.T) {
	event := batch(t, events.CloudwatchLogsData{
		MessageType: "DATA_MESSAGE",
		LogGroup:    model.DefaultLogGroupName,
		LogStream:   model.InvocationLogStreamName,
		LogEvents: []events.CloudwatchLogsLogEvent{
			{ID: "1", Message: record(t, "amazon.titan-text-lite-v1", 7, 10)},
			{ID: "2", Message: "not json"},
			{ID: "3", Message: record(t, "amazon.titan-text-lite-v1", 3, 5)},
			{ID: "4", Message: `{"schemaType":"Other","modelId":"x"}`},
		},
	})

	summary, err := NewHandler().Handle(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, Summary{
		LogGroup:     model.DefaultLogGroupName,
		Records:      2,
		Malformed:    2,
		InputTokens:  10,
		OutputTokens: 15,
		Models:       map[string]int{"amazon.titan-text-lite-v1": 2},
	}, summary)
}

func TestHandleSkipsControlMessages(t *testing.T) {
	event := batch(t, events.CloudwatchLogsData{
		MessageType: controlMessageType,
		LogEvents:   []events.CloudwatchLogsLogEvent{{ID: "1", Message: "CWL CONTROL MESSAGE: Checking health of destination"}},
	})

	summary, err := NewHandler().Handle(context.Background(), event)
	require.NoError(t, err)
	assert.Zero(t, summary.Records)
	assert.Zero(t, summary.Malformed)
}

func TestHandleRejectsUndecodableBatch(t *testing.T) {
	event := events.CloudwatchLogsEvent{AWSLogs: events.CloudwatchLogsRawData{Data: "!!not-base64"}}

	_, err := NewHandler().Handle(context.Background(), event)
	require.Error(t, err)
	assert.True(t, model.IsErrorType(err, model.ErrorMalformedResponse))
}
