// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package subscriber consumes invocation log records delivered to a Lambda
// function through a CloudWatch Logs subscription filter.
package subscriber

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	log "github.com/sirupsen/logrus"

	"github.com/aws/bedrock-invocation-logging/internal/model"
)

const controlMessageType = "CONTROL_MESSAGE"

// Summary is returned to the Lambda runtime for every batch.
type Summary struct {
	LogGroup     string         `json:"logGroup,omitempty"`
	Records      int            `json:"records"`
	Malformed    int            `json:"malformed"`
	InputTokens  int            `json:"inputTokens"`
	OutputTokens int            `json:"outputTokens"`
	Models       map[string]int `json:"models"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Handle decodes one subscription batch. Records that are not invocation
// logs are counted in Malformed and do not fail the batch; only a batch
// that cannot be decoded at all is an error.
func (h *Handler) Handle(ctx context.Context, event events.CloudwatchLogsEvent) (Summary, error) {
	data, err := event.AWSLogs.Parse()
	if err != nil {
		return Summary{}, model.NewAppError(model.ErrorMalformedResponse,
			model.WithOperation("ParseSubscriptionBatch"), model.WithErrorMessage("could not decode subscription batch"), model.WithCause(err))
	}

	summary := Summary{LogGroup: data.LogGroup, Models: map[string]int{}}
	if data.MessageType == controlMessageType {
		log.WithField("logGroup", data.LogGroup).Debug("Skipping control message")
		return summary, nil
	}

	for _, ev := range data.LogEvents {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		entry, err := model.ParseInvocationLog(ev.Message)
		if err != nil {
			summary.Malformed++
			log.WithError(err).WithField("eventId", ev.ID).Warn("Skipping malformed invocation log record")
			continue
		}

		summary.Records++
		summary.Models[entry.ModelID]++
		summary.InputTokens += entry.Input.InputTokenCount
		summary.OutputTokens += entry.Output.OutputTokenCount

		log.WithFields(log.Fields{
			"modelId":      entry.ModelID,
			"requestId":    entry.RequestID,
			"operation":    entry.Operation,
			"inputTokens":  entry.Input.InputTokenCount,
			"outputTokens": entry.Output.OutputTokenCount,
		}).Info("Model invocation")
	}

	log.WithFields(log.Fields{
		"logGroup":  data.LogGroup,
		"logStream": data.LogStream,
		"records":   summary.Records,
		"malformed": summary.Malformed,
	}).Info("Subscription batch processed")
	return summary, nil
}
