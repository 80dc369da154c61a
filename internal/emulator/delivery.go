// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package emulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/oklog/ulid/v2"
	log "github.com/sirupsen/logrus"

	"github.com/aws/bedrock-invocation-logging/internal/emulator/store"
	"github.com/aws/bedrock-invocation-logging/internal/model"
)

type invocation struct {
	requestID    string
	modelID      string
	timestamp    time.Time
	contentType  string
	inputBody    []byte
	outputBody   []byte
	inputTokens  int
	outputTokens int
}

// scheduleDelivery writes the record for inv after the configured delay,
// or before returning when there is none. The configuration is the one
// active when the invocation was served.
func (e *Emulator) scheduleDelivery(cfg loggingConfigDoc, inv invocation) {
	if e.opts.DeliveryDelay <= 0 {
		e.deliver(context.Background(), cfg, inv)
		return
	}

	e.pending.Add(1)
	time.AfterFunc(e.opts.DeliveryDelay, func() {
		defer e.pending.Done()
		e.deliver(context.Background(), cfg, inv)
	})
}

func (e *Emulator) deliver(ctx context.Context, cfg loggingConfigDoc, inv invocation) {
	logger := log.WithField("requestId", inv.requestID).WithField("modelId", inv.modelID)

	record := model.InvocationLog{
		SchemaType:    model.InvocationLogSchemaType,
		SchemaVersion: model.InvocationLogSchemaVersion,
		Timestamp:     inv.timestamp.UTC(),
		AccountID:     e.opts.AccountID,
		Identity:      &model.Identity{Arn: fmt.Sprintf("arn:aws:sts::%s:assumed-role/emulator/session", e.opts.AccountID)},
		Region:        e.opts.Region,
		RequestID:     inv.requestID,
		Operation:     "InvokeModel",
		ModelID:       inv.modelID,
		Input: model.InvocationInput{
			InputContentType: inv.contentType,
			InputTokenCount:  inv.inputTokens,
		},
		Output: model.InvocationOutput{
			OutputContentType: model.InferenceContentType,
			OutputTokenCount:  inv.outputTokens,
		},
	}

	if cfg.textEnabled() {
		var largeData *s3ConfigDoc
		if cfg.CloudWatchConfig != nil {
			largeData = cfg.CloudWatchConfig.LargeDataDeliveryS3Config
		}
		record.Input.InputBodyJSON, record.Input.InputBodyS3Path = e.attachBody(ctx, logger, largeData, inv, "input", inv.inputBody)
		record.Output.OutputBodyJSON, record.Output.OutputBodyS3Path = e.attachBody(ctx, logger, largeData, inv, "output", inv.outputBody)
	}

	message, err := json.Marshal(record)
	if err != nil {
		logger.WithError(err).Warn("Could not encode invocation log record")
		e.metrics.DroppedRecords.WithLabelValues("encoding").Inc()
		return
	}

	if cw := cfg.CloudWatchConfig; cw != nil {
		e.deliverToLogGroup(ctx, logger, cw.LogGroupName, inv, message)
	}
	if s3 := cfg.S3Config; s3 != nil {
		key := e.objectKey(s3.KeyPrefix, inv, inv.requestID+".json")
		if err := e.store.PutObject(ctx, s3.BucketName, key, message); err != nil {
			logger.WithError(err).Warn("Could not deliver invocation log record to bucket")
			e.metrics.DroppedRecords.WithLabelValues("s3").Inc()
		} else {
			e.metrics.DeliveredRecords.WithLabelValues("s3").Inc()
		}
	}
}

func (e *Emulator) deliverToLogGroup(ctx context.Context, logger *log.Entry, group string, inv invocation, message []byte) {
	err := e.store.AppendEvent(ctx, store.Event{
		ID:            ulid.Make().String(),
		LogGroup:      group,
		LogStream:     model.InvocationLogStreamName,
		Timestamp:     inv.timestamp.UnixMilli(),
		IngestionTime: e.now().UnixMilli(),
		Message:       string(message),
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		logger.WithField("logGroup", group).Warn("Log group does not exist, invocation log record dropped")
		e.metrics.DroppedRecords.WithLabelValues("log_group_not_found").Inc()
	case err != nil:
		logger.WithError(err).Warn("Could not deliver invocation log record")
		e.metrics.DroppedRecords.WithLabelValues("cloudwatch").Inc()
	default:
		logger.WithField("logGroup", group).Debug("Invocation log record delivered")
		e.metrics.DeliveredRecords.WithLabelValues("cloudwatch").Inc()
	}
}

// attachBody returns the body inline, or its S3 location when it exceeds
// the large data threshold. Bodies too large with no large data bucket,
// or that are not JSON, are left out of the record.
func (e *Emulator) attachBody(ctx context.Context, logger *log.Entry, largeData *s3ConfigDoc, inv invocation, kind string, body []byte) (json.RawMessage, string) {
	if !json.Valid(body) {
		return nil, ""
	}
	if len(body) <= e.opts.LargeDataThreshold {
		return json.RawMessage(body), ""
	}
	if largeData == nil {
		return nil, ""
	}

	key := e.objectKey(largeData.KeyPrefix, inv, inv.requestID, kind+"-body.json")
	if err := e.store.PutObject(ctx, largeData.BucketName, key, body); err != nil {
		logger.WithError(err).Warn("Could not store large " + kind + " body")
		return nil, ""
	}
	return nil, fmt.Sprintf("s3://%s/%s", largeData.BucketName, key)
}

// objectKey lays out keys as <prefix>/AWSLogs/<account>/BedrockModelInvocationLogs/<region>/<yyyy>/<mm>/<dd>/<name...>.
func (e *Emulator) objectKey(prefix string, inv invocation, name ...string) string {
	day := inv.timestamp.UTC()
	parts := []string{prefix, "AWSLogs", e.opts.AccountID, "BedrockModelInvocationLogs", e.opts.Region,
		day.Format("2006"), day.Format("01"), day.Format("02")}
	return path.Join(append(parts, name...)...)
}
