// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"time"
)

const (
	DefaultLogGroupName        = "/my/amazon/bedrock/logs"
	DefaultLargeDataKeyPrefix  = "amazon_bedrock_large_data_delivery"
	DefaultS3DeliveryKeyPrefix = "amazon_bedrock_logs"
	DefaultModelID             = "amazon.titan-text-lite-v1"
	InvocationLogStreamName    = "aws/bedrock/modelinvocations"
	InvocationLogSchemaType    = "ModelInvocationLog"
	InvocationLogSchemaVersion = "1.0"
	InferenceContentType       = "application/json"
	InferenceAccept            = "*/*"
	DefaultLookback            = 5 * time.Minute
)

// Generation defaults used by the workflow's single invocation.
const (
	DefaultMaxTokenCount         = 512
	DefaultTemperature   float64 = 0.7
	DefaultTopP          float64 = 0.9
)

// LogDestinationRef identifies a log group. Created reports whether the
// last Ensure call created it or found it already present.
type LogDestinationRef struct {
	Name    string
	Created bool
}

// S3Destination is a bucket plus key prefix.
type S3Destination struct {
	BucketName string
	KeyPrefix  string
}

func (d *S3Destination) equal(o *S3Destination) bool {
	if d == nil || o == nil {
		return d == o
	}
	return *d == *o
}

// LoggingConfig is the complete model invocation logging configuration.
// It is replaced wholesale on the platform, so callers build a new value
// for every Enable instead of patching the current one.
type LoggingConfig struct {
	LogGroupName string
	RoleArn      string

	// LargeDataDelivery receives request/response bodies too big for CloudWatch.
	LargeDataDelivery *S3Destination
	// S3Delivery receives a full copy of every record.
	S3Delivery *S3Destination

	TextDataDeliveryEnabled      bool
	ImageDataDeliveryEnabled     bool
	EmbeddingDataDeliveryEnabled bool
}

func (c LoggingConfig) IsZero() bool {
	return c.Equal(LoggingConfig{})
}

func (c LoggingConfig) Equal(o LoggingConfig) bool {
	return c.LogGroupName == o.LogGroupName &&
		c.RoleArn == o.RoleArn &&
		c.LargeDataDelivery.equal(o.LargeDataDelivery) &&
		c.S3Delivery.equal(o.S3Delivery) &&
		c.TextDataDeliveryEnabled == o.TextDataDeliveryEnabled &&
		c.ImageDataDeliveryEnabled == o.ImageDataDeliveryEnabled &&
		c.EmbeddingDataDeliveryEnabled == o.EmbeddingDataDeliveryEnabled
}

// MissingFields returns the names of the required fields left empty.
func (c LoggingConfig) MissingFields() []string {
	var missing []string
	if c.LogGroupName == "" {
		missing = append(missing, "logGroupName")
	}
	if c.RoleArn == "" {
		missing = append(missing, "roleArn")
	}
	if c.LargeDataDelivery != nil && c.LargeDataDelivery.BucketName == "" {
		missing = append(missing, "largeDataDeliveryS3Config.bucketName")
	}
	if c.S3Delivery != nil && c.S3Delivery.BucketName == "" {
		missing = append(missing, "s3Config.bucketName")
	}
	return missing
}

// GenerationParams are forwarded to the model as-is.
type GenerationParams struct {
	MaxTokenCount int     `json:"maxTokenCount"`
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"topP"`
}

func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		MaxTokenCount: DefaultMaxTokenCount,
		Temperature:   DefaultTemperature,
		TopP:          DefaultTopP,
	}
}

type InferenceRequest struct {
	ModelID     string
	ContentType string
	Accept      string
	Body        []byte
}

// LogRecord is a single event read back from a log group.
type LogRecord struct {
	Timestamp     time.Time
	Message       string
	LogStreamName string
	EventID       string
}
