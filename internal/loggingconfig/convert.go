// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package loggingconfig

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	bedrocktypes "github.com/aws/aws-sdk-go-v2/service/bedrock/types"

	"github.com/aws/bedrock-invocation-logging/internal/model"
)

func toS3Config(d *model.S3Destination) *bedrocktypes.S3Config {
	if d == nil {
		return nil
	}
	cfg := &bedrocktypes.S3Config{BucketName: aws.String(d.BucketName)}
	if d.KeyPrefix != "" {
		cfg.KeyPrefix = aws.String(d.KeyPrefix)
	}
	return cfg
}

func fromS3Config(cfg *bedrocktypes.S3Config) *model.S3Destination {
	if cfg == nil {
		return nil
	}
	return &model.S3Destination{
		BucketName: aws.ToString(cfg.BucketName),
		KeyPrefix:  aws.ToString(cfg.KeyPrefix),
	}
}

// ToAPI builds the request shape for PutModelInvocationLoggingConfiguration.
func ToAPI(c model.LoggingConfig) *bedrocktypes.LoggingConfig {
	return &bedrocktypes.LoggingConfig{
		CloudWatchConfig: &bedrocktypes.CloudWatchConfig{
			LogGroupName:              aws.String(c.LogGroupName),
			RoleArn:                   aws.String(c.RoleArn),
			LargeDataDeliveryS3Config: toS3Config(c.LargeDataDelivery),
		},
		S3Config:                     toS3Config(c.S3Delivery),
		TextDataDeliveryEnabled:      aws.Bool(c.TextDataDeliveryEnabled),
		ImageDataDeliveryEnabled:     aws.Bool(c.ImageDataDeliveryEnabled),
		EmbeddingDataDeliveryEnabled: aws.Bool(c.EmbeddingDataDeliveryEnabled),
	}
}

// FromAPI converts the platform's view back. A nil config is the zero value.
func FromAPI(cfg *bedrocktypes.LoggingConfig) model.LoggingConfig {
	if cfg == nil {
		return model.LoggingConfig{}
	}
	c := model.LoggingConfig{
		S3Delivery:                   fromS3Config(cfg.S3Config),
		TextDataDeliveryEnabled:      aws.ToBool(cfg.TextDataDeliveryEnabled),
		ImageDataDeliveryEnabled:     aws.ToBool(cfg.ImageDataDeliveryEnabled),
		EmbeddingDataDeliveryEnabled: aws.ToBool(cfg.EmbeddingDataDeliveryEnabled),
	}
	if cw := cfg.CloudWatchConfig; cw != nil {
		c.LogGroupName = aws.ToString(cw.LogGroupName)
		c.RoleArn = aws.ToString(cw.RoleArn)
		c.LargeDataDelivery = fromS3Config(cw.LargeDataDeliveryS3Config)
	}
	return c
}
