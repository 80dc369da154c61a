// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"os"
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws/bedrock-invocation-logging/internal/model"
)

type allOptions struct {
	Options
	LoggingOptions
	GenerateOptions
	LogsOptions
}

func parse(t *testing.T, args ...string) allOptions {
	var opts allOptions
	_, err := flags.NewParser(&opts, flags.IgnoreUnknown).ParseArgs(args)
	require.NoError(t, err)
	return opts
}

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestDefaults(t *testing.T) {
	for _, key := range []string{RoleArnEnvKey, BucketNameEnvKey, "LOG_LEVEL", "AWS_REGION", "AWS_PROFILE"} {
		unsetenv(t, key)
	}

	opts := parse(t)

	assert.Equal(t, "info", opts.LogLevel)
	assert.Equal(t, "us-east-1", opts.Region)
	assert.Equal(t, model.DefaultLogGroupName, opts.LogGroup)
	assert.Equal(t, model.DefaultLargeDataKeyPrefix, opts.LargeDataKeyPrefix)
	assert.Equal(t, model.DefaultS3DeliveryKeyPrefix, opts.S3KeyPrefix)
	assert.Equal(t, model.DefaultModelID, opts.ModelID)
	assert.Equal(t, DefaultPrompt, opts.Prompt)
	assert.Equal(t, model.DefaultGenerationParams(), opts.Params())
	assert.Equal(t, 5*time.Minute, opts.Lookback)
}

func TestEnvironmentAndFlags(t *testing.T) {
	t.Setenv(RoleArnEnvKey, "arn:aws:iam::123456789012:role/FromEnv")
	t.Setenv(BucketNameEnvKey, "env-bucket")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv(ConsoleURLEnvKey, "https://console.example/bedrock")

	opts := parse(t, "--bucket=flag-bucket", "--log-level=debug")

	assert.Equal(t, "arn:aws:iam::123456789012:role/FromEnv", opts.RoleArn)
	assert.Equal(t, "flag-bucket", opts.BucketName)
	assert.Equal(t, "debug", opts.LogLevel)
	assert.Equal(t, "https://console.example/bedrock", opts.ConsoleURL)
}

func TestValidateReportsAllMissing(t *testing.T) {
	err := LoggingOptions{LogGroup: model.DefaultLogGroupName}.Validate()
	require.Error(t, err)
	assert.True(t, model.IsErrorType(err, model.ErrorMissingConfiguration))
	assert.Contains(t, err.Error(), RoleArnEnvKey)
	assert.Contains(t, err.Error(), BucketNameEnvKey)

	assert.NoError(t, LoggingOptions{LogGroup: "/g", RoleArn: "arn", BucketName: "b"}.Validate())
}

func TestLoggingConfig(t *testing.T) {
	opts := LoggingOptions{
		LogGroup:           "/g",
		RoleArn:            "arn",
		BucketName:         "b",
		LargeDataKeyPrefix: "large",
		S3KeyPrefix:        "logs",
	}

	cfg := opts.LoggingConfig()
	assert.Equal(t, model.LoggingConfig{
		LogGroupName:            "/g",
		RoleArn:                 "arn",
		LargeDataDelivery:       &model.S3Destination{BucketName: "b", KeyPrefix: "large"},
		S3Delivery:              &model.S3Destination{BucketName: "b", KeyPrefix: "logs"},
		TextDataDeliveryEnabled: true,
	}, cfg)

	opts.NoS3Delivery = true
	opts.NoTextDelivery = true
	cfg = opts.LoggingConfig()
	assert.Nil(t, cfg.S3Delivery)
	assert.False(t, cfg.TextDataDeliveryEnabled)
}
