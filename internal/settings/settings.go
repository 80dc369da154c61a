// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"strings"
	"time"

	"github.com/aws/bedrock-invocation-logging/internal/model"
	"github.com/aws/bedrock-invocation-logging/internal/session"
)

const (
	RoleArnEnvKey    = "LOGGINGROLEARN"
	BucketNameEnvKey = "LOGGINGBUCKETNAME"
	ConsoleURLEnvKey = "AWS_CONSOLE_URL"

	DefaultPrompt = "Write one line description of Buenos Aires."
)

// Options are shared by every command.
type Options struct {
	LogLevel    string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"Log level (trace, debug, info, warn, error)"`
	Profile     string `long:"profile" env:"AWS_PROFILE" description:"Shared AWS config profile"`
	Region      string `long:"region" env:"AWS_REGION" default:"us-east-1" description:"AWS region"`
	EndpointURL string `long:"endpoint-url" env:"BEDROCK_LOGGING_ENDPOINT_URL" description:"Send every AWS call to this endpoint, e.g. a local bedrock-emulator"`
	ConsoleURL  string `long:"console-url" env:"AWS_CONSOLE_URL" description:"Console link printed at the end of a run"`
}

func (o Options) Session() session.Options {
	return session.Options{Profile: o.Profile, Region: o.Region, EndpointURL: o.EndpointURL}
}

// LoggingOptions describe where invocation logs are delivered.
type LoggingOptions struct {
	LogGroup           string `long:"log-group" default:"/my/amazon/bedrock/logs" description:"CloudWatch log group receiving invocation logs"`
	RoleArn            string `long:"role-arn" env:"LOGGINGROLEARN" description:"Role Bedrock assumes to deliver logs"`
	BucketName         string `long:"bucket" env:"LOGGINGBUCKETNAME" description:"S3 bucket for large payloads and S3 delivery"`
	LargeDataKeyPrefix string `long:"large-data-prefix" default:"amazon_bedrock_large_data_delivery" description:"Key prefix for large payloads"`
	S3KeyPrefix        string `long:"s3-prefix" default:"amazon_bedrock_logs" description:"Key prefix for S3 delivery"`
	NoS3Delivery       bool   `long:"no-s3-delivery" description:"Only deliver to CloudWatch (large payloads still go to the bucket)"`
	NoTextDelivery     bool   `long:"no-text-delivery" description:"Log metadata only, without request and response text"`
	RetentionDays      int32  `long:"retention-days" description:"Retention applied to the log group, 0 keeps the current setting"`
}

// Validate reports every required variable that is unset, before anything
// talks to AWS.
func (o LoggingOptions) Validate() error {
	var missing []string
	if o.LogGroup == "" {
		missing = append(missing, "--log-group")
	}
	if o.RoleArn == "" {
		missing = append(missing, RoleArnEnvKey)
	}
	if o.BucketName == "" {
		missing = append(missing, BucketNameEnvKey)
	}
	if len(missing) > 0 {
		return model.NewAppError(model.ErrorMissingConfiguration,
			model.WithErrorMessage("required settings are not set: "+strings.Join(missing, ", ")))
	}
	return nil
}

// LoggingConfig builds the complete configuration to submit.
func (o LoggingOptions) LoggingConfig() model.LoggingConfig {
	cfg := model.LoggingConfig{
		LogGroupName:            o.LogGroup,
		RoleArn:                 o.RoleArn,
		LargeDataDelivery:       &model.S3Destination{BucketName: o.BucketName, KeyPrefix: o.LargeDataKeyPrefix},
		TextDataDeliveryEnabled: !o.NoTextDelivery,
	}
	if !o.NoS3Delivery {
		cfg.S3Delivery = &model.S3Destination{BucketName: o.BucketName, KeyPrefix: o.S3KeyPrefix}
	}
	return cfg
}

type GenerateOptions struct {
	ModelID     string  `long:"model-id" default:"amazon.titan-text-lite-v1" description:"Model to invoke"`
	Prompt      string  `long:"prompt" default:"Write one line description of Buenos Aires." description:"Prompt text"`
	MaxTokens   int     `long:"max-tokens" default:"512" description:"maxTokenCount"`
	Temperature float64 `long:"temperature" default:"0.7" description:"temperature"`
	TopP        float64 `long:"top-p" default:"0.9" description:"topP"`
}

func (o GenerateOptions) Params() model.GenerationParams {
	return model.GenerationParams{MaxTokenCount: o.MaxTokens, Temperature: o.Temperature, TopP: o.TopP}
}

type LogsOptions struct {
	Lookback time.Duration `long:"lookback" default:"5m" description:"How far back to read log records"`
	Limit    int           `long:"limit" default:"20" description:"Maximum number of records to print, 0 for all"`
	Filter   string        `long:"filter" description:"CloudWatch Logs filter pattern"`
}
