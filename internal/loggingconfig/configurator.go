// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package loggingconfig

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	log "github.com/sirupsen/logrus"

	"github.com/aws/bedrock-invocation-logging/internal/awserr"
	"github.com/aws/bedrock-invocation-logging/internal/model"
)

// BedrockAPI is the subset of the Bedrock control plane client managing invocation logging.
type BedrockAPI interface {
	PutModelInvocationLoggingConfiguration(ctx context.Context, params *bedrock.PutModelInvocationLoggingConfigurationInput, optFns ...func(*bedrock.Options)) (*bedrock.PutModelInvocationLoggingConfigurationOutput, error)
	GetModelInvocationLoggingConfiguration(ctx context.Context, params *bedrock.GetModelInvocationLoggingConfigurationInput, optFns ...func(*bedrock.Options)) (*bedrock.GetModelInvocationLoggingConfigurationOutput, error)
	DeleteModelInvocationLoggingConfiguration(ctx context.Context, params *bedrock.DeleteModelInvocationLoggingConfigurationInput, optFns ...func(*bedrock.Options)) (*bedrock.DeleteModelInvocationLoggingConfigurationOutput, error)
}

// Configurator owns the account's invocation logging configuration.
// The role referenced by a config must already be allowed to write to the
// log group and the buckets; that grant happens outside this package.
type Configurator struct {
	client BedrockAPI
}

func NewConfigurator(client BedrockAPI) *Configurator {
	return &Configurator{client: client}
}

// Validate checks that cfg is complete enough to submit.
func Validate(cfg model.LoggingConfig) error {
	if missing := cfg.MissingFields(); len(missing) > 0 {
		return model.NewAppError(model.ErrorMissingConfiguration,
			model.WithOperation("PutModelInvocationLoggingConfiguration"),
			model.WithErrorMessage("missing "+strings.Join(missing, ", ")))
	}
	return nil
}

// Enable replaces the whole remote configuration with cfg.
func (c *Configurator) Enable(ctx context.Context, cfg model.LoggingConfig) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	_, err := c.client.PutModelInvocationLoggingConfiguration(ctx, &bedrock.PutModelInvocationLoggingConfigurationInput{
		LoggingConfig: ToAPI(cfg),
	})
	if err != nil {
		return awserr.Classify("PutModelInvocationLoggingConfiguration", err)
	}

	log.WithFields(log.Fields{
		"logGroup":    cfg.LogGroupName,
		"textEnabled": cfg.TextDataDeliveryEnabled,
	}).Info("Model invocation logging enabled")
	return nil
}

// ReadCurrent returns the active configuration. ok is false when logging
// has never been configured.
func (c *Configurator) ReadCurrent(ctx context.Context) (cfg model.LoggingConfig, ok bool, err error) {
	out, err := c.client.GetModelInvocationLoggingConfiguration(ctx, &bedrock.GetModelInvocationLoggingConfigurationInput{})
	if err != nil {
		return model.LoggingConfig{}, false, awserr.Classify("GetModelInvocationLoggingConfiguration", err)
	}
	if out == nil || out.LoggingConfig == nil {
		return model.LoggingConfig{}, false, nil
	}
	return FromAPI(out.LoggingConfig), true, nil
}

// Disable removes the configuration; invocations stop being logged.
func (c *Configurator) Disable(ctx context.Context) error {
	if _, err := c.client.DeleteModelInvocationLoggingConfiguration(ctx, &bedrock.DeleteModelInvocationLoggingConfigurationInput{}); err != nil {
		return awserr.Classify("DeleteModelInvocationLoggingConfiguration", err)
	}
	log.Info("Model invocation logging disabled")
	return nil
}
