// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	log "github.com/sirupsen/logrus"
)

const DefaultRegion = "us-east-1"

// static credentials handed to a local emulator, which does not verify signatures
const (
	emulatorAccessKeyID     = "emulator"
	emulatorSecretAccessKey = "emulator"
)

type Options struct {
	Profile     string
	Region      string
	EndpointURL string
}

// Session is the authenticated context every remote boundary is built from.
type Session struct {
	Config      aws.Config
	endpointURL string
}

// New loads the shared AWS configuration for the given profile and region.
func New(ctx context.Context, opts Options) (*Session, error) {
	region := opts.Region
	if region == "" {
		region = DefaultRegion
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	} else if opts.EndpointURL != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(emulatorAccessKeyID, emulatorSecretAccessKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	log.WithFields(log.Fields{"region": cfg.Region, "profile": opts.Profile, "endpoint": opts.EndpointURL}).Debug("AWS session ready")

	return &Session{Config: cfg, endpointURL: opts.EndpointURL}, nil
}

// FromConfig wraps an already loaded configuration.
func FromConfig(cfg aws.Config, endpointURL string) *Session {
	return &Session{Config: cfg, endpointURL: endpointURL}
}

func (s *Session) Region() string {
	return s.Config.Region
}

func (s *Session) LogsClient() *cloudwatchlogs.Client {
	return cloudwatchlogs.NewFromConfig(s.Config, func(o *cloudwatchlogs.Options) {
		if s.endpointURL != "" {
			o.BaseEndpoint = aws.String(s.endpointURL)
		}
	})
}

func (s *Session) BedrockClient() *bedrock.Client {
	return bedrock.NewFromConfig(s.Config, func(o *bedrock.Options) {
		if s.endpointURL != "" {
			o.BaseEndpoint = aws.String(s.endpointURL)
		}
	})
}

func (s *Session) RuntimeClient() *bedrockruntime.Client {
	return bedrockruntime.NewFromConfig(s.Config, func(o *bedrockruntime.Options) {
		if s.endpointURL != "" {
			o.BaseEndpoint = aws.String(s.endpointURL)
		}
	})
}
