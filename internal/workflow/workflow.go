// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"fmt"
	"io"
	"iter"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/aws/bedrock-invocation-logging/internal/loggingconfig"
	"github.com/aws/bedrock-invocation-logging/internal/logreader"
	"github.com/aws/bedrock-invocation-logging/internal/model"
)

type DestinationManager interface {
	Ensure(ctx context.Context, name string) (model.LogDestinationRef, error)
}

type LoggingConfigurator interface {
	Enable(ctx context.Context, cfg model.LoggingConfig) error
	ReadCurrent(ctx context.Context) (model.LoggingConfig, bool, error)
}

type Generator interface {
	Generate(ctx context.Context, modelID, prompt string, params model.GenerationParams) (string, error)
}

type LogSource interface {
	Recent(ctx context.Context, destination string, lookback time.Duration) iter.Seq2[model.LogRecord, error]
}

type Dependencies struct {
	Destinations DestinationManager
	Configurator LoggingConfigurator
	Generator    Generator
	Logs         LogSource
}

// Params is everything one run needs.
type Params struct {
	Config  model.LoggingConfig
	ModelID string
	Prompt  string
	Params  model.GenerationParams

	// ShowLogs reads back records after the invocation.
	ShowLogs bool
	Lookback time.Duration

	ConsoleURL string
}

type Result struct {
	Destination   model.LogDestinationRef
	CurrentConfig model.LoggingConfig
	Generation    string
	Records       []model.LogRecord
}

// Workflow provisions the log group, enables invocation logging, invokes
// the model once and optionally reads back the delivered records. Each
// step runs once, in order; the first failure ends the run.
type Workflow struct {
	deps Dependencies
	out  io.Writer
}

func New(deps Dependencies, out io.Writer) *Workflow {
	return &Workflow{deps: deps, out: out}
}

func (w *Workflow) Run(ctx context.Context, p Params) (Result, error) {
	var result Result

	if err := loggingconfig.Validate(p.Config); err != nil {
		return result, err
	}

	ref, err := w.deps.Destinations.Ensure(ctx, p.Config.LogGroupName)
	if err != nil {
		return result, fmt.Errorf("failed to ensure log group %s: %w", p.Config.LogGroupName, err)
	}
	result.Destination = ref

	if err := w.deps.Configurator.Enable(ctx, p.Config); err != nil {
		return result, fmt.Errorf("failed to enable invocation logging: %w", err)
	}

	current, ok, err := w.deps.Configurator.ReadCurrent(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to read invocation logging configuration: %w", err)
	}
	result.CurrentConfig = current
	if !ok || !current.Equal(p.Config) {
		log.WithField("current", current).Warn("Active logging configuration differs from the one just submitted")
	}
	if err := PrintConfig(w.out, current, ok); err != nil {
		return result, err
	}

	generation, err := w.deps.Generator.Generate(ctx, p.ModelID, p.Prompt, p.Params)
	if err != nil {
		return result, fmt.Errorf("failed to invoke %s: %w", p.ModelID, err)
	}
	result.Generation = generation
	if _, err := fmt.Fprintf(w.out, "\nGeneration:\n%s\n", generation); err != nil {
		return result, err
	}

	if p.ShowLogs {
		records, err := logreader.Collect(w.deps.Logs.Recent(ctx, ref.Name, p.Lookback))
		if err != nil {
			return result, fmt.Errorf("failed to read log records: %w", err)
		}
		result.Records = records
		if _, err := fmt.Fprintf(w.out, "\nRecent log records in %s:\n", ref.Name); err != nil {
			return result, err
		}
		if err := logreader.Render(w.out, records); err != nil {
			return result, err
		}
	}

	if p.ConsoleURL != "" {
		if _, err := fmt.Fprintf(w.out, "\nAWS console: %s\n", p.ConsoleURL); err != nil {
			return result, err
		}
	}

	return result, nil
}

// PrintConfig writes the active configuration, or a note that none is set.
func PrintConfig(out io.Writer, cfg model.LoggingConfig, ok bool) error {
	if !ok {
		_, err := fmt.Fprintln(out, "Model invocation logging is not configured.")
		return err
	}

	_, err := fmt.Fprintf(out, "Model invocation logging configuration:\n"+
		"  logGroupName:            %s\n"+
		"  roleArn:                 %s\n"+
		"  largeDataDelivery:       %s\n"+
		"  s3Delivery:              %s\n"+
		"  textDataDeliveryEnabled: %t\n",
		cfg.LogGroupName, cfg.RoleArn, formatS3(cfg.LargeDataDelivery), formatS3(cfg.S3Delivery), cfg.TextDataDeliveryEnabled)
	return err
}

func formatS3(d *model.S3Destination) string {
	if d == nil {
		return "-"
	}
	if d.KeyPrefix == "" {
		return "s3://" + d.BucketName
	}
	return "s3://" + d.BucketName + "/" + d.KeyPrefix
}
