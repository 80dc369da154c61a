// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/aws/bedrock-invocation-logging/internal/logreader"
	"github.com/aws/bedrock-invocation-logging/internal/model"
	"github.com/aws/bedrock-invocation-logging/internal/settings"
	"github.com/aws/bedrock-invocation-logging/internal/workflow"
)

type runCommand struct {
	app *app

	settings.LoggingOptions  `group:"Logging destination"`
	settings.GenerateOptions `group:"Generation"`
	settings.LogsOptions     `group:"Log records"`

	ShowLogs bool `long:"show-logs" description:"Read back recent log records after the invocation"`
}

func (c *runCommand) Execute([]string) error {
	if err := c.LoggingOptions.Validate(); err != nil {
		return err
	}
	cl, err := c.app.clients()
	if err != nil {
		return err
	}
	cl.destinations.RetentionDays = c.RetentionDays
	cl.applyLogsOptions(c.LogsOptions)

	result, err := workflow.New(cl.dependencies(), c.app.out).Run(c.app.ctx, workflow.Params{
		Config:     c.LoggingConfig(),
		ModelID:    c.ModelID,
		Prompt:     c.Prompt,
		Params:     c.Params(),
		ShowLogs:   c.ShowLogs,
		Lookback:   c.Lookback,
		ConsoleURL: c.app.opts.ConsoleURL,
	})
	if err != nil {
		return err
	}

	c.app.logger.WithField("logGroup", result.Destination.Name).
		WithField("created", result.Destination.Created).
		WithField("records", len(result.Records)).
		Info("Run complete")
	return nil
}

type enableCommand struct {
	app *app

	settings.LoggingOptions `group:"Logging destination"`
}

func (c *enableCommand) Execute([]string) error {
	if err := c.LoggingOptions.Validate(); err != nil {
		return err
	}
	cl, err := c.app.clients()
	if err != nil {
		return err
	}
	cl.destinations.RetentionDays = c.RetentionDays

	cfg := c.LoggingConfig()
	ref, err := cl.destinations.Ensure(c.app.ctx, cfg.LogGroupName)
	if err != nil {
		return fmt.Errorf("failed to ensure log group %s: %w", cfg.LogGroupName, err)
	}
	c.app.logger.WithField("logGroup", ref.Name).WithField("created", ref.Created).Info("Log group ready")

	if err := cl.configurator.Enable(c.app.ctx, cfg); err != nil {
		return fmt.Errorf("failed to enable invocation logging: %w", err)
	}
	current, ok, err := cl.configurator.ReadCurrent(c.app.ctx)
	if err != nil {
		return fmt.Errorf("failed to read invocation logging configuration: %w", err)
	}
	return workflow.PrintConfig(c.app.out, current, ok)
}

type showConfigCommand struct {
	app *app
}

func (c *showConfigCommand) Execute([]string) error {
	cl, err := c.app.clients()
	if err != nil {
		return err
	}
	current, ok, err := cl.configurator.ReadCurrent(c.app.ctx)
	if err != nil {
		return fmt.Errorf("failed to read invocation logging configuration: %w", err)
	}
	return workflow.PrintConfig(c.app.out, current, ok)
}

type disableCommand struct {
	app *app
}

func (c *disableCommand) Execute([]string) error {
	cl, err := c.app.clients()
	if err != nil {
		return err
	}
	if err := cl.configurator.Disable(c.app.ctx); err != nil {
		return fmt.Errorf("failed to disable invocation logging: %w", err)
	}
	_, err = fmt.Fprintln(c.app.out, "Model invocation logging disabled.")
	return err
}

type generateCommand struct {
	app *app

	settings.GenerateOptions `group:"Generation"`
}

func (c *generateCommand) Execute([]string) error {
	cl, err := c.app.clients()
	if err != nil {
		return err
	}
	text, err := cl.invoker.Generate(c.app.ctx, c.ModelID, c.Prompt, c.Params())
	if err != nil {
		return fmt.Errorf("failed to invoke %s: %w", c.ModelID, err)
	}
	_, err = fmt.Fprintln(c.app.out, text)
	return err
}

type logsCommand struct {
	app *app

	LogGroup             string `long:"log-group" default:"/my/amazon/bedrock/logs" description:"CloudWatch log group to read"`
	settings.LogsOptions `group:"Log records"`
}

func (c *logsCommand) Execute([]string) error {
	if c.LogGroup == "" {
		return model.NewAppError(model.ErrorMissingConfiguration, model.WithErrorMessage("--log-group is empty"))
	}
	cl, err := c.app.clients()
	if err != nil {
		return err
	}
	cl.applyLogsOptions(c.LogsOptions)

	records, err := logreader.Collect(cl.reader.Recent(c.app.ctx, c.LogGroup, c.Lookback))
	if err != nil {
		return fmt.Errorf("failed to read log records: %w", err)
	}
	return logreader.Render(c.app.out, records)
}
