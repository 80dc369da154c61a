// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the bedrock-logging commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"github.com/aws/bedrock-invocation-logging/internal/destination"
	"github.com/aws/bedrock-invocation-logging/internal/invoker"
	"github.com/aws/bedrock-invocation-logging/internal/logging"
	"github.com/aws/bedrock-invocation-logging/internal/loggingconfig"
	"github.com/aws/bedrock-invocation-logging/internal/logreader"
	"github.com/aws/bedrock-invocation-logging/internal/session"
	"github.com/aws/bedrock-invocation-logging/internal/settings"
	"github.com/aws/bedrock-invocation-logging/internal/workflow"
)

type app struct {
	ctx    context.Context
	out    io.Writer
	opts   settings.Options
	logger *log.Entry
}

// Run parses args and executes the selected command. Help output is written
// to out and is not an error.
func Run(ctx context.Context, args []string, out io.Writer) error {
	a := &app{ctx: ctx, out: out, logger: log.NewEntry(log.StandardLogger())}

	parser := flags.NewParser(&a.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "bedrock-logging"
	parser.SubcommandsOptional = false

	commands := []struct {
		name, short, long string
		data              interface{}
	}{
		{"run", "Run the whole workflow",
			"Ensure the log group, enable invocation logging, invoke the model once and optionally read back the delivered records.",
			&runCommand{app: a}},
		{"enable", "Ensure the log group and enable invocation logging", "", &enableCommand{app: a}},
		{"show-config", "Print the active invocation logging configuration", "", &showConfigCommand{app: a}},
		{"disable", "Delete the invocation logging configuration", "", &disableCommand{app: a}},
		{"generate", "Invoke a text model once", "", &generateCommand{app: a}},
		{"logs", "Print recent invocation log records", "", &logsCommand{app: a}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			return err
		}
	}

	parser.CommandHandler = func(command flags.Commander, args []string) error {
		logging.ConfigureLogging(a.opts.LogLevel)
		a.logger = log.WithField("run_id", uuid.New().String())
		if parser.Active != nil {
			a.logger = a.logger.WithField("command", parser.Active.Name)
		}
		a.logger.Debug("Starting")
		return command.Execute(args)
	}

	_, err := parser.ParseArgs(args)
	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		_, werr := fmt.Fprintln(out, flagsErr.Message)
		return werr
	}
	return err
}

func (a *app) session() (*session.Session, error) {
	return session.New(a.ctx, a.opts.Session())
}

type clients struct {
	destinations *destination.Manager
	configurator *loggingconfig.Configurator
	invoker      *invoker.Invoker
	reader       *logreader.Reader
}

func (a *app) clients() (*clients, error) {
	sess, err := a.session()
	if err != nil {
		return nil, err
	}
	return &clients{
		destinations: destination.NewManager(sess.LogsClient()),
		configurator: loggingconfig.NewConfigurator(sess.BedrockClient()),
		invoker:      invoker.NewInvoker(sess.RuntimeClient()),
		reader:       logreader.NewReader(sess.LogsClient()),
	}, nil
}

func (c *clients) dependencies() workflow.Dependencies {
	return workflow.Dependencies{
		Destinations: c.destinations,
		Configurator: c.configurator,
		Generator:    c.invoker,
		Logs:         c.reader,
	}
}

func (c *clients) applyLogsOptions(opts settings.LogsOptions) {
	c.reader.Limit = opts.Limit
	c.reader.FilterPattern = opts.Filter
}
