// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/aws/bedrock-invocation-logging/internal/emulator"
	"github.com/aws/bedrock-invocation-logging/internal/emulator/store"
	"github.com/aws/bedrock-invocation-logging/internal/logging"
)

const shutdownTimeout = 10 * time.Second

type options struct {
	LogLevel           string        `long:"log-level" env:"LOG_LEVEL" default:"info" description:"log level"`
	Address            string        `long:"address" default:"127.0.0.1:4566" description:"Address to serve the emulated endpoints on"`
	StateDB            string        `long:"state-db" description:"SQLite file keeping state across restarts, in memory when empty"`
	DeliveryDelay      time.Duration `long:"delivery-delay" default:"0s" description:"Delay between an invocation and its log record being delivered"`
	LargeDataThreshold int           `long:"large-data-threshold" default:"102400" description:"Body size in bytes above which bodies go to the large data bucket"`
	AccountID          string        `long:"account-id" default:"000000000000" description:"Account id written into invocation log records"`
	Region             string        `long:"region" env:"AWS_REGION" default:"us-east-1" description:"Region written into invocation log records"`
}

func main() {
	var opts options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}
	logging.ConfigureLogging(opts.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		stop()
		log.WithError(err).Fatal("bedrock-emulator failed")
	}
}

func openStore(path string) (store.Store, error) {
	if path == "" {
		return store.NewMemory(), nil
	}
	return store.OpenSQLite(path)
}

func run(ctx context.Context, opts options) error {
	st, err := openStore(opts.StateDB)
	if err != nil {
		return err
	}
	defer st.Close()

	em := emulator.New(st, emulator.Options{
		AccountID:          opts.AccountID,
		Region:             opts.Region,
		DeliveryDelay:      opts.DeliveryDelay,
		LargeDataThreshold: opts.LargeDataThreshold,
	})
	server := &http.Server{
		Addr:              opts.Address,
		Handler:           em.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("address", opts.Address).WithField("stateDB", opts.StateDB).Info("Emulator listening")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		em.Wait()
		return err
	})
	return g.Wait()
}
