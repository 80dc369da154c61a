// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package emulator

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aws/bedrock-invocation-logging/internal/emulator/store"
)

const (
	DefaultAccountID = "000000000000"
	DefaultRegion    = "us-east-1"

	// DefaultLargeDataThreshold is the body size above which payloads go to
	// the large data bucket instead of the log record.
	DefaultLargeDataThreshold = 100 * 1024
)

type Options struct {
	AccountID          string
	Region             string
	DeliveryDelay      time.Duration
	LargeDataThreshold int
}

// Emulator serves the CloudWatch Logs, Bedrock and Bedrock runtime calls
// the workflow makes, and delivers invocation log records the way the
// platform does when invocation logging is enabled.
type Emulator struct {
	store   store.Store
	opts    Options
	metrics *Metrics
	now     func() time.Time

	pending sync.WaitGroup
}

func New(s store.Store, opts Options) *Emulator {
	if opts.AccountID == "" {
		opts.AccountID = DefaultAccountID
	}
	if opts.Region == "" {
		opts.Region = DefaultRegion
	}
	if opts.LargeDataThreshold <= 0 {
		opts.LargeDataThreshold = DefaultLargeDataThreshold
	}
	return &Emulator{
		store:   s,
		opts:    opts,
		metrics: NewMetrics(),
		now:     time.Now,
	}
}

func (e *Emulator) Metrics() *Metrics {
	return e.metrics
}

// Wait blocks until every scheduled delivery has been written.
func (e *Emulator) Wait() {
	e.pending.Wait()
}

// Router returns the chi router serving all emulated endpoints.
func (e *Emulator) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(RequestIDMiddleware())
	router.Use(AccessLogMiddleware())

	router.Post("/", e.instrument(logsOperation, e.handleLogs))

	router.Put("/logging/modelinvocations", e.instrument(staticOperation("PutModelInvocationLoggingConfiguration"), e.putLoggingConfig))
	router.Get("/logging/modelinvocations", e.instrument(staticOperation("GetModelInvocationLoggingConfiguration"), e.getLoggingConfig))
	router.Delete("/logging/modelinvocations", e.instrument(staticOperation("DeleteModelInvocationLoggingConfiguration"), e.deleteLoggingConfig))

	router.Post("/model/{modelId}/invoke", e.instrument(staticOperation("InvokeModel"), e.invokeModel))

	router.Get("/objects/{bucket}/*", e.getObject)
	router.Handle("/metrics", e.metrics.Handler())

	return router
}

type ctxKey int

const requestIDKey ctxKey = iota

// RequestIDMiddleware assigns every request an id, returned in X-Amzn-RequestId.
func RequestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.New().String()
			w.Header().Set(headerRequestID, requestID)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID)))
		}
		return http.HandlerFunc(fn)
	}
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return uuid.New().String()
}

// AccessLogMiddleware writes api access log.
func AccessLogMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			log.Debug("API request - ", r.Method, " ", r.URL, ", Target:", r.Header.Get("X-Amz-Target"))
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

type operationFunc func(r *http.Request) string

func staticOperation(name string) operationFunc {
	return func(*http.Request) string { return name }
}

func (e *Emulator) instrument(operation operationFunc, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		e.metrics.APIRequests.WithLabelValues(operation(r), http.StatusText(status)).Inc()
	}
}
