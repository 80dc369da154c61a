// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package emulator

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics lives on its own registry so several emulators can run in one process.
type Metrics struct {
	registry *prometheus.Registry

	APIRequests      *prometheus.CounterVec
	Invocations      *prometheus.CounterVec
	DeliveredRecords *prometheus.CounterVec
	DroppedRecords   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		APIRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bedrock_emulator_api_requests_total",
				Help: "API requests served, by operation and response status",
			},
			[]string{"operation", "status"},
		),
		Invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bedrock_emulator_model_invocations_total",
				Help: "Model invocations served",
			},
			[]string{"model"},
		),
		DeliveredRecords: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bedrock_emulator_delivered_records_total",
				Help: "Invocation log records delivered, by destination",
			},
			[]string{"destination"},
		),
		DroppedRecords: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bedrock_emulator_dropped_records_total",
				Help: "Invocation log records that could not be delivered",
			},
			[]string{"reason"},
		),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
