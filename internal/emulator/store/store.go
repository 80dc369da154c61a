// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package store keeps the emulator's platform state: log groups and their
// events, the account's invocation logging configuration, and objects
// written to buckets.
package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrAlreadyExists = errors.New("resource already exists")
	ErrNotFound      = errors.New("resource not found")
)

type LogGroup struct {
	Name            string
	CreationTime    time.Time
	RetentionInDays int32
}

type Event struct {
	ID            string
	LogGroup      string
	LogStream     string
	Timestamp     int64 // ms since epoch
	IngestionTime int64 // ms since epoch
	Message       string
}

// Cursor marks the last event returned by a previous page.
type Cursor struct {
	Timestamp int64
	ID        string
}

func (c Cursor) IsZero() bool {
	return c == Cursor{}
}

func (c Cursor) before(e Event) bool {
	if e.Timestamp != c.Timestamp {
		return c.Timestamp < e.Timestamp
	}
	return c.ID < e.ID
}

// Query selects events of one group ordered by (Timestamp, ID). Zero
// StartTime/EndTime leave that side open; EndTime is inclusive.
type Query struct {
	LogGroup  string
	StartTime int64
	EndTime   int64
	Pattern   string
	After     Cursor
	Limit     int
}

func (q Query) matches(e Event) bool {
	if q.StartTime != 0 && e.Timestamp < q.StartTime {
		return false
	}
	if q.EndTime != 0 && e.Timestamp > q.EndTime {
		return false
	}
	if !q.After.IsZero() && !q.After.before(e) {
		return false
	}
	return MatchPattern(q.Pattern, e.Message)
}

// MatchPattern implements the term form of CloudWatch Logs filter
// patterns: every whitespace separated term, optionally double quoted,
// must occur in the message. An empty pattern matches everything.
func MatchPattern(pattern, message string) bool {
	for _, term := range strings.Fields(pattern) {
		term = strings.Trim(term, `"`)
		if term != "" && !strings.Contains(message, term) {
			return false
		}
	}
	return true
}

type Store interface {
	CreateLogGroup(ctx context.Context, name string, createdAt time.Time) error
	GetLogGroup(ctx context.Context, name string) (LogGroup, error)
	ListLogGroups(ctx context.Context, prefix string) ([]LogGroup, error)
	PutRetention(ctx context.Context, name string, days int32) error

	// AppendEvent fails with ErrNotFound when the group does not exist.
	AppendEvent(ctx context.Context, event Event) error
	// FilterEvents returns at most q.Limit events (all when Limit is 0).
	FilterEvents(ctx context.Context, q Query) ([]Event, error)

	// GetLoggingConfig returns nil when no configuration is set.
	GetLoggingConfig(ctx context.Context) ([]byte, error)
	PutLoggingConfig(ctx context.Context, doc []byte) error
	DeleteLoggingConfig(ctx context.Context) error

	PutObject(ctx context.Context, bucket, key string, data []byte) error
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)

	Close() error
}
