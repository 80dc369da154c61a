// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS log_groups(
		name TEXT PRIMARY KEY,
		created_ms INTEGER NOT NULL,
		retention_days INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS events(
		id TEXT NOT NULL,
		log_group TEXT NOT NULL REFERENCES log_groups(name),
		log_stream TEXT NOT NULL,
		ts INTEGER NOT NULL,
		ingestion_ms INTEGER NOT NULL,
		message TEXT NOT NULL,
		PRIMARY KEY (log_group, ts, id)
	)`,
	`CREATE TABLE IF NOT EXISTS logging_config(
		id INTEGER PRIMARY KEY CHECK (id = 1),
		doc BLOB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS objects(
		bucket TEXT NOT NULL,
		key TEXT NOT NULL,
		data BLOB NOT NULL,
		PRIMARY KEY (bucket, key)
	)`,
}

// SQLite persists emulator state across restarts.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY under the HTTP server
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) CreateLogGroup(ctx context.Context, name string, createdAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO log_groups(name, created_ms) VALUES(?, ?)`, name, createdAt.UnixMilli())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (s *SQLite) GetLogGroup(ctx context.Context, name string) (LogGroup, error) {
	var g LogGroup
	var created int64
	err := s.db.QueryRowContext(ctx, `SELECT name, created_ms, retention_days FROM log_groups WHERE name = ?`, name).
		Scan(&g.Name, &created, &g.RetentionInDays)
	if errors.Is(err, sql.ErrNoRows) {
		return LogGroup{}, ErrNotFound
	}
	if err != nil {
		return LogGroup{}, err
	}
	g.CreationTime = time.UnixMilli(created)
	return g, nil
}

func (s *SQLite) ListLogGroups(ctx context.Context, prefix string) ([]LogGroup, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, created_ms, retention_days FROM log_groups WHERE substr(name, 1, length(?)) = ? ORDER BY name`, prefix, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []LogGroup
	for rows.Next() {
		var g LogGroup
		var created int64
		if err := rows.Scan(&g.Name, &created, &g.RetentionInDays); err != nil {
			return nil, err
		}
		g.CreationTime = time.UnixMilli(created)
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (s *SQLite) PutRetention(ctx context.Context, name string, days int32) error {
	res, err := s.db.ExecContext(ctx, `UPDATE log_groups SET retention_days = ? WHERE name = ?`, days, name)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) AppendEvent(ctx context.Context, event Event) error {
	if _, err := s.GetLogGroup(ctx, event.LogGroup); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events(id, log_group, log_stream, ts, ingestion_ms, message) VALUES(?,?,?,?,?,?)`,
		event.ID, event.LogGroup, event.LogStream, event.Timestamp, event.IngestionTime, event.Message)
	return err
}

func (s *SQLite) FilterEvents(ctx context.Context, q Query) ([]Event, error) {
	if _, err := s.GetLogGroup(ctx, q.LogGroup); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, log_group, log_stream, ts, ingestion_ms, message FROM events WHERE log_group = ? ORDER BY ts, id`, q.LogGroup)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.LogGroup, &e.LogStream, &e.Timestamp, &e.IngestionTime, &e.Message); err != nil {
			return nil, err
		}
		if !q.matches(e) {
			continue
		}
		events = append(events, e)
		if q.Limit > 0 && len(events) >= q.Limit {
			break
		}
	}
	return events, rows.Err()
}

func (s *SQLite) GetLoggingConfig(ctx context.Context) ([]byte, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM logging_config WHERE id = 1`).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return doc, err
}

func (s *SQLite) PutLoggingConfig(ctx context.Context, doc []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO logging_config(id, doc) VALUES(1, ?)`, doc)
	return err
}

func (s *SQLite) DeleteLoggingConfig(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM logging_config`)
	return err
}

func (s *SQLite) PutObject(ctx context.Context, bucket, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO objects(bucket, key, data) VALUES(?,?,?)`, bucket, key, data)
	return err
}

func (s *SQLite) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM objects WHERE bucket = ? AND key = ?`, bucket, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
