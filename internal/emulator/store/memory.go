// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

type memoryGroup struct {
	mutex  sync.RWMutex
	info   LogGroup
	events []Event
}

type Memory struct {
	groups  cmap.ConcurrentMap[string, *memoryGroup]
	objects cmap.ConcurrentMap[string, []byte]

	configMutex sync.RWMutex
	config      []byte
}

func NewMemory() *Memory {
	return &Memory{
		groups:  cmap.New[*memoryGroup](),
		objects: cmap.New[[]byte](),
	}
}

func (m *Memory) CreateLogGroup(_ context.Context, name string, createdAt time.Time) error {
	if !m.groups.SetIfAbsent(name, &memoryGroup{info: LogGroup{Name: name, CreationTime: createdAt}}) {
		return ErrAlreadyExists
	}
	return nil
}

func (m *Memory) GetLogGroup(_ context.Context, name string) (LogGroup, error) {
	g, ok := m.groups.Get(name)
	if !ok {
		return LogGroup{}, ErrNotFound
	}
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.info, nil
}

func (m *Memory) ListLogGroups(_ context.Context, prefix string) ([]LogGroup, error) {
	var groups []LogGroup
	for name, g := range m.groups.Items() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		g.mutex.RLock()
		groups = append(groups, g.info)
		g.mutex.RUnlock()
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}

func (m *Memory) PutRetention(_ context.Context, name string, days int32) error {
	g, ok := m.groups.Get(name)
	if !ok {
		return ErrNotFound
	}
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.info.RetentionInDays = days
	return nil
}

func (m *Memory) AppendEvent(_ context.Context, event Event) error {
	g, ok := m.groups.Get(event.LogGroup)
	if !ok {
		return ErrNotFound
	}
	g.mutex.Lock()
	defer g.mutex.Unlock()

	// keep events sorted by (Timestamp, ID)
	i := sort.Search(len(g.events), func(i int) bool {
		return Cursor{Timestamp: event.Timestamp, ID: event.ID}.before(g.events[i])
	})
	g.events = append(g.events, Event{})
	copy(g.events[i+1:], g.events[i:])
	g.events[i] = event
	return nil
}

func (m *Memory) FilterEvents(_ context.Context, q Query) ([]Event, error) {
	g, ok := m.groups.Get(q.LogGroup)
	if !ok {
		return nil, ErrNotFound
	}
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var events []Event
	for _, e := range g.events {
		if !q.matches(e) {
			continue
		}
		events = append(events, e)
		if q.Limit > 0 && len(events) >= q.Limit {
			break
		}
	}
	return events, nil
}

func (m *Memory) GetLoggingConfig(_ context.Context) ([]byte, error) {
	m.configMutex.RLock()
	defer m.configMutex.RUnlock()
	return m.config, nil
}

func (m *Memory) PutLoggingConfig(_ context.Context, doc []byte) error {
	m.configMutex.Lock()
	defer m.configMutex.Unlock()
	m.config = append([]byte(nil), doc...)
	return nil
}

func (m *Memory) DeleteLoggingConfig(_ context.Context) error {
	m.configMutex.Lock()
	defer m.configMutex.Unlock()
	m.config = nil
	return nil
}

func objectKey(bucket, key string) string {
	return bucket + "/" + key
}

func (m *Memory) PutObject(_ context.Context, bucket, key string, data []byte) error {
	m.objects.Set(objectKey(bucket, key), append([]byte(nil), data...))
	return nil
}

func (m *Memory) GetObject(_ context.Context, bucket, key string) ([]byte, error) {
	data, ok := m.objects.Get(objectKey(bucket, key))
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (m *Memory) Close() error {
	return nil
}
