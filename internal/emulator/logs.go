// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package emulator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/aws/bedrock-invocation-logging/internal/emulator/store"
)

const (
	logsTargetPrefix = "Logs_20140328."

	maxFilterPageSize = 10000
)

func logsOperation(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("X-Amz-Target"), logsTargetPrefix)
}

func (e *Emulator) handleLogs(w http.ResponseWriter, r *http.Request) {
	target := r.Header.Get("X-Amz-Target")
	if !strings.HasPrefix(target, logsTargetPrefix) {
		RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeUnknownOperation, "Unknown target %q", target)
		return
	}

	switch op := logsOperation(r); op {
	case "CreateLogGroup":
		e.createLogGroup(w, r)
	case "PutRetentionPolicy":
		e.putRetentionPolicy(w, r)
	case "DescribeLogGroups":
		e.describeLogGroups(w, r)
	case "FilterLogEvents":
		e.filterLogEvents(w, r)
	default:
		RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeUnknownOperation, "Operation %s is not supported", op)
	}
}

func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeInvalidParameter, "Could not parse request body: %s", err)
		return false
	}
	return true
}

func (e *Emulator) createLogGroup(w http.ResponseWriter, r *http.Request) {
	var req createLogGroupRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if !validLogGroupName(req.LogGroupName) {
		RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeInvalidParameter, "Invalid log group name %q", req.LogGroupName)
		return
	}

	err := e.store.CreateLogGroup(r.Context(), req.LogGroupName, e.now())
	if errors.Is(err, store.ErrAlreadyExists) {
		RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeResourceAlreadyExists, "The specified log group already exists")
		return
	}
	if err != nil {
		RenderInternalServerError(w, r, err)
		return
	}

	log.WithField("logGroup", req.LogGroupName).Info("Log group created")
	renderAmzJSON(w, r, struct{}{})
}

func (e *Emulator) putRetentionPolicy(w http.ResponseWriter, r *http.Request) {
	var req putRetentionPolicyRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.RetentionInDays <= 0 {
		RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeInvalidParameter, "Invalid retentionInDays %d", req.RetentionInDays)
		return
	}

	err := e.store.PutRetention(r.Context(), req.LogGroupName, req.RetentionInDays)
	if errors.Is(err, store.ErrNotFound) {
		RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeResourceNotFound, "The specified log group does not exist.")
		return
	}
	if err != nil {
		RenderInternalServerError(w, r, err)
		return
	}
	renderAmzJSON(w, r, struct{}{})
}

func (e *Emulator) describeLogGroups(w http.ResponseWriter, r *http.Request) {
	var req describeLogGroupsRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	groups, err := e.store.ListLogGroups(r.Context(), req.LogGroupNamePrefix)
	if err != nil {
		RenderInternalServerError(w, r, err)
		return
	}

	resp := describeLogGroupsResponse{LogGroups: make([]logGroupDoc, 0, len(groups))}
	for _, g := range groups {
		resp.LogGroups = append(resp.LogGroups, logGroupDoc{
			LogGroupName:    g.Name,
			Arn:             fmt.Sprintf("arn:aws:logs:%s:%s:log-group:%s:*", e.opts.Region, e.opts.AccountID, g.Name),
			CreationTime:    g.CreationTime.UnixMilli(),
			RetentionInDays: g.RetentionInDays,
		})
	}
	renderAmzJSON(w, r, resp)
}

func (e *Emulator) filterLogEvents(w http.ResponseWriter, r *http.Request) {
	var req filterLogEventsRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	after, err := parseNextToken(req.NextToken)
	if err != nil {
		RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeInvalidParameter, "Invalid nextToken")
		return
	}

	limit := maxFilterPageSize
	if req.Limit > 0 && req.Limit < limit {
		limit = req.Limit
	}

	// one extra event tells whether another page exists
	events, err := e.store.FilterEvents(r.Context(), store.Query{
		LogGroup:  req.LogGroupName,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Pattern:   req.FilterPattern,
		After:     after,
		Limit:     limit + 1,
	})
	if errors.Is(err, store.ErrNotFound) {
		RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeResourceNotFound, "The specified log group does not exist.")
		return
	}
	if err != nil {
		RenderInternalServerError(w, r, err)
		return
	}

	resp := filterLogEventsResponse{
		Events:             make([]filteredLogEventDoc, 0, len(events)),
		SearchedLogStreams: []interface{}{},
	}
	if len(events) > limit {
		events = events[:limit]
		last := events[len(events)-1]
		resp.NextToken = formatNextToken(store.Cursor{Timestamp: last.Timestamp, ID: last.ID})
	}
	for _, ev := range events {
		resp.Events = append(resp.Events, filteredLogEventDoc{
			LogStreamName: ev.LogStream,
			Timestamp:     ev.Timestamp,
			Message:       ev.Message,
			IngestionTime: ev.IngestionTime,
			EventID:       ev.ID,
		})
	}
	renderAmzJSON(w, r, resp)
}

func formatNextToken(c store.Cursor) string {
	return strconv.FormatInt(c.Timestamp, 10) + "/" + c.ID
}

func parseNextToken(token string) (store.Cursor, error) {
	if token == "" {
		return store.Cursor{}, nil
	}
	ts, id, ok := strings.Cut(token, "/")
	if !ok || id == "" {
		return store.Cursor{}, fmt.Errorf("malformed token %q", token)
	}
	timestamp, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return store.Cursor{}, fmt.Errorf("malformed token %q: %w", token, err)
	}
	return store.Cursor{Timestamp: timestamp, ID: id}, nil
}
