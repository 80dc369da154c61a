// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logreader

import (
	"context"
	"iter"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	log "github.com/sirupsen/logrus"

	"github.com/aws/bedrock-invocation-logging/internal/awserr"
	"github.com/aws/bedrock-invocation-logging/internal/model"
)

// Reader reads back what the platform delivered to a log group. It is a
// verification aid: records show up some time after the invocation that
// produced them, so an empty result is normal right after invoking.
type Reader struct {
	client cloudwatchlogs.FilterLogEventsAPIClient
	now    func() time.Time

	// FilterPattern is passed to FilterLogEvents when set.
	FilterPattern string
	// Limit caps the number of records yielded; zero means no cap.
	Limit int
}

func NewReader(client cloudwatchlogs.FilterLogEventsAPIClient) *Reader {
	return &Reader{client: client, now: time.Now}
}

// Recent yields the records written to destination during the last
// lookback. The window is fixed when iteration starts and each new range
// over the sequence queries again. Records come in the order
// FilterLogEvents returns them, ascending by event timestamp. Pages are
// fetched only as the caller keeps iterating.
func (r *Reader) Recent(ctx context.Context, destination string, lookback time.Duration) iter.Seq2[model.LogRecord, error] {
	return func(yield func(model.LogRecord, error) bool) {
		end := r.now()
		start := end.Add(-lookback)

		input := &cloudwatchlogs.FilterLogEventsInput{
			LogGroupName: aws.String(destination),
			StartTime:    aws.Int64(start.UnixMilli()),
			EndTime:      aws.Int64(end.UnixMilli()),
		}
		if r.FilterPattern != "" {
			input.FilterPattern = aws.String(r.FilterPattern)
		}

		log.WithFields(log.Fields{"logGroup": destination, "start": start, "end": end}).Debug("Reading log events")

		yielded := 0
		paginator := cloudwatchlogs.NewFilterLogEventsPaginator(r.client, input)
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				yield(model.LogRecord{}, awserr.Classify("FilterLogEvents", err))
				return
			}
			for _, event := range page.Events {
				record := model.LogRecord{
					Timestamp:     time.UnixMilli(aws.ToInt64(event.Timestamp)),
					Message:       aws.ToString(event.Message),
					LogStreamName: aws.ToString(event.LogStreamName),
					EventID:       aws.ToString(event.EventId),
				}
				if !yield(record, nil) {
					return
				}
				yielded++
				if r.Limit > 0 && yielded >= r.Limit {
					return
				}
			}
		}
	}
}

// Collect drains a sequence, stopping at the first error.
func Collect(seq iter.Seq2[model.LogRecord, error]) ([]model.LogRecord, error) {
	var records []model.LogRecord
	for record, err := range seq {
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
	return records, nil
}
