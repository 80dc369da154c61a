// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logreader

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/bedrock-invocation-logging/internal/model"
)

const NoRecordsMessage = "No log records yet. Delivery can take a few minutes after an invocation."

// Render prints records for an operator. Invocation log records get a
// summary line ahead of the raw message.
func Render(w io.Writer, records []model.LogRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, NoRecordsMessage)
		return err
	}

	for _, record := range records {
		if _, err := fmt.Fprintf(w, "%s  %s\n", record.Timestamp.UTC().Format(time.RFC3339Nano), record.LogStreamName); err != nil {
			return err
		}
		if entry, err := model.ParseInvocationLog(record.Message); err == nil {
			if _, err := fmt.Fprintf(w, "  %s %s requestId=%s inputTokens=%d outputTokens=%d\n",
				entry.Operation, entry.ModelID, entry.RequestID, entry.Input.InputTokenCount, entry.Output.OutputTokenCount); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "  %s\n", strings.TrimRight(record.Message, "\n")); err != nil {
			return err
		}
	}
	return nil
}
