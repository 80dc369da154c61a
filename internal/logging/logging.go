// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"io"
	"log"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

type utcFormatter struct {
	logrus.TextFormatter
}

func (f *utcFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Time = entry.Time.UTC()
	return f.TextFormatter.Format(entry)
}

func init() {
	logrus.SetFormatter(&utcFormatter{logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	}})
}

// SetOutput configures logging output for standard loggers.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
	logrus.SetOutput(w)
}

// ConfigureLogging sets the logrus level. Empty or unknown levels fall back to info.
func ConfigureLogging(levelStr string) {
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		logrus.WithError(err).Warnf("Unknown log level %q, using info", levelStr)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
