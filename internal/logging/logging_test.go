// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestConfigureLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	ConfigureLogging("debug")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	ConfigureLogging("not-a-level")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	ConfigureLogging("warn")
	ConfigureLogging("")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestSetOutputUsesUTCTimestamps(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	logrus.WithField("run_id", "abc").Info("hello")

	out := buf.String()
	assert.Contains(t, out, `msg=hello`)
	assert.Contains(t, out, `run_id=abc`)
	assert.Regexp(t, `time="\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z"`, out)
}
