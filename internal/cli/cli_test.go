// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws/bedrock-invocation-logging/internal/emulator"
	"github.com/aws/bedrock-invocation-logging/internal/emulator/store"
	"github.com/aws/bedrock-invocation-logging/internal/logging"
	"github.com/aws/bedrock-invocation-logging/internal/logreader"
	"github.com/aws/bedrock-invocation-logging/internal/model"
	"github.com/aws/bedrock-invocation-logging/internal/settings"
)

const (
	testRoleArn = "arn:aws:iam::000000000000:role/BedrockInvocationLogging"
	testBucket  = "my-invocation-log-bucket"
)

type harness struct {
	emulator *emulator.Emulator
	server   *httptest.Server
}

func newHarness(t *testing.T) *harness {
	logging.SetOutput(io.Discard)
	t.Cleanup(func() { logging.SetOutput(os.Stderr) })

	for _, key := range []string{"AWS_PROFILE", "LOG_LEVEL", "BEDROCK_LOGGING_ENDPOINT_URL", settings.ConsoleURLEnvKey} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	t.Setenv(settings.RoleArnEnvKey, testRoleArn)
	t.Setenv(settings.BucketNameEnvKey, testBucket)

	em := emulator.New(store.NewMemory(), emulator.Options{})
	server := httptest.NewServer(em.Router())
	t.Cleanup(server.Close)
	return &harness{emulator: em, server: server}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	args = append([]string{"--endpoint-url", h.server.URL, "--region", "us-east-1"}, args...)
	err := Run(context.Background(), args, &out)
	return out.String(), err
}

func TestRunEndToEnd(t *testing.T) {
	h := newHarness(t)
	t.Setenv(settings.ConsoleURLEnvKey, "https://console.example/bedrock")

	out, err := h.run(t, "run", "--show-logs", "--lookback", "1h")
	require.NoError(t, err, out)

	assert.Contains(t, out, "logGroupName:            "+model.DefaultLogGroupName)
	assert.Contains(t, out, "roleArn:                 "+testRoleArn)
	assert.Contains(t, out, "largeDataDelivery:       s3://"+testBucket+"/"+model.DefaultLargeDataKeyPrefix)
	assert.Contains(t, out, "\nGeneration:\nEmulated response to: Write one line description of Buenos Aires.\n")
	assert.Contains(t, out, "InvokeModel "+model.DefaultModelID+" requestId=")
	assert.Contains(t, out, "\nAWS console: https://console.example/bedrock\n")

	// the log group now exists, a second run reuses it
	out, err = h.run(t, "run")
	require.NoError(t, err, out)
	assert.NotContains(t, out, "Recent log records")
}

func TestRunStopsOnMissingSettings(t *testing.T) {
	h := newHarness(t)
	t.Setenv(settings.RoleArnEnvKey, "")
	require.NoError(t, os.Unsetenv(settings.RoleArnEnvKey))
	t.Setenv(settings.BucketNameEnvKey, "")
	require.NoError(t, os.Unsetenv(settings.BucketNameEnvKey))

	_, err := h.run(t, "run")
	require.Error(t, err)
	assert.True(t, model.IsErrorType(err, model.ErrorMissingConfiguration))
	assert.Contains(t, err.Error(), settings.RoleArnEnvKey)
	assert.Contains(t, err.Error(), settings.BucketNameEnvKey)

	assert.Zero(t, testutil.CollectAndCount(h.emulator.Metrics().APIRequests))
}

func TestConfigCommands(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "show-config")
	require.NoError(t, err)
	assert.Contains(t, out, "Model invocation logging is not configured.")

	out, err = h.run(t, "enable", "--no-s3-delivery", "--retention-days", "7")
	require.NoError(t, err, out)
	assert.Contains(t, out, "s3Delivery:              -")

	out, err = h.run(t, "show-config")
	require.NoError(t, err)
	assert.Contains(t, out, "logGroupName:            "+model.DefaultLogGroupName)

	out, err = h.run(t, "disable")
	require.NoError(t, err)
	assert.Contains(t, out, "Model invocation logging disabled.")

	out, err = h.run(t, "show-config")
	require.NoError(t, err)
	assert.Contains(t, out, "Model invocation logging is not configured.")
}

func TestGenerateAndLogs(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "logs", "--log-group", "/not/created")
	require.Error(t, err)
	assert.True(t, model.IsErrorType(err, model.ErrorResourceNotFound), err.Error())
	assert.Empty(t, out)

	_, err = h.run(t, "enable")
	require.NoError(t, err)

	out, err = h.run(t, "generate", "--prompt", "Hello there", "--max-tokens", "4")
	require.NoError(t, err)
	assert.Equal(t, "Emulated response to: Hello\n", out)

	out, err = h.run(t, "logs", "--lookback", "1h")
	require.NoError(t, err)
	assert.Contains(t, out, model.InvocationLogStreamName)
	assert.Contains(t, out, "inputTokens=2 outputTokens=4")

	out, err = h.run(t, "logs", "--lookback", "1h", "--filter", `"no-such-term"`)
	require.NoError(t, err)
	assert.Contains(t, out, logreader.NoRecordsMessage)
}

func TestGenerateRejectsUnknownModel(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "generate", "--model-id", "anthropic.claude-v2")
	require.Error(t, err)
	assert.True(t, model.IsErrorType(err, model.ErrorInvalidRequest), err.Error())
}

func TestHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), []string{"--help"}, &out))
	assert.Contains(t, out.String(), "bedrock-logging")
	assert.Contains(t, out.String(), "show-config")
}
