// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithEndpointUsesStaticCredentials(t *testing.T) {
	s, err := New(context.Background(), Options{EndpointURL: "http://127.0.0.1:4566"})
	require.NoError(t, err)

	assert.Equal(t, DefaultRegion, s.Region())

	creds, err := s.Config.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, emulatorAccessKeyID, creds.AccessKeyID)

	assert.NotNil(t, s.LogsClient())
	assert.NotNil(t, s.BedrockClient())
	assert.NotNil(t, s.RuntimeClient())
}

func TestNewHonoursRegion(t *testing.T) {
	s, err := New(context.Background(), Options{Region: "eu-west-1", EndpointURL: "http://127.0.0.1:4566"})
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", s.Region())
}

func TestNewUnknownProfile(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", t.TempDir()+"/config")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", t.TempDir()+"/credentials")

	_, err := New(context.Background(), Options{Profile: "does-not-exist"})
	assert.Error(t, err)
}
