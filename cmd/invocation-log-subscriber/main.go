// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/aws/bedrock-invocation-logging/internal/logging"
	"github.com/aws/bedrock-invocation-logging/internal/subscriber"
)

func main() {
	logging.ConfigureLogging(os.Getenv("LOG_LEVEL"))
	lambda.Start(subscriber.NewHandler().Handle)
}
