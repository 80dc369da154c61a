// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package invoker

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	log "github.com/sirupsen/logrus"

	"github.com/aws/bedrock-invocation-logging/internal/awserr"
	"github.com/aws/bedrock-invocation-logging/internal/model"
)

// RuntimeAPI is the subset of the Bedrock runtime client used for inference.
type RuntimeAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type Invoker struct {
	client RuntimeAPI
}

func NewInvoker(client RuntimeAPI) *Invoker {
	return &Invoker{client: client}
}

// NewRequest builds the request envelope. Parameters are not range-checked.
func NewRequest(modelID, prompt string, params model.GenerationParams) (model.InferenceRequest, error) {
	body, err := EncodeTitanRequest(prompt, params)
	if err != nil {
		return model.InferenceRequest{}, fmt.Errorf("failed to encode request body: %w", err)
	}
	return model.InferenceRequest{
		ModelID:     modelID,
		ContentType: model.InferenceContentType,
		Accept:      model.InferenceAccept,
		Body:        body,
	}, nil
}

// InvokeRaw sends req and returns the raw response body.
func (i *Invoker) InvokeRaw(ctx context.Context, req model.InferenceRequest) ([]byte, error) {
	out, err := i.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(req.ModelID),
		ContentType: aws.String(req.ContentType),
		Accept:      aws.String(req.Accept),
		Body:        req.Body,
	})
	if err != nil {
		return nil, awserr.Classify("InvokeModel", err)
	}
	if out == nil {
		return nil, model.NewAppError(model.ErrorMalformedResponse, model.WithOperation("InvokeModel"), model.WithErrorMessage("empty response"))
	}
	return out.Body, nil
}

// Generate runs one text generation and returns the first candidate's text.
func (i *Invoker) Generate(ctx context.Context, modelID, prompt string, params model.GenerationParams) (string, error) {
	req, err := NewRequest(modelID, prompt, params)
	if err != nil {
		return "", err
	}

	body, err := i.InvokeRaw(ctx, req)
	if err != nil {
		return "", err
	}

	resp, text, err := DecodeTitanResponse(body)
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"modelId":          modelID,
		"inputTokens":      resp.InputTextTokenCount,
		"outputTokens":     resp.Results[0].TokenCount,
		"completionReason": resp.Results[0].CompletionReason,
	}).Debug("Model invoked")
	return text, nil
}
