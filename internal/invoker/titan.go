// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package invoker

import (
	"encoding/json"

	"github.com/aws/bedrock-invocation-logging/internal/model"
)

// TitanTextRequest is the body accepted by amazon.titan-text-* models.
type TitanTextRequest struct {
	InputText            string                 `json:"inputText"`
	TextGenerationConfig model.GenerationParams `json:"textGenerationConfig"`
}

type TitanTextResult struct {
	TokenCount       int     `json:"tokenCount"`
	OutputText       *string `json:"outputText"`
	CompletionReason string  `json:"completionReason"`
}

// TitanTextResponse is the envelope returned by amazon.titan-text-* models.
type TitanTextResponse struct {
	InputTextTokenCount int               `json:"inputTextTokenCount"`
	Results             []TitanTextResult `json:"results"`
}

func EncodeTitanRequest(prompt string, params model.GenerationParams) ([]byte, error) {
	return json.Marshal(TitanTextRequest{InputText: prompt, TextGenerationConfig: params})
}

// DecodeTitanResponse parses an envelope and insists on a first candidate
// with an outputText field. An empty string is a valid generation, a
// missing field is not.
func DecodeTitanResponse(body []byte) (TitanTextResponse, string, error) {
	var resp TitanTextResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return TitanTextResponse{}, "", model.NewAppError(model.ErrorMalformedResponse,
			model.WithOperation("InvokeModel"), model.WithErrorMessage("response body is not a JSON envelope"), model.WithCause(err))
	}
	if len(resp.Results) == 0 {
		return resp, "", model.NewAppError(model.ErrorMalformedResponse,
			model.WithOperation("InvokeModel"), model.WithErrorMessage("response envelope has no results"))
	}
	if resp.Results[0].OutputText == nil {
		return resp, "", model.NewAppError(model.ErrorMalformedResponse,
			model.WithOperation("InvokeModel"), model.WithErrorMessage("first result has no outputText"))
	}
	return resp, *resp.Results[0].OutputText, nil
}
