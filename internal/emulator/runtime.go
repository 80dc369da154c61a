// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package emulator

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/aws/bedrock-invocation-logging/internal/invoker"
	"github.com/aws/bedrock-invocation-logging/internal/model"
)

const titanTextModelPrefix = "amazon.titan-text"

func urlParam(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

func (e *Emulator) invokeModel(w http.ResponseWriter, r *http.Request) {
	modelID := urlParam(r, "modelId")
	if !strings.HasPrefix(modelID, titanTextModelPrefix) {
		RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeValidation, "The provided model identifier is invalid.")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeValidation, "Malformed input request")
		return
	}
	var req invoker.TitanTextRequest
	if err := json.Unmarshal(body, &req); err != nil || req.InputText == "" {
		RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeValidation, "Malformed input request, please reformat your input and try again.")
		return
	}

	resp := respondTitan(req)
	out, err := json.Marshal(resp)
	if err != nil {
		RenderInternalServerError(w, r, err)
		return
	}

	e.metrics.Invocations.WithLabelValues(modelID).Inc()
	requestID := requestIDFrom(r.Context())

	cfg, err := e.loggingConfig(r)
	if err != nil {
		log.WithError(err).Warn("Could not read invocation logging configuration")
	} else if cfg != nil {
		e.scheduleDelivery(*cfg, invocation{
			requestID:    requestID,
			modelID:      modelID,
			timestamp:    e.now(),
			contentType:  r.Header.Get("Content-Type"),
			inputBody:    body,
			outputBody:   out,
			inputTokens:  resp.InputTextTokenCount,
			outputTokens: resp.Results[0].TokenCount,
		})
	}

	w.Header().Set("Content-Type", model.InferenceContentType)
	w.Header().Set("X-Amzn-Bedrock-Input-Token-Count", strconv.Itoa(resp.InputTextTokenCount))
	w.Header().Set("X-Amzn-Bedrock-Output-Token-Count", strconv.Itoa(resp.Results[0].TokenCount))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		log.WithError(err).Warn("Error while writing invocation response")
	}
}

// respondTitan produces a deterministic completion: the prompt echoed back
// word by word, cut at maxTokenCount with words counted as tokens.
func respondTitan(req invoker.TitanTextRequest) invoker.TitanTextResponse {
	input := strings.Fields(req.InputText)
	words := append([]string{"Emulated", "response", "to:"}, input...)

	reason := "FINISH"
	if limit := req.TextGenerationConfig.MaxTokenCount; limit > 0 && len(words) > limit {
		words = words[:limit]
		reason = "LENGTH"
	}
	text := strings.Join(words, " ")

	return invoker.TitanTextResponse{
		InputTextTokenCount: len(input),
		Results: []invoker.TitanTextResult{{
			TokenCount:       len(words),
			OutputText:       &text,
			CompletionReason: reason,
		}},
	}
}
