// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package emulator

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"

	"github.com/aws/bedrock-invocation-logging/internal/emulator/store"
)

func (e *Emulator) putLoggingConfig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeValidation, "Failed to read request body: %s", err)
		return
	}
	if err := validateLoggingConfigJSON(body); err != nil {
		RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeValidation, "%s", err)
		return
	}

	var req loggingConfigEnvelope
	if err := json.Unmarshal(body, &req); err != nil {
		RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeValidation, "Invalid JSON: %s", err)
		return
	}

	if cw := req.LoggingConfig.CloudWatchConfig; cw != nil {
		_, err := e.store.GetLogGroup(r.Context(), cw.LogGroupName)
		if errors.Is(err, store.ErrNotFound) {
			RenderAWSError(w, r, http.StatusBadRequest, ErrorTypeValidation, "Failed to validate permissions for log group: %s, with role: %s. Verify the log group exists", cw.LogGroupName, cw.RoleArn)
			return
		}
		if err != nil {
			RenderInternalServerError(w, r, err)
			return
		}
	}

	doc, err := json.Marshal(req.LoggingConfig)
	if err != nil {
		RenderInternalServerError(w, r, err)
		return
	}
	if err := e.store.PutLoggingConfig(r.Context(), doc); err != nil {
		RenderInternalServerError(w, r, err)
		return
	}

	log.WithField("config", string(doc)).Info("Invocation logging configured")
	render.JSON(w, r, struct{}{})
}

func (e *Emulator) getLoggingConfig(w http.ResponseWriter, r *http.Request) {
	doc, err := e.store.GetLoggingConfig(r.Context())
	if err != nil {
		RenderInternalServerError(w, r, err)
		return
	}

	var resp loggingConfigEnvelope
	if doc != nil {
		resp.LoggingConfig = &loggingConfigDoc{}
		if err := json.Unmarshal(doc, resp.LoggingConfig); err != nil {
			RenderInternalServerError(w, r, err)
			return
		}
	}
	render.JSON(w, r, resp)
}

func (e *Emulator) deleteLoggingConfig(w http.ResponseWriter, r *http.Request) {
	if err := e.store.DeleteLoggingConfig(r.Context()); err != nil {
		RenderInternalServerError(w, r, err)
		return
	}
	log.Info("Invocation logging disabled")
	render.JSON(w, r, struct{}{})
}

// loggingConfig returns the active configuration, nil when logging is off.
func (e *Emulator) loggingConfig(r *http.Request) (*loggingConfigDoc, error) {
	doc, err := e.store.GetLoggingConfig(r.Context())
	if err != nil || doc == nil {
		return nil, err
	}
	var cfg loggingConfigDoc
	if err := json.Unmarshal(doc, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (e *Emulator) getObject(w http.ResponseWriter, r *http.Request) {
	data, err := e.store.GetObject(r.Context(), urlParam(r, "bucket"), urlParam(r, "*"))
	if errors.Is(err, store.ErrNotFound) {
		RenderAWSError(w, r, http.StatusNotFound, "NoSuchKey", "The specified key does not exist.")
		return
	}
	if err != nil {
		RenderInternalServerError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		log.WithError(err).Warn("Error while writing object")
	}
}
