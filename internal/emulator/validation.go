// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package emulator

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	log "github.com/sirupsen/logrus"
)

//go:embed schema/logging-config-schema.json
var loggingConfigSchemaDoc []byte
var loggingConfigSchema *jsonschema.Schema

var logGroupNamePattern = regexp.MustCompile(`^[\.\-_/#A-Za-z0-9]{1,512}$`)

func init() {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("logging-config-schema.json", bytes.NewReader(loggingConfigSchemaDoc)); err != nil {
		log.WithError(err).Error("error adding logging config schema resource")
		panic(err)
	}

	var err error
	loggingConfigSchema, err = compiler.Compile("logging-config-schema.json")
	if err != nil {
		log.WithError(err).Error("error compiling logging config schema")
		panic(err)
	}
}

func validateLoggingConfigJSON(jsonData []byte) error {
	var rawData map[string]any
	if err := json.Unmarshal(jsonData, &rawData); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	if err := loggingConfigSchema.Validate(rawData); err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	return nil
}

func validLogGroupName(name string) bool {
	return logGroupNamePattern.MatchString(name)
}
