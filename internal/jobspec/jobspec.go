/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package jobspec reads export job files: a JSON description of one proofing
// run (vehicle, rendered views, palette, gallery). Files are validated
// against an embedded schema before use so malformed jobs fail early with a
// readable message rather than half-way through an export.
package jobspec

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"wrapproof/internal/domain"
	"wrapproof/internal/export"
)

//go:embed schema.json
var schemaBytes []byte

// Job is one parsed export job file.
type Job struct {
	Vehicle      domain.Vehicle       `json:"vehicle"`
	DesignName   string               `json:"designName,omitempty"`
	Tool         string               `json:"tool,omitempty"` // registry key
	ToolName     string               `json:"toolName,omitempty"`
	Manufacturer string               `json:"manufacturer,omitempty"`
	Views        []domain.ProofView   `json:"views"`
	Colors       []domain.ColorSwatch `json:"colors,omitempty"`
	Gallery      []export.GalleryItem `json:"gallery,omitempty"`
	ShowcaseURL  string               `json:"showcaseUrl,omitempty"`
}

// Overlay builds the overlay spec shared by every stamped image of the job.
func (j Job) Overlay(toolLabel string) domain.OverlaySpec {
	return domain.OverlaySpec{
		ToolLabel:         toolLabel,
		Manufacturer:      j.Manufacturer,
		ColorOrDesignName: j.DesignName,
	}
}

// Load reads and validates an export job file.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}
	return Parse(data)
}

// Parse validates raw job bytes against the embedded schema and decodes them.
func Parse(data []byte) (*Job, error) {
	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	docLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("validate job: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("invalid job file: %s", strings.Join(msgs, "; "))
	}
	var j Job
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	if len(j.Views) == 0 && len(j.Colors) == 0 {
		return nil, errors.New("job has neither views nor colors")
	}
	return &j, nil
}
