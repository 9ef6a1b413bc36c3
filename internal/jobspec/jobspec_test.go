/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package jobspec

import (
	"os"
	"path/filepath"
	"testing"
)

const validJob = `{
  "vehicle": {"year": "2024", "make": "Ford", "model": "F-150"},
  "designName": "Desert Drift",
  "tool": "colorpro",
  "manufacturer": "3M",
  "views": [
    {"type": "front", "url": "https://renders.example.com/front.png"},
    {"type": "side", "url": "https://renders.example.com/side.png", "label": "Driver Side"}
  ],
  "colors": [
    {"name": "Solar Flare", "hex": "#FF5A1F", "family": "Bright", "finish": "Gloss"}
  ]
}`

func TestParseValidJob(t *testing.T) {
	j, err := Parse([]byte(validJob))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if j.Vehicle.Make != "Ford" || len(j.Views) != 2 || len(j.Colors) != 1 {
		t.Errorf("unexpected job contents: %+v", j)
	}
	spec := j.Overlay("ColorPro™")
	if spec.ToolLabel != "ColorPro™" || spec.Manufacturer != "3M" || spec.ColorOrDesignName != "Desert Drift" {
		t.Errorf("unexpected overlay spec: %+v", spec)
	}
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"missing vehicle":   `{"views": [{"type": "front", "url": "x"}]}`,
		"bad hex":           `{"vehicle": {"year": "1", "make": "a", "model": "b"}, "views": [], "colors": [{"name": "X", "hex": "#12"}]}`,
		"unknown field":     `{"vehicle": {"year": "1", "make": "a", "model": "b"}, "views": [], "bogus": true}`,
		"view without url":  `{"vehicle": {"year": "1", "make": "a", "model": "b"}, "views": [{"type": "front"}]}`,
		"not even json":     `{{{`,
		"empty views+color": `{"vehicle": {"year": "1", "make": "a", "model": "b"}, "views": []}`,
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.json")
	if err := os.WriteFile(path, []byte(validJob), 0o644); err != nil {
		t.Fatal(err)
	}
	j, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if j.DesignName != "Desert Drift" {
		t.Errorf("DesignName = %q", j.DesignName)
	}
	if _, err := Load(filepath.Join(dir, "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
