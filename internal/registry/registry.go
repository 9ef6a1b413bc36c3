/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package registry is the single source of truth for tool branding strings.
// The table is fixed at compile time; there is no runtime registration, so
// every exported artifact carries a consistently branded tool label.
package registry

import "strings"

// Entry describes one visualization tool of the storefront.
type Entry struct {
	Key         string
	Label       string // branded display name, immutable
	Description string
}

// FallbackLabel is used when neither a key nor a legacy name resolves.
const FallbackLabel = "WrapForge Studio"

var entries = []Entry{
	{Key: "colorpro", Label: "ColorPro™", Description: "Solid color wrap visualizer"},
	{Key: "fadewraps", Label: "FadeWraps™", Description: "Gradient fade wrap designer"},
	{Key: "chromeshift", Label: "ChromeShift™", Description: "Color-shift chrome visualizer"},
	{Key: "patterncraft", Label: "PatternCraft™", Description: "Printed pattern wrap designer"},
}

var byKey = func() map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Key] = e
	}
	return m
}()

// Entries returns the full tool table in declaration order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup returns the entry for a registry key.
func Lookup(key string) (Entry, bool) {
	e, ok := byKey[key]
	return e, ok
}

// ResolveLabel maps a tool identification to its canonical display label.
//
// Resolution order: a valid registry key wins; otherwise the legacy free-form
// name is normalized and looked up, silently correcting caller-supplied
// spelling to the registry's authoritative form. Unknown legacy names pass
// through verbatim so future tools degrade gracefully instead of vanishing.
func ResolveLabel(key, legacyName string) string {
	if e, ok := byKey[strings.TrimSpace(key)]; ok {
		return e.Label
	}
	if legacy := strings.TrimSpace(legacyName); legacy != "" {
		norm := Normalize(legacy)
		for _, e := range entries {
			if Normalize(e.Label) == norm || e.Key == norm {
				return e.Label
			}
		}
		return legacy
	}
	return FallbackLabel
}

// Normalize strips trademark symbols and whitespace and lowercases, for
// legacy-name matching.
func Normalize(s string) string {
	repl := strings.NewReplacer("™", "", "®", "", " ", "", "\t", "")
	return strings.ToLower(repl.Replace(s))
}
