/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "strings"

// This file defines the core data model for the WrapForge proofing engine:
// overlay specs, proof views, vehicles and the vinyl swatch model shared by
// the stamper and the PDF assemblers.

// OverlaySpec describes the branding text burned into a render image.
// ToolLabel goes to the upper-left corner; the lower-right corner carries the
// space-joined concatenation of Manufacturer and ColorOrDesignName.
type OverlaySpec struct {
	ToolLabel         string `json:"toolLabel"`
	Manufacturer      string `json:"manufacturer,omitempty"`
	ColorOrDesignName string `json:"colorOrDesignName,omitempty"`
}

// CreditLine returns the lower-right overlay text: manufacturer and
// color/design name joined by a single space, empty parts omitted.
func (s OverlaySpec) CreditLine() string {
	parts := make([]string, 0, 2)
	if v := strings.TrimSpace(s.Manufacturer); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(s.ColorOrDesignName); v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, " ")
}

// Empty reports whether stamping this spec would draw no text at all.
func (s OverlaySpec) Empty() bool {
	return strings.TrimSpace(s.ToolLabel) == "" && s.CreditLine() == ""
}

// Vehicle identifies the vehicle a proof sheet is generated for.
type Vehicle struct {
	Year  string `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
}

// ProofView is a single rendered angle of a vehicle.
type ProofView struct {
	Type  string `json:"type"` // canonical view identifier, e.g. "front"
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// CanonicalViewOrder is the fixed slot order of the proof-sheet grid.
// Grid population always follows this order, never input order.
var CanonicalViewOrder = []string{"front", "side", "passenger-side", "rear", "top", "hero"}

// ViewDisplayNames maps canonical view identifiers to human labels used for
// cell captions and pending placeholders.
var ViewDisplayNames = map[string]string{
	"front":          "Front View",
	"side":           "Driver Side",
	"passenger-side": "Passenger Side",
	"rear":           "Rear View",
	"top":            "Top View",
	"hero":           "Hero Shot",
}

// DisplayName returns the human label for a canonical view type, or the type
// itself for unknown identifiers.
func DisplayName(viewType string) string {
	if n, ok := ViewDisplayNames[viewType]; ok {
		return n
	}
	return viewType
}

// Family is one of the four fixed swatch groupings used for poster and chart
// layout. Ordering is fixed; it is not derived from input order.
type Family string

const (
	FamilyBright  Family = "Bright"
	FamilyMid     Family = "Mid"
	FamilyDark    Family = "Dark"
	FamilyNeutral Family = "Neutral"
)

// FamilyOrder is the fixed layout order for swatch families.
var FamilyOrder = []Family{FamilyBright, FamilyMid, FamilyDark, FamilyNeutral}

// CodePrefix returns the single-letter product code prefix for the family.
func (f Family) CodePrefix() string {
	switch f {
	case FamilyBright:
		return "B"
	case FamilyMid:
		return "M"
	case FamilyDark:
		return "D"
	case FamilyNeutral:
		return "N"
	}
	return "X"
}

// Finish is the surface finish of a vinyl swatch.
type Finish string

const (
	FinishGloss Finish = "Gloss"
	FinishSatin Finish = "Satin"
	FinishMatte Finish = "Matte"
)

// ColorSwatch is one vinyl color in the catalog.
type ColorSwatch struct {
	Name   string `json:"name"`
	Hex    string `json:"hex"`
	Family Family `json:"family"`
	Finish Finish `json:"finish"`
}
