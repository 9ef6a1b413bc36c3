/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "testing"

func TestCreditLine(t *testing.T) {
	cases := []struct {
		name string
		spec OverlaySpec
		want string
	}{
		{"both", OverlaySpec{Manufacturer: "InkFusion", ColorOrDesignName: "Celestial Aqua"}, "InkFusion Celestial Aqua"},
		{"manufacturer only", OverlaySpec{Manufacturer: "InkFusion"}, "InkFusion"},
		{"color only", OverlaySpec{ColorOrDesignName: "Celestial Aqua"}, "Celestial Aqua"},
		{"neither", OverlaySpec{}, ""},
		{"whitespace trimmed", OverlaySpec{Manufacturer: "  InkFusion ", ColorOrDesignName: " Aqua  "}, "InkFusion Aqua"},
	}
	for _, c := range cases {
		if got := c.spec.CreditLine(); got != c.want {
			t.Errorf("%s: CreditLine() = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestOverlaySpecEmpty(t *testing.T) {
	if !(OverlaySpec{}).Empty() {
		t.Fatalf("zero spec should be empty")
	}
	if (OverlaySpec{ToolLabel: "ColorPro™"}).Empty() {
		t.Fatalf("spec with tool label should not be empty")
	}
	if (OverlaySpec{ColorOrDesignName: "Aqua"}).Empty() {
		t.Fatalf("spec with color name should not be empty")
	}
}

func TestCanonicalViewOrder(t *testing.T) {
	want := []string{"front", "side", "passenger-side", "rear", "top", "hero"}
	if len(CanonicalViewOrder) != len(want) {
		t.Fatalf("canonical order has %d slots, want %d", len(CanonicalViewOrder), len(want))
	}
	for i, v := range want {
		if CanonicalViewOrder[i] != v {
			t.Errorf("slot %d = %q, want %q", i, CanonicalViewOrder[i], v)
		}
	}
	for _, v := range CanonicalViewOrder {
		if _, ok := ViewDisplayNames[v]; !ok {
			t.Errorf("no display name for canonical view %q", v)
		}
	}
}

func TestFamilyCodePrefix(t *testing.T) {
	cases := map[Family]string{
		FamilyBright:  "B",
		FamilyMid:     "M",
		FamilyDark:    "D",
		FamilyNeutral: "N",
		Family("Odd"): "X",
	}
	for f, want := range cases {
		if got := f.CodePrefix(); got != want {
			t.Errorf("CodePrefix(%s) = %q, want %q", f, got, want)
		}
	}
}
