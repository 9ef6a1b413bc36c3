/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package palette

import (
	"context"
	"path/filepath"
	"testing"

	"wrapproof/internal/domain"
)

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	in := []domain.ColorSwatch{
		{Name: "Lava Red", Hex: "#D7263D", Family: domain.FamilyMid},
		{Name: "Obsidian", Hex: "#101014", Family: domain.FamilyDark},
		{Name: "Lava Red", Hex: "#FF0000", Family: domain.FamilyBright},
	}
	out := Dedupe(in)
	if len(out) != 2 {
		t.Fatalf("Dedupe returned %d swatches, want 2", len(out))
	}
	if out[0].Hex != "#D7263D" {
		t.Fatalf("Dedupe kept wrong duplicate: %+v", out[0])
	}
}

func TestSortByFamilyFixedOrder(t *testing.T) {
	in := []domain.ColorSwatch{
		{Name: "c", Family: domain.FamilyNeutral},
		{Name: "a", Family: domain.FamilyBright},
		{Name: "d", Family: domain.FamilyNeutral},
		{Name: "b", Family: domain.FamilyDark},
	}
	out := SortByFamily(in)
	wantFamilies := []domain.Family{domain.FamilyBright, domain.FamilyDark, domain.FamilyNeutral, domain.FamilyNeutral}
	for i, f := range wantFamilies {
		if out[i].Family != f {
			t.Fatalf("position %d family %s, want %s (%+v)", i, out[i].Family, f, out)
		}
	}
	// stability within a family
	if out[2].Name != "c" || out[3].Name != "d" {
		t.Fatalf("sort not stable within family: %+v", out)
	}
}

func TestGroupByFamilyCoversAllFamilies(t *testing.T) {
	groups := GroupByFamily(Default())
	if len(groups) != len(domain.FamilyOrder) {
		t.Fatalf("groups = %d, want %d", len(groups), len(domain.FamilyOrder))
	}
	for _, f := range domain.FamilyOrder {
		if len(groups[f]) == 0 {
			t.Errorf("default palette has no %s swatches", f)
		}
	}
}

func TestFilterByFinish(t *testing.T) {
	out := FilterByFinish(Default(), domain.FinishMatte)
	if len(out) == 0 {
		t.Fatalf("no matte swatches in default palette")
	}
	for _, sw := range out {
		if sw.Finish != domain.FinishMatte {
			t.Fatalf("filter leaked %+v", sw)
		}
	}
}

func TestProductCode(t *testing.T) {
	if got := ProductCode(domain.FamilyBright, 7); got != "B007" {
		t.Fatalf("ProductCode = %q, want B007", got)
	}
	if got := ProductCode(domain.FamilyNeutral, 123); got != "N123" {
		t.Fatalf("ProductCode = %q, want N123", got)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	ctx := context.Background()
	if err := st.Save(ctx, Default()[:5]); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	// upsert replaces by name
	if err := st.Save(ctx, []domain.ColorSwatch{{Name: Default()[0].Name, Hex: "#123456", Family: domain.FamilyDark, Finish: domain.FinishMatte}}); err != nil {
		t.Fatalf("Save() upsert error: %v", err)
	}
	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Load() returned %d swatches, want 5", len(got))
	}
	found := false
	for _, sw := range got {
		if sw.Name == Default()[0].Name {
			found = true
			if sw.Hex != "#123456" || sw.Family != domain.FamilyDark {
				t.Fatalf("upsert did not replace swatch: %+v", sw)
			}
		}
	}
	if !found {
		t.Fatalf("upserted swatch missing from Load()")
	}
}
