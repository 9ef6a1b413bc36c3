/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package palette holds the vinyl swatch catalog: ordering and grouping
// helpers for poster/chart layout plus an optional local sqlite store.
package palette

import (
	"fmt"
	"sort"

	"wrapproof/internal/domain"
)

// Dedupe removes swatches with duplicate names, keeping the first
// occurrence. Input order is otherwise preserved.
func Dedupe(in []domain.ColorSwatch) []domain.ColorSwatch {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.ColorSwatch, 0, len(in))
	for _, sw := range in {
		if _, dup := seen[sw.Name]; dup {
			continue
		}
		seen[sw.Name] = struct{}{}
		out = append(out, sw)
	}
	return out
}

// SortByFamily orders swatches by the fixed family order. The sort is
// stable: within a family, input order is preserved.
func SortByFamily(in []domain.ColorSwatch) []domain.ColorSwatch {
	rank := make(map[domain.Family]int, len(domain.FamilyOrder))
	for i, f := range domain.FamilyOrder {
		rank[f] = i
	}
	out := make([]domain.ColorSwatch, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		ri, iok := rank[out[i].Family]
		rj, jok := rank[out[j].Family]
		if !iok {
			ri = len(domain.FamilyOrder)
		}
		if !jok {
			rj = len(domain.FamilyOrder)
		}
		return ri < rj
	})
	return out
}

// GroupByFamily splits swatches into per-family slices keyed by the fixed
// family order; families absent from the input yield empty slices.
func GroupByFamily(in []domain.ColorSwatch) map[domain.Family][]domain.ColorSwatch {
	out := make(map[domain.Family][]domain.ColorSwatch, len(domain.FamilyOrder))
	for _, f := range domain.FamilyOrder {
		out[f] = nil
	}
	for _, sw := range in {
		out[sw.Family] = append(out[sw.Family], sw)
	}
	return out
}

// FilterByFinish keeps only swatches with the given finish.
func FilterByFinish(in []domain.ColorSwatch, finish domain.Finish) []domain.ColorSwatch {
	out := make([]domain.ColorSwatch, 0, len(in))
	for _, sw := range in {
		if sw.Finish == finish {
			out = append(out, sw)
		}
	}
	return out
}

// ProductCode derives the printed swatch code: family prefix plus a
// zero-padded sequence, e.g. B007.
func ProductCode(f domain.Family, seq int) string {
	return fmt.Sprintf("%s%03d", f.CodePrefix(), seq)
}

// Default is the built-in WrapForge palette used when no catalog store or
// backend is configured.
func Default() []domain.ColorSwatch {
	return []domain.ColorSwatch{
		{Name: "Solar Flare", Hex: "#FF5A1F", Family: domain.FamilyBright, Finish: domain.FinishGloss},
		{Name: "Lemon Burst", Hex: "#FFD21F", Family: domain.FamilyBright, Finish: domain.FinishGloss},
		{Name: "Electric Lime", Hex: "#A8E10C", Family: domain.FamilyBright, Finish: domain.FinishGloss},
		{Name: "Celestial Aqua", Hex: "#2EC4B6", Family: domain.FamilyBright, Finish: domain.FinishGloss},
		{Name: "Hot Magenta", Hex: "#E91E8C", Family: domain.FamilyBright, Finish: domain.FinishGloss},
		{Name: "Lava Red", Hex: "#D7263D", Family: domain.FamilyMid, Finish: domain.FinishGloss},
		{Name: "Pacific Teal", Hex: "#0E7C7B", Family: domain.FamilyMid, Finish: domain.FinishSatin},
		{Name: "Royal Cobalt", Hex: "#2456C9", Family: domain.FamilyMid, Finish: domain.FinishGloss},
		{Name: "Vineyard Plum", Hex: "#7B2D8B", Family: domain.FamilyMid, Finish: domain.FinishSatin},
		{Name: "Forest Pine", Hex: "#1E5631", Family: domain.FamilyMid, Finish: domain.FinishMatte},
		{Name: "Midnight Navy", Hex: "#10203E", Family: domain.FamilyDark, Finish: domain.FinishGloss},
		{Name: "Obsidian", Hex: "#101014", Family: domain.FamilyDark, Finish: domain.FinishGloss},
		{Name: "Espresso", Hex: "#2F1B12", Family: domain.FamilyDark, Finish: domain.FinishMatte},
		{Name: "Graphite Storm", Hex: "#3A3F47", Family: domain.FamilyDark, Finish: domain.FinishSatin},
		{Name: "Deep Burgundy", Hex: "#4A0E1E", Family: domain.FamilyDark, Finish: domain.FinishGloss},
		{Name: "Arctic White", Hex: "#F5F7F8", Family: domain.FamilyNeutral, Finish: domain.FinishGloss},
		{Name: "Dove Gray", Hex: "#B5B9BD", Family: domain.FamilyNeutral, Finish: domain.FinishSatin},
		{Name: "Stone Beige", Hex: "#CBBFA8", Family: domain.FamilyNeutral, Finish: domain.FinishMatte},
		{Name: "Titanium Silver", Hex: "#D4D7DA", Family: domain.FamilyNeutral, Finish: domain.FinishGloss},
		{Name: "Satin Charcoal", Hex: "#4C4F54", Family: domain.FamilyNeutral, Finish: domain.FinishSatin},
	}
}
