/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jung-kurt/gofpdf"

	"wrapproof/internal/colorspace"
	"wrapproof/internal/domain"
	"wrapproof/internal/palette"
)

// Color poster geometry: a fixed 48"x36" sheet in millimeters, landscape.
const (
	posterPageW  = 1219.2
	posterPageH  = 914.4
	posterMargin = 40.0

	posterGridCols = 10
	posterGridRows = 5
	// posterCapacity is a fixed print contract: the grid always carries
	// exactly 50 cells, padded with Reserved placeholders when the catalog
	// runs short.
	posterCapacity = posterGridCols * posterGridRows

	posterNameMaxRunes = 14

	// Reserved panel on the right for the vehicle showcase.
	posterShowcaseW = 280.0
)

// reservedSwatch pads the grid when fewer than 50 unique colors exist.
var reservedSwatch = domain.ColorSwatch{Name: "Reserved", Hex: "#3A3A3A", Family: domain.FamilyNeutral, Finish: domain.FinishGloss}

// PosterRequest describes a color poster run.
type PosterRequest struct {
	Swatches    []domain.ColorSwatch
	ShowcaseURL string // optional vehicle render for the showcase panel
}

// posterGrid prepares the fixed 50-cell swatch list: dedupe by name, order
// by the fixed family order, truncate past capacity and pad any shortfall
// with Reserved placeholders. Returns the cells and the real color count.
func posterGrid(in []domain.ColorSwatch) ([]domain.ColorSwatch, int) {
	swatches := palette.SortByFamily(palette.Dedupe(in))
	count := len(swatches)
	if count > posterCapacity {
		swatches = swatches[:posterCapacity]
		count = posterCapacity
	}
	for len(swatches) < posterCapacity {
		swatches = append(swatches, reservedSwatch)
	}
	return swatches, count
}

// ColorPoster assembles the 48x36 inch swatch poster. Swatches are
// deduplicated by name, ordered by the fixed family order, and padded to
// exactly 50 grid cells.
func (a *Assembler) ColorPoster(ctx context.Context, req PosterRequest) (string, error) {
	swatches, colorCount := posterGrid(req.Swatches)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: posterPageW, Ht: posterPageH},
	})
	pdf.SetTitle("WrapForge Color Poster", true)
	pdf.AddPage()

	// Full-bleed dark background.
	pdf.SetFillColor(16, 18, 24)
	pdf.Rect(0, 0, posterPageW, posterPageH, "F")

	// Two-part wordmark header with the color-count badge.
	pdf.SetFont("Helvetica", "B", 96)
	pdf.SetTextColor(245, 245, 245)
	pdf.SetXY(posterMargin, posterMargin)
	pdf.CellFormat(0, 34, wordmarkPrimary, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 36)
	pdf.SetTextColor(150, 155, 165)
	pdf.SetXY(posterMargin, posterMargin+38)
	pdf.CellFormat(0, 14, wordmarkSecondary, "", 0, "L", false, 0, "")

	badge := fmt.Sprintf("%d COLORS", colorCount)
	pdf.SetFillColor(235, 90, 40)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 30)
	badgeW := pdf.GetStringWidth(badge) + 24
	badgeX := posterPageW - posterMargin - posterShowcaseW - badgeW
	pdf.RoundedRect(badgeX, posterMargin+6, badgeW, 22, 5, "1234", "F")
	pdf.SetXY(badgeX, posterMargin+10)
	pdf.CellFormat(badgeW, 14, badge, "", 0, "C", false, 0, "")

	// Swatch grid fills the area left of the showcase panel.
	gridTop := posterMargin + 80
	gridLeft := posterMargin
	gridW := posterPageW - 2*posterMargin - posterShowcaseW - 20
	gridH := posterPageH - gridTop - posterMargin - 30
	cellW := gridW / posterGridCols
	cellH := gridH / posterGridRows

	famSeq := map[domain.Family]int{}
	for i, sw := range swatches {
		col := i % posterGridCols
		row := i / posterGridCols
		x := gridLeft + float64(col)*cellW
		y := gridTop + float64(row)*cellH
		famSeq[sw.Family]++
		a.posterCell(pdf, sw, famSeq[sw.Family], x, y, cellW-8, cellH-8)
	}

	a.showcasePanel(ctx, pdf, req.ShowcaseURL)

	// Footer.
	pdf.SetFont("Helvetica", "", 18)
	pdf.SetTextColor(120, 125, 135)
	pdf.SetXY(posterMargin, posterPageH-posterMargin+4)
	pdf.CellFormat(posterPageW-2*posterMargin, 10,
		fmt.Sprintf("%s  |  %s", platformCredit, generationDate()), "", 0, "C", false, 0, "")

	outPath, err := a.ensureOutDir("wrapforge-color-poster.pdf")
	if err != nil {
		return "", err
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return "", fmt.Errorf("write color poster pdf: %w", err)
	}
	a.log.Info("color poster written", slog.String("path", outPath), slog.Int("colors", colorCount))
	return outPath, nil
}

// posterCell draws one swatch: rounded color fill, name (ellipsis past 14
// runes), derived product code, CMYK caption. Text lines stack in fixed
// order with fixed point-size deltas; they are never sized to content.
func (a *Assembler) posterCell(pdf *gofpdf.Fpdf, sw domain.ColorSwatch, seq int, x, y, w, h float64) {
	rgb := colorspace.HexToRGB(sw.Hex)
	fillH := h - 26
	pdf.SetFillColor(rgb.R, rgb.G, rgb.B)
	pdf.RoundedRect(x, y, w, fillH, 4, "1234", "F")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(235, 235, 235)
	pdf.SetXY(x, y+fillH+2)
	pdf.CellFormat(w, 8, truncateName(sw.Name, posterNameMaxRunes), "", 0, "L", false, 0, "")

	code := palette.ProductCode(sw.Family, seq)
	cmyk := colorspace.RGBToCMYK(rgb.R, rgb.G, rgb.B)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(150, 155, 165)
	pdf.SetXY(x, y+fillH+10)
	pdf.CellFormat(w, 6, code, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(x, y+fillH+16)
	pdf.CellFormat(w, 5, cmyk.String(), "", 0, "L", false, 0, "")
}

// showcasePanel fills the reserved right-hand zone with the vehicle render,
// or a neutral placeholder when no render is available.
func (a *Assembler) showcasePanel(ctx context.Context, pdf *gofpdf.Fpdf, url string) {
	x := posterPageW - posterMargin - posterShowcaseW
	y := posterMargin + 80
	h := posterPageH - y - posterMargin - 30

	pdf.SetFillColor(26, 29, 38)
	pdf.RoundedRect(x, y, posterShowcaseW, h, 6, "1234", "F")

	if url != "" {
		if emb, err := a.loader.FetchWithDimensions(ctx, url); err == nil {
			registerImage(pdf, "poster-showcase", emb.Data, emb.Format)
			placeImage(pdf, "poster-showcase", float64(emb.Width), float64(emb.Height), x+10, y+10, posterShowcaseW-20, h-40)
		} else {
			a.log.Warn("showcase render unavailable", slog.Any("err", err))
		}
	}
	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(150, 155, 165)
	pdf.SetXY(x, y+h-18)
	pdf.CellFormat(posterShowcaseW, 10, "Visualize any color on your vehicle", "", 0, "C", false, 0, "")
}
