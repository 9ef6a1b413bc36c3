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

// GalleryItem is one fixed showcase asset of the printed catalog.
type GalleryItem struct {
	Name string `json:"name"`
	Path string `json:"path"` // URL or local file path
}

// CatalogRequest describes a printed catalog run.
type CatalogRequest struct {
	Swatches []domain.ColorSwatch
	Gallery  []GalleryItem
}

const catalogGalleryPerPage = 4 // 2x2 gallery grid

// Catalog assembles the multi-page printed catalog: a fixed page sequence of
// cover, reference colors, one page per family, then gallery pages. Gallery
// items that fail to load degrade to bordered name placeholders, same
// per-item isolation as proof-sheet cells.
func (a *Assembler) Catalog(ctx context.Context, req CatalogRequest) (string, error) {
	swatches := palette.Dedupe(req.Swatches)
	groups := palette.GroupByFamily(swatches)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("WrapForge Color Catalog", true)

	a.catalogCover(pdf, len(swatches))
	a.catalogReferencePage(pdf, swatches)
	for _, fam := range domain.FamilyOrder {
		if len(groups[fam]) > 0 {
			a.catalogFamilyPage(pdf, fam, groups[fam])
		}
	}
	for start := 0; start < len(req.Gallery); start += catalogGalleryPerPage {
		end := start + catalogGalleryPerPage
		if end > len(req.Gallery) {
			end = len(req.Gallery)
		}
		a.catalogGalleryPage(ctx, pdf, req.Gallery[start:end])
	}

	outPath, err := a.ensureOutDir("wrapforge-catalog.pdf")
	if err != nil {
		return "", err
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return "", fmt.Errorf("write catalog pdf: %w", err)
	}
	a.log.Info("catalog written", slog.String("path", outPath), slog.Int("pages", pdf.PageCount()))
	return outPath, nil
}

func (a *Assembler) catalogCover(pdf *gofpdf.Fpdf, colorCount int) {
	pdf.AddPage()
	pdf.SetFillColor(16, 18, 24)
	pdf.Rect(0, 0, chartPageW, chartPageH, "F")

	pdf.SetFont("Helvetica", "B", 40)
	pdf.SetTextColor(245, 245, 245)
	pdf.SetXY(chartMargin, 100)
	pdf.CellFormat(chartPageW-2*chartMargin, 16, wordmarkPrimary, "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(150, 155, 165)
	pdf.SetXY(chartMargin, 120)
	pdf.CellFormat(chartPageW-2*chartMargin, 8, "Vinyl Wrap Color Catalog", "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(chartMargin, 134)
	pdf.CellFormat(chartPageW-2*chartMargin, 6, fmt.Sprintf("%d colors  |  %s", colorCount, generationDate()), "", 0, "C", false, 0, "")
}

// catalogReferencePage lists every color with its product code and CMYK
// values, the page printers actually work from.
func (a *Assembler) catalogReferencePage(pdf *gofpdf.Fpdf, swatches []domain.ColorSwatch) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetXY(chartMargin, chartMargin)
	pdf.CellFormat(chartPageW-2*chartMargin, 8, "Reference Colors", "", 0, "L", false, 0, "")

	y := chartMargin + 14
	famSeq := map[domain.Family]int{}
	for _, sw := range palette.SortByFamily(swatches) {
		if y > chartPageH-chartMargin-8 {
			pdf.AddPage()
			y = chartMargin
		}
		famSeq[sw.Family]++
		rgb := colorspace.HexToRGB(sw.Hex)
		pdf.SetFillColor(rgb.R, rgb.G, rgb.B)
		pdf.SetDrawColor(190, 190, 190)
		pdf.Rect(chartMargin, y, 10, 6, "FD")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(40, 40, 40)
		pdf.SetXY(chartMargin+14, y)
		line := fmt.Sprintf("%-6s %-24s %-10s %s",
			palette.ProductCode(sw.Family, famSeq[sw.Family]), sw.Name, sw.Finish,
			colorspace.RGBToCMYK(rgb.R, rgb.G, rgb.B))
		pdf.CellFormat(chartPageW-2*chartMargin-14, 6, line, "", 0, "L", false, 0, "")
		y += 8
	}
}

func (a *Assembler) catalogFamilyPage(pdf *gofpdf.Fpdf, fam domain.Family, colors []domain.ColorSwatch) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetXY(chartMargin, chartMargin)
	pdf.CellFormat(chartPageW-2*chartMargin, 8, fmt.Sprintf("%s Family", fam), "", 0, "L", false, 0, "")

	x, y := chartMargin, chartMargin+14.0
	for _, sw := range colors {
		if x+chartSwatchW > chartPageW-chartMargin {
			x = chartMargin
			y += chartRowH
		}
		if y+chartRowH > chartPageH-chartMargin {
			pdf.AddPage()
			x, y = chartMargin, chartMargin
		}
		a.chartSwatch(pdf, sw, x, y)
		x += chartSwatchW + chartSwatchGap
	}
}

func (a *Assembler) catalogGalleryPage(ctx context.Context, pdf *gofpdf.Fpdf, items []GalleryItem) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetXY(chartMargin, chartMargin)
	pdf.CellFormat(chartPageW-2*chartMargin, 8, "Wrap Gallery", "", 0, "L", false, 0, "")

	cellW := (chartPageW - 2*chartMargin - 10) / 2
	cellH := 110.0
	for i, item := range items {
		col := i % 2
		row := i / 2
		x := chartMargin + float64(col)*(cellW+10)
		y := chartMargin + 14 + float64(row)*(cellH+14)

		emb, err := a.loader.FetchWithDimensions(ctx, item.Path)
		if err != nil {
			a.log.Warn("gallery item unavailable", slog.String("name", item.Name), slog.Any("err", err))
			pdf.SetDrawColor(170, 170, 170)
			pdf.SetLineWidth(0.3)
			pdf.Rect(x, y, cellW, cellH-8, "D")
			pdf.SetFont("Helvetica", "I", 10)
			pdf.SetTextColor(120, 120, 120)
			pdf.SetXY(x, y+(cellH-8)/2-3)
			pdf.CellFormat(cellW, 6, item.Name, "", 0, "C", false, 0, "")
		} else {
			name := fmt.Sprintf("gallery-%d-%s", pdf.PageNo(), sanitizeFilename(item.Name))
			registerImage(pdf, name, emb.Data, emb.Format)
			placeImage(pdf, name, float64(emb.Width), float64(emb.Height), x, y, cellW, cellH-8)
		}
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(70, 70, 70)
		pdf.SetXY(x, y+cellH-6)
		pdf.CellFormat(cellW, 5, item.Name, "", 0, "C", false, 0, "")
	}
}
