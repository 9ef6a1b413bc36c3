/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"log/slog"

	"github.com/jung-kurt/gofpdf"

	"wrapproof/internal/colorspace"
	"wrapproof/internal/domain"
	"wrapproof/internal/palette"
)

// Sample chart geometry, A4 portrait, millimeters.
const (
	chartMargin     = 15.0
	chartPageW      = 210.0
	chartPageH      = 297.0
	chartFooterZone = 18.0

	chartSwatchW   = 34.0
	chartSwatchH   = 20.0
	chartSwatchGap = 5.0
	chartRowH      = chartSwatchH + 12.0
	chartHeaderH   = 12.0
)

// SampleChart assembles the multi-page A4 swatch chart grouped by the fixed
// family order. Rows wrap on content width; a family section breaks to a new
// page mid-family when no full row fits, redrawing its header with a
// "(continued)" suffix. Page-numbered footers are applied in a final pass
// over all pages so the total count is accurate.
func (a *Assembler) SampleChart(swatches []domain.ColorSwatch) (string, error) {
	swatches = palette.Dedupe(swatches)
	groups := palette.GroupByFamily(swatches)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("WrapForge Sample Chart", true)
	pdf.AddPage()

	contentW := chartPageW - 2*chartMargin
	y := a.chartTitle(pdf)

	for _, fam := range domain.FamilyOrder {
		colors := groups[fam]
		if len(colors) == 0 {
			continue
		}
		if y+chartHeaderH+chartRowH > chartPageH-chartFooterZone {
			pdf.AddPage()
			y = chartMargin
		}
		y = chartFamilyHeader(pdf, fam, len(colors), false, y)

		x := chartMargin
		for i, sw := range colors {
			if x+chartSwatchW > chartMargin+contentW {
				x = chartMargin
				y += chartRowH
			}
			if y+chartRowH > chartPageH-chartFooterZone {
				// Mid-family page break: continue the section on a new page.
				pdf.AddPage()
				y = chartFamilyHeader(pdf, fam, len(colors)-i, true, chartMargin)
				x = chartMargin
			}
			a.chartSwatch(pdf, sw, x, y)
			x += chartSwatchW + chartSwatchGap
		}
		y += chartRowH + 6
	}

	// Footer pass over every assembled page.
	total := pdf.PageCount()
	for i := 1; i <= total; i++ {
		pdf.SetPage(i)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(130, 130, 130)
		pdf.SetXY(chartMargin, chartPageH-12)
		pdf.CellFormat(contentW, 5,
			fmt.Sprintf("%s  |  Page %d of %d", platformCredit, i, total), "", 0, "C", false, 0, "")
	}

	outPath, err := a.ensureOutDir("wrapforge-sample-chart.pdf")
	if err != nil {
		return "", err
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return "", fmt.Errorf("write sample chart pdf: %w", err)
	}
	a.log.Info("sample chart written", slog.String("path", outPath), slog.Int("swatches", len(swatches)), slog.Int("pages", total))
	return outPath, nil
}

func (a *Assembler) chartTitle(pdf *gofpdf.Fpdf) float64 {
	y := chartMargin
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetXY(chartMargin, y)
	pdf.CellFormat(chartPageW-2*chartMargin, 9, wordmarkPrimary+" Sample Chart", "", 0, "C", false, 0, "")
	y += 11
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.SetXY(chartMargin, y)
	pdf.CellFormat(chartPageW-2*chartMargin, 5, "Vinyl wrap colors by family", "", 0, "C", false, 0, "")
	return y + 11
}

func chartFamilyHeader(pdf *gofpdf.Fpdf, fam domain.Family, count int, continued bool, y float64) float64 {
	title := fmt.Sprintf("%s  (%d colors)", fam, count)
	if continued {
		title = fmt.Sprintf("%s (continued)", fam)
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(40, 40, 40)
	pdf.SetXY(chartMargin, y)
	pdf.CellFormat(chartPageW-2*chartMargin, 7, title, "", 0, "L", false, 0, "")
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(chartMargin, y+8, chartPageW-chartMargin, y+8)
	return y + chartHeaderH
}

func (a *Assembler) chartSwatch(pdf *gofpdf.Fpdf, sw domain.ColorSwatch, x, y float64) {
	rgb := colorspace.HexToRGB(sw.Hex)
	pdf.SetFillColor(rgb.R, rgb.G, rgb.B)
	pdf.SetDrawColor(190, 190, 190)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, chartSwatchW, chartSwatchH, "FD")

	// Hex code printed on the fill itself, in whichever of black or white
	// keeps it readable against the swatch color.
	if colorspace.IsLight(sw.Hex) {
		pdf.SetTextColor(30, 30, 30)
	} else {
		pdf.SetTextColor(245, 245, 245)
	}
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetXY(x+1.5, y+chartSwatchH-4)
	pdf.CellFormat(chartSwatchW-3, 3, fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7.5)
	pdf.SetTextColor(50, 50, 50)
	pdf.SetXY(x, y+chartSwatchH+1)
	pdf.CellFormat(chartSwatchW, 3.5, truncateName(sw.Name, 20), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 6.5)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(x, y+chartSwatchH+5)
	pdf.CellFormat(chartSwatchW, 3, string(sw.Finish), "", 0, "L", false, 0, "")
}
