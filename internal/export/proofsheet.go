/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"wrapproof/internal/domain"
	"wrapproof/internal/registry"
)

// ProofSheetRequest carries everything needed to assemble a proof sheet.
type ProofSheetRequest struct {
	Views      []domain.ProofView
	Vehicle    domain.Vehicle
	DesignName string
	ToolKey    string // registry key; legacy name used when empty/unknown
	ToolName   string
}

// Proof sheet page geometry, A4 portrait, millimeters.
const (
	proofMargin     = 15.0
	proofPageW      = 210.0
	proofPageH      = 297.0
	proofGutter     = 6.0
	proofFooterZone = 16.0
	proofCellLabelH = 6.0
	proofGridCols   = 2
	proofGridRows   = 3
)

// ProofSheet assembles the 2x3 proof-sheet PDF and writes it under the
// export directory. Cells are populated in the fixed canonical view order;
// per-cell stamp or load failures degrade to placeholder cells instead of
// failing the document.
func (a *Assembler) ProofSheet(ctx context.Context, req ProofSheetRequest) (string, error) {
	toolLabel := registry.ResolveLabel(req.ToolKey, req.ToolName)
	spec := domain.OverlaySpec{ToolLabel: toolLabel, ColorOrDesignName: req.DesignName}

	byType := make(map[string]domain.ProofView, len(req.Views))
	for _, v := range req.Views {
		if _, canonical := domain.ViewDisplayNames[v.Type]; !canonical {
			// Non-canonical views have no grid slot; dropped by contract.
			a.log.Debug("dropping non-canonical proof view", slog.String("type", v.Type))
			continue
		}
		if _, dup := byType[v.Type]; !dup {
			byType[v.Type] = v
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("WrapForge Proof Sheet - %s %s %s", req.Vehicle.Year, req.Vehicle.Make, req.Vehicle.Model), true)
	pdf.SetAuthor("WrapForge", false)
	pdf.AddPage()

	// Header zones, top to bottom.
	y := proofMargin
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetXY(proofMargin, y)
	pdf.CellFormat(proofPageW-2*proofMargin, 10, wordmarkPrimary, "", 0, "C", false, 0, "")
	y += 11

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.SetXY(proofMargin, y)
	pdf.CellFormat(proofPageW-2*proofMargin, 6, toolLabel+" Design Proof", "", 0, "C", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(40, 40, 40)
	pdf.SetXY(proofMargin, y)
	vehicleLine := strings.TrimSpace(fmt.Sprintf("%s %s %s", req.Vehicle.Year, req.Vehicle.Make, req.Vehicle.Model))
	pdf.CellFormat(proofPageW-2*proofMargin, 7, vehicleLine, "", 0, "C", false, 0, "")
	y += 8

	if req.DesignName != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.SetTextColor(90, 90, 90)
		pdf.SetXY(proofMargin, y)
		pdf.CellFormat(proofPageW-2*proofMargin, 6, "Design: "+req.DesignName, "", 0, "C", false, 0, "")
	}
	y += 8

	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.4)
	pdf.Line(proofMargin, y, proofPageW-proofMargin, y)
	y += 5

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.SetXY(proofMargin, y)
	pdf.CellFormat(proofPageW-2*proofMargin, 5, "Render Views", "", 0, "L", false, 0, "")
	y += 8

	// 2x3 grid filling the rest of the page minus the footer reservation.
	contentW := proofPageW - 2*proofMargin
	cellW := (contentW - proofGutter*(proofGridCols-1)) / proofGridCols
	gridH := proofPageH - y - proofFooterZone - proofMargin
	cellH := (gridH - proofGutter*(proofGridRows-1)) / proofGridRows
	imageH := cellH - proofCellLabelH

	for slot, viewType := range domain.CanonicalViewOrder {
		col := slot % proofGridCols
		row := slot / proofGridCols
		x := proofMargin + float64(col)*(cellW+proofGutter)
		cy := y + float64(row)*(cellH+proofGutter)

		view, ok := byType[viewType]
		if !ok {
			pendingCell(pdf, x, cy, cellW, imageH, domain.DisplayName(viewType))
			continue
		}
		if err := a.proofCell(ctx, pdf, view, spec, x, cy, cellW, imageH); err != nil {
			a.log.Warn("proof cell degraded to placeholder", slog.String("view", viewType), slog.Any("err", err))
			unavailableCell(pdf, x, cy, cellW, imageH)
		}
		label := view.Label
		if label == "" {
			label = domain.DisplayName(viewType)
		}
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(70, 70, 70)
		pdf.SetXY(x, cy+imageH)
		pdf.CellFormat(cellW, proofCellLabelH, label, "", 0, "C", false, 0, "")
	}

	// Footer credit.
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(130, 130, 130)
	pdf.SetXY(proofMargin, proofPageH-proofMargin-6)
	footer := fmt.Sprintf("%s  |  %s  |  %s", platformCredit, toolLabel, generationDate())
	pdf.CellFormat(contentW, 5, footer, "", 0, "C", false, 0, "")

	name := fmt.Sprintf("proof-sheet-%s-%s-%s.pdf",
		sanitizeFilename(req.Vehicle.Year), sanitizeFilename(req.Vehicle.Make), sanitizeFilename(req.Vehicle.Model))
	outPath, err := a.ensureOutDir(name)
	if err != nil {
		return "", err
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return "", fmt.Errorf("write proof sheet pdf: %w", err)
	}
	a.log.Info("proof sheet written", slog.String("path", outPath), slog.Int("views", len(byType)))
	return outPath, nil
}

// proofCell stamps one view and places it centered in its grid cell.
// Stamping shares the sheet-wide overlay spec so each embedded render
// carries the same branding as a single-image export.
func (a *Assembler) proofCell(ctx context.Context, pdf *gofpdf.Fpdf, view domain.ProofView, spec domain.OverlaySpec, x, y, w, h float64) error {
	stamped, err := a.stamper.Stamp(ctx, view.URL, spec)
	if err != nil {
		return err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(stamped))
	if err != nil {
		return fmt.Errorf("decode stamped view: %w", err)
	}
	name := "proof-" + view.Type
	registerImage(pdf, name, stamped, "png")
	placeImage(pdf, name, float64(cfg.Width), float64(cfg.Height), x, y, w, h)
	return nil
}
