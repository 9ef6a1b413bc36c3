/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export assembles customer-facing deliverables: stamped PNG
// downloads, proof sheets, color posters, sample charts and the printed
// catalog. All document layout is in millimeters.
package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"wrapproof/internal/imgload"
	applog "wrapproof/internal/log"
	"wrapproof/internal/stamp"
)

// Wordmark strings shared by every document header and footer.
const (
	wordmarkPrimary   = "WRAPFORGE"
	wordmarkSecondary = "VINYL WRAP STUDIO"
	platformCredit    = "Generated by WrapForge"
)

// Assembler drives the stamper and image loader to produce export files
// under OutDir.
type Assembler struct {
	stamper *stamp.Stamper
	loader  *imgload.Loader
	outDir  string
	log     *slog.Logger
}

// NewAssembler returns an Assembler writing into outDir (created on demand).
func NewAssembler(st *stamp.Stamper, loader *imgload.Loader, outDir string) *Assembler {
	if outDir == "" {
		outDir = "."
	}
	return &Assembler{stamper: st, loader: loader, outDir: outDir, log: applog.WithComponent("export")}
}

// ensureOutDir creates the export directory if needed and returns the full
// path for name.
func (a *Assembler) ensureOutDir(name string) (string, error) {
	if err := os.MkdirAll(a.outDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure out dir: %w", err)
	}
	return filepath.Join(a.outDir, name), nil
}

// fitWithin computes the largest width/height pair that fits inside the
// bounding box without altering the source aspect ratio: width first, then
// height clamp. Never stretches.
func fitWithin(srcW, srcH, maxW, maxH float64) (float64, float64) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0
	}
	w := maxW
	h := maxW * srcH / srcW
	if h > maxH {
		h = maxH
		w = maxH * srcW / srcH
	}
	return w, h
}

// registerImage registers raw image bytes under name for later placement.
// gofpdf keys registered images by name, so names must be unique per image.
func registerImage(pdf *gofpdf.Fpdf, name string, data []byte, format string) {
	opts := gofpdf.ImageOptions{ImageType: strings.ToUpper(format)}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
}

// placeImage draws a registered image centered inside the given box at
// aspect-fit size.
func placeImage(pdf *gofpdf.Fpdf, name string, srcW, srcH, x, y, boxW, boxH float64) {
	w, h := fitWithin(srcW, srcH, boxW, boxH)
	pdf.ImageOptions(name, x+(boxW-w)/2, y+(boxH-h)/2, w, h, false, gofpdf.ImageOptions{}, 0, "")
}

// unavailableCell draws the dashed "Image unavailable" placeholder used when
// a cell's stamp or load step fails. Failure stays local to the cell.
func unavailableCell(pdf *gofpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.3)
	pdf.SetDashPattern([]float64{1.5, 1.5}, 0)
	pdf.Rect(x, y, w, h, "D")
	pdf.SetDashPattern([]float64{}, 0)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(x, y+h/2-3)
	pdf.CellFormat(w, 6, "Image unavailable", "", 0, "C", false, 0, "")
}

// pendingCell draws the lighter placeholder for a view absent from the input.
func pendingCell(pdf *gofpdf.Fpdf, x, y, w, h float64, viewName string) {
	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(210, 210, 210)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, w, h, "FD")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(160, 160, 160)
	pdf.SetXY(x, y+h/2-3)
	pdf.CellFormat(w, 6, viewName+" - Pending", "", 0, "C", false, 0, "")
}

// truncateName shortens a swatch name past max runes with an ellipsis. This
// is rune-count truncation for grid captions, distinct from the stamper's
// width-measured truncation.
func truncateName(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// sanitizeFilename converts free-form metadata into a safe file stem.
func sanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	out := b.String()
	if out == "" {
		out = "export"
	}
	return out
}

// generationDate is the date line used in document footers.
func generationDate() string { return time.Now().Format("January 2, 2006") }
