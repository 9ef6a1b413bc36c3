/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package stamp composites fixed-position branding text onto render images.
// It is the sole legal path to a branded export: every stamped artifact goes
// through the same layout math and the same PNG encoder so identical inputs
// produce identical output.
package stamp

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"wrapproof/internal/domain"
	"wrapproof/internal/fontkit"
	"wrapproof/internal/imgload"
	applog "wrapproof/internal/log"
)

// Layout constants anchor design intent to a 1920px-wide reference image.
// Font sizes and padding scale linearly with image width inside the clamp.
const (
	referenceWidth  = 1920.0
	minScale        = 0.5
	maxScale        = 1.5
	labelBaseSize   = 16
	creditBaseSize  = 14
	paddingBaseSize = 12

	// creditWidthFraction caps the lower-right line at 70% of image width;
	// past that the text is truncated with an ellipsis rather than wrapped.
	creditWidthFraction = 0.7
	truncateMinRunes    = 10
)

// encoder is the single fixed PNG encode path for all stamped output.
var encoder = png.Encoder{CompressionLevel: png.DefaultCompression}

// Stamper draws overlay text onto fetched images.
type Stamper struct {
	fonts  *fontkit.Kit
	loader *imgload.Loader
	log    *slog.Logger
}

// New returns a Stamper using the given font kit and image loader.
func New(fonts *fontkit.Kit, loader *imgload.Loader) *Stamper {
	return &Stamper{fonts: fonts, loader: loader, log: applog.WithComponent("stamp")}
}

// Stamp fetches the image at imageURL, composites the overlay text and
// returns PNG bytes with pixel dimensions identical to the source. Fetch,
// decode and encode failures surface as errors; a stamped export is never
// silently blank.
func (s *Stamper) Stamp(ctx context.Context, imageURL string, spec domain.OverlaySpec) ([]byte, error) {
	src, err := s.loader.Fetch(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("stamp source: %w", err)
	}
	out, err := s.Compose(src, spec)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode stamped png: %w", err)
	}
	return buf.Bytes(), nil
}

// StampDataURL runs the same stamping pipeline and re-encodes the result as
// a base64 data URL for direct PDF embedding.
func (s *Stamper) StampDataURL(ctx context.Context, imageURL string, spec domain.OverlaySpec) (string, error) {
	data, err := s.Stamp(ctx, imageURL, spec)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Compose draws the overlay onto an already-decoded bitmap. The returned
// image has the exact pixel dimensions of src; drawing order is always the
// image first, then text.
func (s *Stamper) Compose(src image.Image, spec domain.OverlaySpec) (*image.NRGBA, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), src, b.Min, draw.Src)

	if spec.Empty() {
		return canvas, nil
	}

	scale := clamp(float64(w)/referenceWidth, minScale, maxScale)
	labelSize := int(math.Round(labelBaseSize * scale))
	creditSize := int(math.Round(creditBaseSize * scale))
	pad := int(math.Round(paddingBaseSize * scale))

	// Overlay text is pure opaque black, no stroke or shadow. This is a
	// locked typographic contract shared with every storefront export.
	black := image.NewUniform(color.Black)

	if label := spec.ToolLabel; label != "" {
		face, err := s.fonts.Face(fontkit.RoleLabel, labelSize)
		if err != nil {
			return nil, fmt.Errorf("label face: %w", err)
		}
		m := face.Metrics()
		d := font.Drawer{
			Dst:  canvas,
			Src:  black,
			Face: face,
			Dot:  fixed.P(pad, pad+m.Ascent.Ceil()),
		}
		d.DrawString(label)
	}

	if credit := spec.CreditLine(); credit != "" {
		face, err := s.fonts.Face(fontkit.RoleCredit, creditSize)
		if err != nil {
			return nil, fmt.Errorf("credit face: %w", err)
		}
		credit = truncateToWidth(face, credit, int(float64(w)*creditWidthFraction))
		m := face.Metrics()
		width := fontkit.Measure(face, credit)
		d := font.Drawer{
			Dst:  canvas,
			Src:  black,
			Face: face,
			Dot:  fixed.P(w-pad-width, h-pad-m.Descent.Ceil()),
		}
		d.DrawString(credit)
	}

	return canvas, nil
}

// truncateToWidth drops trailing runes (appending "...") until the rendered
// width fits maxWidth or fewer than truncateMinRunes runes remain. Single
// fixed-position lines only; the stamp never wraps.
func truncateToWidth(face font.Face, s string, maxWidth int) string {
	if fontkit.Measure(face, s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > truncateMinRunes {
		runes = runes[:len(runes)-1]
		if fontkit.Measure(face, string(runes)+"...") <= maxWidth {
			break
		}
	}
	return string(runes) + "..."
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
