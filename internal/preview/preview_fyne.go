//go:build fyne && cgo

/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package preview shows a stamped render on screen before export, so shop
// staff can check overlay placement without opening the written PNG.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"wrapproof/internal/domain"
	applog "wrapproof/internal/log"
	"wrapproof/internal/stamp"
)

// Show stamps the image at url and displays the result in a desktop window.
// Blocks until the window is closed.
func Show(ctx context.Context, st *stamp.Stamper, url string, spec domain.OverlaySpec) error {
	l := applog.WithComponent("preview")
	l.Info("starting preview", slog.String("url", url))

	data, err := st.Stamp(ctx, url, spec)
	if err != nil {
		return fmt.Errorf("stamp preview image: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode stamped image: %w", err)
	}

	fyneApp := app.NewWithID("wrapproof")
	w := fyneApp.NewWindow("WrapForge Preview")

	pic := canvas.NewImageFromImage(img)
	pic.FillMode = canvas.ImageFillContain
	b := img.Bounds()
	w.Resize(fyne.NewSize(float32(min(b.Dx(), 1200)), float32(min(b.Dy(), 800))+40))

	caption := spec.CreditLine()
	if caption == "" {
		caption = "No overlay"
	}
	status := widget.NewLabel(fmt.Sprintf("%s  (%dx%d)", caption, b.Dx(), b.Dy()))
	w.SetContent(container.NewBorder(nil, status, nil, nil, pic))
	w.ShowAndRun()
	return nil
}
