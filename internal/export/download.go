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
	"os"
	"time"

	"wrapproof/internal/domain"
)

// DownloadWithOverlay stamps the image at imageURL and writes it to
// <basename>.png under the export directory, returning the written path.
// The .png suffix is always appended here; callers must not pre-append it.
func (a *Assembler) DownloadWithOverlay(ctx context.Context, imageURL, basename string, spec domain.OverlaySpec) (string, error) {
	data, err := a.stamper.Stamp(ctx, imageURL, spec)
	if err != nil {
		return "", fmt.Errorf("download stamp: %w", err)
	}
	path, err := a.ensureOutDir(basename + ".png")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write stamped png: %w", err)
	}
	a.log.Info("stamped download written", slog.String("path", path))
	return path, nil
}

// DownloadAllWithOverlay sequentially stamps and writes a list of images
// under one shared OverlaySpec, pacing successive items by delay. The delay
// paces download triggers, mirroring the storefront's spacing between
// browser saves; it is not a rate limit against the render source. A failed
// item aborts the remaining sequence.
func (a *Assembler) DownloadAllWithOverlay(ctx context.Context, imageURLs []string, spec domain.OverlaySpec, delay time.Duration) ([]string, error) {
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	paths := make([]string, 0, len(imageURLs))
	for i, u := range imageURLs {
		if i > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return paths, ctx.Err()
			}
		}
		p, err := a.DownloadWithOverlay(ctx, u, fmt.Sprintf("%s-%d", sanitizeFilename(spec.ToolLabel), i+1), spec)
		if err != nil {
			return paths, fmt.Errorf("batch item %d: %w", i+1, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
