/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package imgload fetches remote render images into decodable bitmaps or
// into embeddable payloads for PDF assembly. Sources are plain HTTP(S) URLs
// from the render service, or local file paths for fixed catalog assets.
package imgload

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// maxImageBytes bounds a single fetched image. AI renders top out well under
// this; anything larger is a misbehaving source.
const maxImageBytes = 64 << 20

// Loader fetches and decodes images with a bounded HTTP client.
type Loader struct {
	client *http.Client
}

// New returns a Loader whose HTTP requests time out after the given
// duration. A zero timeout falls back to 30s; an unbounded fetch would hang
// an entire document-generation run on one dead image host.
func New(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Loader{client: &http.Client{Timeout: timeout}}
}

// Embedded is an image prepared for direct PDF embedding: raw bytes plus the
// natural pixel dimensions and detected format.
type Embedded struct {
	Data   []byte
	Width  int
	Height int
	Format string // "png" or "jpeg"
}

// Base64 returns the payload encoded for data-URL style embedding.
func (e Embedded) Base64() string { return base64.StdEncoding.EncodeToString(e.Data) }

// Fetch retrieves and decodes the image at url into a drawable bitmap.
func (l *Loader) Fetch(ctx context.Context, url string) (image.Image, error) {
	data, err := l.fetchBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", url, err)
	}
	return img, nil
}

// FetchWithDimensions retrieves the raw bytes at url and decodes the header
// once to learn the natural pixel dimensions, for embedding into a PDF page
// without re-encoding.
func (l *Loader) FetchWithDimensions(ctx context.Context, url string) (Embedded, error) {
	data, err := l.fetchBytes(ctx, url)
	if err != nil {
		return Embedded{}, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Embedded{}, fmt.Errorf("decode image header %s: %w", url, err)
	}
	return Embedded{Data: data, Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

func (l *Loader) fetchBytes(ctx context.Context, url string) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		// Fixed catalog assets ship as local paths.
		data, err := os.ReadFile(url)
		if err != nil {
			return nil, fmt.Errorf("read image file: %w", err)
		}
		return data, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch image %s: %s", url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image body %s: %w", url, err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image %s exceeds %d byte limit", url, maxImageBytes)
	}
	return data, nil
}
