/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package imgload

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func pngServer(t *testing.T, data []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchDecodesRemoteImage(t *testing.T) {
	srv := pngServer(t, testPNG(t, 64, 48))
	l := New(5 * time.Second)
	img, err := l.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("decoded size %dx%d, want 64x48", b.Dx(), b.Dy())
	}
}

func TestFetchWithDimensions(t *testing.T) {
	srv := pngServer(t, testPNG(t, 120, 80))
	l := New(5 * time.Second)
	emb, err := l.FetchWithDimensions(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchWithDimensions() error: %v", err)
	}
	if emb.Width != 120 || emb.Height != 80 {
		t.Fatalf("dimensions %dx%d, want 120x80", emb.Width, emb.Height)
	}
	if emb.Format != "png" {
		t.Fatalf("format %q, want png", emb.Format)
	}
	if len(emb.Data) == 0 || emb.Base64() == "" {
		t.Fatalf("payload missing")
	}
}

func TestFetchSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	l := New(5 * time.Second)
	if _, err := l.Fetch(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestFetchSurfacesDecodeFailure(t *testing.T) {
	srv := pngServer(t, []byte("this is not an image"))
	l := New(5 * time.Second)
	if _, err := l.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected decode error for garbage payload")
	}
	if _, err := l.FetchWithDimensions(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected header decode error for garbage payload")
	}
}

func TestFetchLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asset.png")
	if err := os.WriteFile(path, testPNG(t, 10, 10), 0o644); err != nil {
		t.Fatal(err)
	}
	l := New(time.Second)
	img, err := l.Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch(local) error: %v", err)
	}
	if img.Bounds().Dx() != 10 {
		t.Fatalf("unexpected local image size %v", img.Bounds())
	}
}

func TestFetchRespectsContextCancel(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(func() { close(block); srv.Close() })

	l := New(30 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := l.Fetch(ctx, srv.URL); err == nil {
		t.Fatalf("expected context deadline error")
	}
}
