/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package stamp

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wrapproof/internal/domain"
	"wrapproof/internal/fontkit"
	"wrapproof/internal/imgload"
)

func whiteImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func serveImage(t *testing.T, img image.Image) *httptest.Server {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestStamper() *Stamper {
	return New(fontkit.New("", ""), imgload.New(5*time.Second))
}

func hasBlackPixel(img image.Image, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R < 64 && c.G < 64 && c.B < 64 && c.A == 255 {
				return true
			}
		}
	}
	return false
}

func TestStampPreservesDimensions(t *testing.T) {
	srv := serveImage(t, whiteImage(2400, 1350))
	s := newTestStamper()
	spec := domain.OverlaySpec{ToolLabel: "FadeWraps™", Manufacturer: "InkFusion", ColorOrDesignName: "Celestial Aqua"}
	data, err := s.Stamp(context.Background(), srv.URL, spec)
	if err != nil {
		t.Fatalf("Stamp() error: %v", err)
	}
	out, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode stamped output: %v", err)
	}
	if out.Bounds().Dx() != 2400 || out.Bounds().Dy() != 1350 {
		t.Fatalf("stamped size %v, want 2400x1350", out.Bounds())
	}
	// scale factor 1.25: padding 15px, label 20px, so text lands near (15,15)
	if !hasBlackPixel(out, image.Rect(10, 10, 400, 60)) {
		t.Errorf("no label text found in upper-left region")
	}
	if !hasBlackPixel(out, image.Rect(1800, 1290, 2390, 1340)) {
		t.Errorf("no credit text found in lower-right region")
	}
}

func TestStampEmptySpecIsPixelIdentical(t *testing.T) {
	src := whiteImage(200, 100)
	// vary some pixels so the comparison is meaningful
	for x := 0; x < 200; x += 3 {
		src.SetNRGBA(x, 50, color.NRGBA{R: uint8(x), G: 10, B: 250, A: 255})
	}
	s := newTestStamper()
	out, err := s.Compose(src, domain.OverlaySpec{})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if !bytes.Equal(out.Pix, src.Pix) {
		t.Fatalf("empty spec altered pixels")
	}
}

func TestStampSkipsAbsentRegions(t *testing.T) {
	s := newTestStamper()

	out, err := s.Compose(whiteImage(400, 300), domain.OverlaySpec{ToolLabel: "ColorPro™"})
	if err != nil {
		t.Fatal(err)
	}
	if hasBlackPixel(out, image.Rect(200, 200, 400, 300)) {
		t.Errorf("credit region drawn despite empty manufacturer and color")
	}
	if !hasBlackPixel(out, image.Rect(0, 0, 200, 60)) {
		t.Errorf("label region not drawn")
	}

	out, err = s.Compose(whiteImage(400, 300), domain.OverlaySpec{ColorOrDesignName: "Aqua"})
	if err != nil {
		t.Fatal(err)
	}
	if hasBlackPixel(out, image.Rect(0, 0, 200, 60)) {
		t.Errorf("label region drawn despite empty tool label")
	}
	if !hasBlackPixel(out, image.Rect(200, 240, 400, 300)) {
		t.Errorf("credit region not drawn")
	}
}

func TestTruncateToWidth(t *testing.T) {
	kit := fontkit.New("", "")
	face, err := kit.Face(fontkit.RoleCredit, 14)
	if err != nil {
		t.Fatal(err)
	}
	long := "An Exceptionally Verbose Manufacturer Name With A Very Long Color Description Indeed"
	maxW := fontkit.Measure(face, long) / 3
	got := truncateToWidth(face, long, maxW)
	if got == long {
		t.Fatalf("string was not truncated")
	}
	if !bytes.HasSuffix([]byte(got), []byte("...")) {
		t.Fatalf("truncated string %q missing ellipsis", got)
	}
	prefix := []rune(got[:len(got)-3])
	if len(prefix) < 10 {
		t.Fatalf("prefix shorter than 10 runes: %q", got)
	}
	if w := fontkit.Measure(face, got); w > maxW {
		// the only legal overflow is the 10-rune floor
		if len(prefix) != 10 {
			t.Fatalf("truncated width %d > max %d with prefix %d runes", w, maxW, len(prefix))
		}
	}
	short := "InkFusion Aqua"
	if got := truncateToWidth(face, short, fontkit.Measure(face, short)); got != short {
		t.Fatalf("short string was modified: %q", got)
	}
}

func TestStampDataURL(t *testing.T) {
	srv := serveImage(t, whiteImage(100, 80))
	s := newTestStamper()
	u, err := s.StampDataURL(context.Background(), srv.URL, domain.OverlaySpec{ToolLabel: "ColorPro™"})
	if err != nil {
		t.Fatalf("StampDataURL() error: %v", err)
	}
	const prefix = "data:image/png;base64,"
	if len(u) <= len(prefix) || u[:len(prefix)] != prefix {
		t.Fatalf("data URL malformed: %.40q", u)
	}
}

func TestStampSurfacesFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	t.Cleanup(srv.Close)
	s := newTestStamper()
	if _, err := s.Stamp(context.Background(), srv.URL, domain.OverlaySpec{ToolLabel: "ColorPro™"}); err == nil {
		t.Fatalf("expected error for unreachable source")
	}
}
