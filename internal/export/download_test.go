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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wrapproof/internal/domain"
)

func TestDownloadWithOverlay(t *testing.T) {
	srv := renderServer(t, 320, 200)
	a := newTestAssembler(t)
	spec := domain.OverlaySpec{ToolLabel: "ColorPro™", ColorOrDesignName: "Midnight Blue"}

	path, err := a.DownloadWithOverlay(context.Background(), srv.URL+"/render.png", "midnight-blue-front", spec)
	if err != nil {
		t.Fatalf("DownloadWithOverlay: %v", err)
	}
	if filepath.Base(path) != "midnight-blue-front.png" {
		t.Errorf("unexpected file name %q", filepath.Base(path))
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("wrote empty file")
	}
}

func TestDownloadWithOverlayFetchFailure(t *testing.T) {
	srv := renderServer(t, 320, 200)
	a := newTestAssembler(t)

	_, err := a.DownloadWithOverlay(context.Background(), srv.URL+"/broken/render.png", "out", domain.OverlaySpec{})
	if err == nil {
		t.Fatal("expected error for failing render source")
	}
}

func TestDownloadAllWithOverlay(t *testing.T) {
	srv := renderServer(t, 320, 200)
	a := newTestAssembler(t)
	spec := domain.OverlaySpec{ToolLabel: "FadeWraps™"}

	urls := []string{srv.URL + "/a.png", srv.URL + "/b.png", srv.URL + "/c.png"}
	paths, err := a.DownloadAllWithOverlay(context.Background(), urls, spec, time.Millisecond)
	if err != nil {
		t.Fatalf("DownloadAllWithOverlay: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("got %d paths, want 3", len(paths))
	}
	for i, p := range paths {
		if !strings.HasSuffix(p, ".png") {
			t.Errorf("path %d missing .png suffix: %q", i, p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing output %q: %v", p, err)
		}
	}
}

func TestDownloadAllWithOverlayAbortsOnFailure(t *testing.T) {
	srv := renderServer(t, 320, 200)
	a := newTestAssembler(t)

	urls := []string{srv.URL + "/ok.png", srv.URL + "/broken/mid.png", srv.URL + "/never.png"}
	paths, err := a.DownloadAllWithOverlay(context.Background(), urls, domain.OverlaySpec{ToolLabel: "X"}, time.Millisecond)
	if err == nil {
		t.Fatal("expected batch to abort on failing item")
	}
	if len(paths) != 1 {
		t.Errorf("got %d partial paths, want 1", len(paths))
	}
}

func TestDownloadAllWithOverlayContextCancel(t *testing.T) {
	srv := renderServer(t, 320, 200)
	a := newTestAssembler(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	urls := []string{srv.URL + "/a.png", srv.URL + "/b.png"}
	_, err := a.DownloadAllWithOverlay(ctx, urls, domain.OverlaySpec{ToolLabel: "X"}, time.Hour)
	if err == nil {
		t.Fatal("expected error on cancelled context")
	}
}
