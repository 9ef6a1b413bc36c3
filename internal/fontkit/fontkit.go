/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package fontkit guarantees the overlay typefaces are resolvable before any
// stamp text is drawn. Two roles exist: Label (medium weight, upper-left
// overlay) and Credit (light weight, lower-right overlay). A missing or
// unreadable TTF is never fatal; the embedded Go fonts stand in so stamping
// always produces SOME overlay.
package fontkit

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	applog "wrapproof/internal/log"
)

// Role selects one of the two overlay typefaces.
type Role int

const (
	RoleLabel Role = iota
	RoleCredit
)

// Kit holds the parsed overlay fonts. Construct via Load (process-wide,
// memoized) or New (explicit, for tests).
type Kit struct {
	label  *opentype.Font
	credit *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	role Role
	size int
}

var (
	loadOnce   sync.Once
	defaultKit *Kit
)

// Load parses the configured TTF paths, falling back to the embedded Go
// fonts on any failure. The probe executes at most once per process; later
// calls return the memoized kit regardless of arguments.
func Load(labelTTF, creditTTF string) *Kit {
	loadOnce.Do(func() {
		defaultKit = New(labelTTF, creditTTF)
	})
	return defaultKit
}

// New builds a kit without memoization.
func New(labelTTF, creditTTF string) *Kit {
	l := applog.WithComponent("fontkit")
	return &Kit{
		label:  parseOrFallback(l, "label", labelTTF, gomedium.TTF),
		credit: parseOrFallback(l, "credit", creditTTF, goregular.TTF),
		faces:  make(map[faceKey]font.Face),
	}
}

func parseOrFallback(l *slog.Logger, role, path string, embedded []byte) *opentype.Font {
	if path != "" {
		if data, err := os.ReadFile(path); err != nil {
			l.Warn("font unreadable, using embedded fallback", slog.String("role", role), slog.String("path", path), slog.Any("err", err))
		} else if f, err := opentype.Parse(data); err != nil {
			l.Warn("font unparsable, using embedded fallback", slog.String("role", role), slog.String("path", path), slog.Any("err", err))
		} else {
			return f
		}
	}
	f, err := opentype.Parse(embedded)
	if err != nil {
		// The embedded Go fonts are known-good; reaching this means a build
		// problem, not a runtime condition.
		panic(fmt.Sprintf("fontkit: embedded %s font unparsable: %v", role, err))
	}
	return f
}

// Face returns a cached face for the role at the given pixel size.
func (k *Kit) Face(role Role, sizePx int) (font.Face, error) {
	if sizePx <= 0 {
		sizePx = 12
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	key := faceKey{role: role, size: sizePx}
	if f, ok := k.faces[key]; ok {
		return f, nil
	}
	src := k.label
	if role == RoleCredit {
		src = k.credit
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face (role %d, %dpx): %w", role, sizePx, err)
	}
	k.faces[key] = face
	return face, nil
}

// Measure returns the rendered advance width of s in whole pixels.
func Measure(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
