/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package colorspace converts between hex, RGB and CMYK color notations for
// swatch rendering. Conversions feed cosmetic output only, so malformed hex
// degrades to black instead of failing.
package colorspace

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB holds 8-bit channel values.
type RGB struct {
	R, G, B int
}

// CMYK holds subtractive components as integer percentages 0-100.
type CMYK struct {
	C, M, Y, K int
}

// HexToRGB parses a 6-hex-digit color string with an optional leading '#'.
// Malformed input returns black.
func HexToRGB(hex string) RGB {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return RGB{}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}
	}
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}
}

// RGBToCMYK performs the standard subtractive conversion, each component
// rounded to the nearest integer percentage. Pure black is special-cased to
// avoid division by zero.
func RGBToCMYK(r, g, b int) CMYK {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	k := 1 - math.Max(rf, math.Max(gf, bf))
	if k >= 1 {
		return CMYK{K: 100}
	}
	c := (1 - rf - k) / (1 - k)
	m := (1 - gf - k) / (1 - k)
	y := (1 - bf - k) / (1 - k)
	return CMYK{
		C: int(math.Round(c * 100)),
		M: int(math.Round(m * 100)),
		Y: int(math.Round(y * 100)),
		K: int(math.Round(k * 100)),
	}
}

// String renders the components as "C:0 M:50 Y:100 K:0" for swatch captions.
func (c CMYK) String() string {
	return fmt.Sprintf("C:%d M:%d Y:%d K:%d", c.C, c.M, c.Y, c.K)
}

// IsLight reports whether the color's perceived luminance exceeds 0.5,
// deciding label contrast against swatch fills.
func IsLight(hex string) bool {
	rgb := HexToRGB(hex)
	lum := (0.299*float64(rgb.R) + 0.587*float64(rgb.G) + 0.114*float64(rgb.B)) / 255
	return lum > 0.5
}
