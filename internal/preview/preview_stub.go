//go:build !fyne

/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package preview

import (
	"context"
	"fmt"

	"wrapproof/internal/domain"
	"wrapproof/internal/stamp"
)

// Show opens a desktop window with the stamped render. In non-fyne builds
// this is a stub so CI remains headless.
func Show(_ context.Context, _ *stamp.Stamper, _ string, _ domain.OverlaySpec) error {
	return fmt.Errorf("preview not built in this binary. Rebuild with: go run -tags fyne ./cmd/wrapproof preview <image-url>")
}
